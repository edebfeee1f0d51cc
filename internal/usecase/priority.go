package usecase

import (
	"time"

	"github.com/shopspring/decimal"
)

var ten = decimal.NewFromInt(10)

// PriorityScore computes the processing priority of an order:
// floor(totalAmount + minutes since orderDate / 10), truncated toward zero.
// The score is non-decreasing both in order age and in amount, so older and
// larger orders drift toward the front of the processing queue.
func PriorityScore(totalAmount decimal.Decimal, orderDate, now time.Time) decimal.Decimal {
	minutes := decimal.NewFromFloat(now.Sub(orderDate).Minutes())
	return totalAmount.Add(minutes.Div(ten)).Truncate(0)
}
