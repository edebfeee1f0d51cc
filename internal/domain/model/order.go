package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes order processing lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusCompleted  OrderStatus = "Completed"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// transitions holds the legal status edges. Processing -> Pending is the
// retry edge taken when an order's currency is missing from a rate snapshot.
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusCompleted, OrderStatusCancelled, OrderStatusPending},
	OrderStatusCompleted:  {},
	OrderStatusCancelled:  {},
}

// CanTransitionTo reports whether moving from s to next is a legal edge.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s OrderStatus) Terminal() bool {
	return len(transitions[s]) == 0
}

// BaseCurrency is the reference currency all converted totals are expressed in.
const BaseCurrency = "USD"

// SupportedCurrencies lists currency codes accepted at order creation.
var SupportedCurrencies = []string{"USD", "EUR", "GBP"}

// CurrencySupported checks code against the supported set, case-insensitively.
func CurrencySupported(code string) bool {
	for _, c := range SupportedCurrencies {
		if strings.EqualFold(c, code) {
			return true
		}
	}
	return false
}

// Order describes a purchase order tracked through its processing lifecycle.
// BaseAmount stays nil until a processing pass converts TotalAmount to the
// base currency.
type Order struct {
	ID           int64
	CustomerName string
	TotalAmount  decimal.Decimal
	Currency     string
	Status       OrderStatus
	Priority     decimal.Decimal
	BaseAmount   *decimal.Decimal
	OrderDate    time.Time
	UpdatedAt    time.Time
}
