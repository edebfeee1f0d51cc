package usecase

import (
	"strings"
	"time"

	domainErrors "github.com/avoronov/ordermart/internal/domain/errors"
	"github.com/avoronov/ordermart/internal/domain/model"
)

// ValidateNewOrder checks order fields before persistence. Validation happens
// only at creation; existing records are never re-validated.
func ValidateNewOrder(order *model.Order, now time.Time) error {
	if strings.TrimSpace(order.CustomerName) == "" {
		return domainErrors.ErrEmptyCustomerName
	}
	if !order.TotalAmount.IsPositive() {
		return domainErrors.ErrInvalidAmount
	}
	if !model.CurrencySupported(order.Currency) {
		return domainErrors.ErrUnsupportedCurrency
	}
	if order.OrderDate.After(now) {
		return domainErrors.ErrOrderDateInFuture
	}
	return nil
}
