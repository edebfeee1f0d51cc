package errors

import (
	"errors"
	"fmt"

	"github.com/avoronov/ordermart/internal/domain/model"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrOrderCompleted      = errors.New("cannot cancel a completed order")
	ErrEmptyCustomerName   = errors.New("customer name must not be empty")
	ErrInvalidAmount       = errors.New("total amount must be greater than zero")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrOrderDateInFuture   = errors.New("order date cannot be in the future")
)

// TransitionError reports a status transition that failed its legality check.
// Current carries the order status observed at the time of the check, so
// callers can distinguish a completed order from one cancelled mid-pass.
type TransitionError struct {
	Current model.OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal transition from status %q", e.Current)
}
