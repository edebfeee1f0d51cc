package errors

import (
	stdErrors "errors"
	"testing"

	"github.com/avoronov/ordermart/internal/domain/model"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"not found", ErrNotFound},
		{"order completed", ErrOrderCompleted},
		{"empty customer name", ErrEmptyCustomerName},
		{"invalid amount", ErrInvalidAmount},
		{"unsupported currency", ErrUnsupportedCurrency},
		{"order date in future", ErrOrderDateInFuture},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
		})
	}
}

func TestOrderCompletedMessage(t *testing.T) {
	if ErrOrderCompleted.Error() != "cannot cancel a completed order" {
		t.Fatalf("unexpected message: %q", ErrOrderCompleted.Error())
	}
}

func TestTransitionErrorCarriesCurrentStatus(t *testing.T) {
	err := &TransitionError{Current: model.OrderStatusCompleted}

	var transition *TransitionError
	if !stdErrors.As(err, &transition) {
		t.Fatal("expected errors.As to match")
	}
	if transition.Current != model.OrderStatusCompleted {
		t.Fatalf("unexpected current status: %s", transition.Current)
	}
	if err.Error() == "" {
		t.Fatal("expected non-empty message")
	}
}
