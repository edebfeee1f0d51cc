package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestOrderStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   OrderStatus
		value string
	}{
		{"pending", OrderStatusPending, "Pending"},
		{"processing", OrderStatusProcessing, "Processing"},
		{"completed", OrderStatusCompleted, "Completed"},
		{"cancelled", OrderStatusCancelled, "Cancelled"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
		})
	}
}

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		name  string
		from  OrderStatus
		to    OrderStatus
		legal bool
	}{
		{"pending to processing", OrderStatusPending, OrderStatusProcessing, true},
		{"pending to cancelled", OrderStatusPending, OrderStatusCancelled, true},
		{"pending to completed skips processing", OrderStatusPending, OrderStatusCompleted, false},
		{"processing to completed", OrderStatusProcessing, OrderStatusCompleted, true},
		{"processing to cancelled", OrderStatusProcessing, OrderStatusCancelled, true},
		{"processing back to pending", OrderStatusProcessing, OrderStatusPending, true},
		{"completed to cancelled", OrderStatusCompleted, OrderStatusCancelled, false},
		{"completed to processing", OrderStatusCompleted, OrderStatusProcessing, false},
		{"cancelled to pending", OrderStatusCancelled, OrderStatusPending, false},
		{"cancelled to processing", OrderStatusCancelled, OrderStatusProcessing, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.CanTransitionTo(tc.to); got != tc.legal {
				t.Fatalf("expected %v for %s -> %s, got %v", tc.legal, tc.from, tc.to, got)
			}
		})
	}
}

func TestTerminalStatuses(t *testing.T) {
	if !OrderStatusCompleted.Terminal() {
		t.Error("expected completed to be terminal")
	}
	if !OrderStatusCancelled.Terminal() {
		t.Error("expected cancelled to be terminal")
	}
	if OrderStatusPending.Terminal() {
		t.Error("did not expect pending to be terminal")
	}
	if OrderStatusProcessing.Terminal() {
		t.Error("did not expect processing to be terminal")
	}
}

func TestCurrencySupported(t *testing.T) {
	for _, code := range []string{"USD", "usd", "EUR", "eur", "Gbp"} {
		if !CurrencySupported(code) {
			t.Errorf("expected %q to be supported", code)
		}
	}
	for _, code := range []string{"", "JPY", "XXX", "EU"} {
		if CurrencySupported(code) {
			t.Errorf("did not expect %q to be supported", code)
		}
	}
}

func TestRateSnapshotLookupIsCaseInsensitive(t *testing.T) {
	snapshot := RateSnapshot{"EUR": decimal.RequireFromString("0.92")}

	for _, code := range []string{"EUR", "eur", "Eur"} {
		rate, ok := snapshot.Lookup(code)
		if !ok {
			t.Fatalf("expected rate for %q", code)
		}
		if !rate.Equal(decimal.RequireFromString("0.92")) {
			t.Fatalf("unexpected rate %s for %q", rate, code)
		}
	}

	if _, ok := snapshot.Lookup("GBP"); ok {
		t.Fatal("did not expect rate for GBP")
	}
}
