package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/avoronov/ordermart/internal/domain/errors"
	"github.com/avoronov/ordermart/internal/domain/model"
	testhelpers "github.com/avoronov/ordermart/internal/test"
)

func TestOrderUseCaseCreateValidatesBeforePersistence(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	repo.CreateFn = func(context.Context, *model.Order) (*model.Order, error) {
		t.Fatal("create should not be called for invalid order")
		return nil, nil
	}
	uc := NewOrderUseCase(repo)

	if _, err := uc.Create(context.Background(), "Alex", decimal.Zero, "USD"); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount error, got %v", err)
	}
	if _, err := uc.Create(context.Background(), "Alex", decimal.NewFromInt(10), "JPY"); !errors.Is(err, domainErrors.ErrUnsupportedCurrency) {
		t.Fatalf("expected unsupported currency error, got %v", err)
	}
	if _, err := uc.Create(context.Background(), "", decimal.NewFromInt(10), "USD"); !errors.Is(err, domainErrors.ErrEmptyCustomerName) {
		t.Fatalf("expected empty name error, got %v", err)
	}
}

func TestOrderUseCaseCreateSuccess(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	uc := NewOrderUseCase(repo)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }

	order, err := uc.Create(context.Background(), "  Alex Doe ", decimal.NewFromInt(100), "eur")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID == 0 {
		t.Fatal("expected assigned order id")
	}
	if order.Status != model.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	if order.CustomerName != "Alex Doe" {
		t.Fatalf("expected trimmed name, got %q", order.CustomerName)
	}
	if order.Currency != "EUR" {
		t.Fatalf("expected upper-cased currency, got %q", order.Currency)
	}
	if !order.OrderDate.Equal(now) {
		t.Fatalf("expected order date %v, got %v", now, order.OrderDate)
	}
	if order.BaseAmount != nil {
		t.Fatal("expected base amount to be unset at creation")
	}
}

func TestOrderUseCaseCancelPendingOrder(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	seeded := repo.Seed(model.Order{Status: model.OrderStatusPending})
	uc := NewOrderUseCase(repo)

	order, err := uc.Cancel(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != model.OrderStatusCancelled {
		t.Fatalf("expected cancelled status, got %s", order.Status)
	}
}

func TestOrderUseCaseCancelCompletedOrderFails(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	base := decimal.NewFromInt(92)
	seeded := repo.Seed(model.Order{Status: model.OrderStatusCompleted, BaseAmount: &base})
	uc := NewOrderUseCase(repo)

	if _, err := uc.Cancel(context.Background(), seeded.ID); !errors.Is(err, domainErrors.ErrOrderCompleted) {
		t.Fatalf("expected completed order error, got %v", err)
	}

	stored, _ := repo.Get(seeded.ID)
	if stored.Status != model.OrderStatusCompleted {
		t.Fatalf("expected status to stay completed, got %s", stored.Status)
	}
}

func TestOrderUseCaseCancelIsIdempotent(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	seeded := repo.Seed(model.Order{Status: model.OrderStatusCancelled})
	uc := NewOrderUseCase(repo)

	order, err := uc.Cancel(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != model.OrderStatusCancelled {
		t.Fatalf("expected cancelled status, got %s", order.Status)
	}
}

func TestOrderUseCaseCancelUnknownOrder(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	uc := NewOrderUseCase(repo)

	if _, err := uc.Cancel(context.Background(), 42); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}
