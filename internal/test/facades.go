package test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/avoronov/ordermart/internal/domain/model"
)

// RateProviderStub returns a fixed snapshot or error and counts calls.
type RateProviderStub struct {
	mu       sync.Mutex
	Snapshot model.RateSnapshot
	Err      error
	Calls    int
}

// Fetch returns the configured snapshot.
func (s *RateProviderStub) Fetch(ctx context.Context) (model.RateSnapshot, error) {
	s.mu.Lock()
	s.Calls++
	s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Snapshot, nil
}

// FetchCalls reports how many times Fetch was invoked.
func (s *RateProviderStub) FetchCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Calls
}

// NotificationSinkStub records notified orders.
type NotificationSinkStub struct {
	mu       sync.Mutex
	Notified []model.Order
	Err      error
}

// Notify appends the order to the recorded list.
func (s *NotificationSinkStub) Notify(ctx context.Context, order model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Notified = append(s.Notified, order)
	return nil
}

// NotifiedOrders returns a copy of the recorded orders.
func (s *NotificationSinkStub) NotifiedOrders() []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Order(nil), s.Notified...)
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn func(context.Context, string, decimal.Decimal, string) (*model.Order, error)
	OrdersFn func(context.Context) ([]model.Order, error)
	OrderFn  func(context.Context, int64) (*model.Order, error)
	CancelFn func(context.Context, int64) (*model.Order, error)
}

// CreateOrder delegates to the provided function or returns a default order.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, customerName string, totalAmount decimal.Decimal, currency string) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, customerName, totalAmount, currency)
	}
	return &model.Order{ID: 1, CustomerName: customerName, TotalAmount: totalAmount, Currency: currency, Status: model.OrderStatusPending}, nil
}

// Orders returns predefined orders.
func (s OrderFacadeStub) Orders(ctx context.Context) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx)
	}
	return []model.Order{{ID: 1, Status: model.OrderStatusPending}}, nil
}

// Order returns one predefined order.
func (s OrderFacadeStub) Order(ctx context.Context, id int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	return &model.Order{ID: id, Status: model.OrderStatusPending}, nil
}

// CancelOrder delegates to the provided function or cancels a default order.
func (s OrderFacadeStub) CancelOrder(ctx context.Context, id int64) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, id)
	}
	return &model.Order{ID: id, Status: model.OrderStatusCancelled}, nil
}
