package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/avoronov/ordermart/internal/domain/model"
	"github.com/avoronov/ordermart/internal/usecase"
)

// OrderFacade aggregates the application use cases behind one surface shared
// by the HTTP handlers and the recurring jobs.
type OrderFacade struct {
	orders   *usecase.OrderUseCase
	pipeline *usecase.ProcessingPipeline
}

// NewOrderFacade constructs the facade.
func NewOrderFacade(orders *usecase.OrderUseCase, pipeline *usecase.ProcessingPipeline) *OrderFacade {
	return &OrderFacade{orders: orders, pipeline: pipeline}
}

func (f *OrderFacade) CreateOrder(ctx context.Context, customerName string, totalAmount decimal.Decimal, currency string) (*model.Order, error) {
	return f.orders.Create(ctx, customerName, totalAmount, currency)
}

func (f *OrderFacade) Orders(ctx context.Context) ([]model.Order, error) {
	return f.orders.List(ctx)
}

func (f *OrderFacade) Order(ctx context.Context, id int64) (*model.Order, error) {
	return f.orders.Get(ctx, id)
}

func (f *OrderFacade) CancelOrder(ctx context.Context, id int64) (*model.Order, error) {
	return f.orders.Cancel(ctx, id)
}

func (f *OrderFacade) RefreshPriorities(ctx context.Context) error {
	return f.pipeline.RefreshPriorities(ctx)
}

func (f *OrderFacade) ProcessOrders(ctx context.Context) error {
	return f.pipeline.ProcessOrders(ctx)
}
