package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/avoronov/ordermart/internal/domain/errors"
	"github.com/avoronov/ordermart/internal/domain/model"
	"github.com/avoronov/ordermart/internal/domain/repository"
)

// cancellableStatuses covers every status a user-issued cancel may start
// from. Cancelling an already cancelled order is a no-op; only a completed
// order rejects cancellation.
var cancellableStatuses = []model.OrderStatus{
	model.OrderStatusPending,
	model.OrderStatusProcessing,
	model.OrderStatusCancelled,
}

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders repository.OrderRepository
	now    func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders, now: time.Now}
}

// Create validates and persists a new order in Pending status.
func (u *OrderUseCase) Create(ctx context.Context, customerName string, totalAmount decimal.Decimal, currency string) (*model.Order, error) {
	order := &model.Order{
		CustomerName: strings.TrimSpace(customerName),
		TotalAmount:  totalAmount,
		Currency:     strings.ToUpper(currency),
		Status:       model.OrderStatusPending,
		Priority:     decimal.Zero,
		OrderDate:    u.now(),
	}

	if err := ValidateNewOrder(order, u.now()); err != nil {
		return nil, err
	}

	return u.orders.Create(ctx, order)
}

// List returns all orders except cancelled ones.
func (u *OrderUseCase) List(ctx context.Context) ([]model.Order, error) {
	return u.orders.List(ctx)
}

// Get returns one order by identifier.
func (u *OrderUseCase) Get(ctx context.Context, id int64) (*model.Order, error) {
	return u.orders.GetByID(ctx, id)
}

// Cancel moves an order to Cancelled. The legality check happens atomically
// in the store, so a cancel racing with a processing pass resolves at the
// per-order transition boundary rather than through external locking.
func (u *OrderUseCase) Cancel(ctx context.Context, id int64) (*model.Order, error) {
	order, err := u.orders.TransitionStatus(ctx, id, cancellableStatuses, model.OrderStatusCancelled, nil)
	if err != nil {
		var transition *domainErrors.TransitionError
		if errors.As(err, &transition) && transition.Current == model.OrderStatusCompleted {
			return nil, domainErrors.ErrOrderCompleted
		}
		return nil, err
	}
	return order, nil
}
