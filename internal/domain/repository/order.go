package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/avoronov/ordermart/internal/domain/model"
)

// OrderRepository describes persistence operations with orders. Every write is
// a single-record atomic update; no cross-order transactions are required.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	// List returns all orders except cancelled ones, newest first.
	List(ctx context.Context) ([]model.Order, error)
	// SelectByStatuses returns orders whose status is in the given set,
	// ordered by priority descending with id as a stable tiebreak.
	SelectByStatuses(ctx context.Context, statuses []model.OrderStatus) ([]model.Order, error)
	UpdatePriority(ctx context.Context, orderID int64, priority decimal.Decimal) error
	// TransitionStatus atomically moves one order to a new status, provided
	// its current status is in the expected set. When it is not, the returned
	// error is a *errors.TransitionError carrying the observed status. A
	// non-nil baseAmount is persisted together with the status.
	TransitionStatus(ctx context.Context, orderID int64, from []model.OrderStatus, to model.OrderStatus, baseAmount *decimal.Decimal) (*model.Order, error)
}
