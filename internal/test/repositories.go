package test

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	domainErrors "github.com/avoronov/ordermart/internal/domain/errors"
	"github.com/avoronov/ordermart/internal/domain/model"
)

// OrderRepositoryStub keeps orders in memory with the same atomic transition
// semantics as the real store. Individual operations can be overridden via Fn
// fields.
type OrderRepositoryStub struct {
	mu   sync.Mutex
	ByID map[int64]*model.Order
	Next int64
	Err  error

	CreateFn           func(context.Context, *model.Order) (*model.Order, error)
	GetByIDFn          func(context.Context, int64) (*model.Order, error)
	ListFn             func(context.Context) ([]model.Order, error)
	SelectByStatusesFn func(context.Context, []model.OrderStatus) ([]model.Order, error)
	UpdatePriorityFn   func(context.Context, int64, decimal.Decimal) error
	TransitionFn       func(context.Context, int64, []model.OrderStatus, model.OrderStatus, *decimal.Decimal) (*model.Order, error)
}

// NewOrderRepositoryStub constructs the stub with initialized state.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{ByID: make(map[int64]*model.Order), Next: 1}
}

// Seed stores an order directly, assigning an id when missing.
func (s *OrderRepositoryStub) Seed(order model.Order) *model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.Order)
	}
	if order.ID == 0 {
		if s.Next == 0 {
			s.Next = 1
		}
		order.ID = s.Next
		s.Next++
	} else if order.ID >= s.Next {
		s.Next = order.ID + 1
	}
	stored := order
	s.ByID[stored.ID] = &stored
	return &stored
}

// Get returns a copy of the stored order for assertions.
func (s *OrderRepositoryStub) Get(id int64) (model.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.ByID[id]
	if !ok {
		return model.Order{}, false
	}
	return *order, true
}

func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Seed(*order), nil
}

func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	order, ok := s.Get(id)
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &order, nil
}

func (s *OrderRepositoryStub) List(ctx context.Context) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for _, order := range s.ByID {
		if order.Status != model.OrderStatusCancelled {
			result = append(result, *order)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *OrderRepositoryStub) SelectByStatuses(ctx context.Context, statuses []model.OrderStatus) ([]model.Order, error) {
	if s.SelectByStatusesFn != nil {
		return s.SelectByStatusesFn(ctx, statuses)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for _, order := range s.ByID {
		for _, status := range statuses {
			if order.Status == status {
				result = append(result, *order)
				break
			}
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if cmp := result[i].Priority.Cmp(result[j].Priority); cmp != 0 {
			return cmp > 0
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *OrderRepositoryStub) UpdatePriority(ctx context.Context, orderID int64, priority decimal.Decimal) error {
	if s.UpdatePriorityFn != nil {
		return s.UpdatePriorityFn(ctx, orderID, priority)
	}
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.ByID[orderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.Priority = priority
	return nil
}

func (s *OrderRepositoryStub) TransitionStatus(ctx context.Context, orderID int64, from []model.OrderStatus, to model.OrderStatus, baseAmount *decimal.Decimal) (*model.Order, error) {
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, orderID, from, to, baseAmount)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.ByID[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	legal := false
	for _, status := range from {
		if order.Status == status {
			legal = true
			break
		}
	}
	if !legal {
		return nil, &domainErrors.TransitionError{Current: order.Status}
	}
	order.Status = to
	if baseAmount != nil {
		amount := *baseAmount
		order.BaseAmount = &amount
	}
	copied := *order
	return &copied, nil
}
