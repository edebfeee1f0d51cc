package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domainErrors "github.com/avoronov/ordermart/internal/domain/errors"
	"github.com/avoronov/ordermart/internal/domain/model"
	"github.com/avoronov/ordermart/internal/domain/repository"
)

// RateProvider supplies a fresh currency rate snapshot for one processing pass.
type RateProvider interface {
	Fetch(ctx context.Context) (model.RateSnapshot, error)
}

// NotificationSink records every order that reaches Completed.
type NotificationSink interface {
	Notify(ctx context.Context, order model.Order) error
}

// activeStatuses selects orders still eligible for processing. Priority never
// gates eligibility; it only fixes the iteration order.
var activeStatuses = []model.OrderStatus{model.OrderStatusPending, model.OrderStatusProcessing}

// ProcessingPipeline runs the two recurring passes over the order backlog.
type ProcessingPipeline struct {
	orders repository.OrderRepository
	rates  RateProvider
	sink   NotificationSink
	logger *slog.Logger
	now    func() time.Time
}

// NewProcessingPipeline constructs the pipeline.
func NewProcessingPipeline(orders repository.OrderRepository, rates RateProvider, sink NotificationSink, logger *slog.Logger) *ProcessingPipeline {
	return &ProcessingPipeline{orders: orders, rates: rates, sink: sink, logger: logger, now: time.Now}
}

// RefreshPriorities recomputes and persists the priority of every Pending or
// Processing order. A failed write is logged and does not stop the batch.
func (p *ProcessingPipeline) RefreshPriorities(ctx context.Context) error {
	batch, err := p.orders.SelectByStatuses(ctx, activeStatuses)
	if err != nil {
		return fmt.Errorf("select orders: %w", err)
	}

	now := p.now()
	for _, order := range batch {
		score := PriorityScore(order.TotalAmount, order.OrderDate, now)
		if err := p.orders.UpdatePriority(ctx, order.ID, score); err != nil {
			p.logger.Error("update priority failed",
				slog.Int64("order_id", order.ID),
				slog.String("error", err.Error()))
		}
	}
	return nil
}

// ProcessOrders runs one processing pass: fetch a rate snapshot, then walk the
// backlog in descending priority order converting each order to the base
// currency. A rate fetch failure aborts the pass before any order is touched;
// per-order failures are isolated and retried on a later pass.
func (p *ProcessingPipeline) ProcessOrders(ctx context.Context) error {
	snapshot, err := p.rates.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch rates: %w", err)
	}

	batch, err := p.orders.SelectByStatuses(ctx, activeStatuses)
	if err != nil {
		return fmt.Errorf("select orders: %w", err)
	}

	for _, order := range batch {
		p.processOrder(ctx, snapshot, order)
	}
	return nil
}

func (p *ProcessingPipeline) processOrder(ctx context.Context, snapshot model.RateSnapshot, order model.Order) {
	// Claim the order first so concurrent observers see work in progress and
	// a racing cancel is resolved by the store's legality check.
	claimed, err := p.orders.TransitionStatus(ctx, order.ID, activeStatuses, model.OrderStatusProcessing, nil)
	if err != nil {
		var transition *domainErrors.TransitionError
		if errors.As(err, &transition) {
			p.logger.Info("order skipped, status changed concurrently",
				slog.Int64("order_id", order.ID),
				slog.String("status", string(transition.Current)))
			return
		}
		p.logger.Error("claim order failed",
			slog.Int64("order_id", order.ID),
			slog.String("error", err.Error()))
		return
	}

	rate, ok := snapshot.Lookup(claimed.Currency)
	if !ok {
		// Revert so the order is retried once a later snapshot carries the currency.
		if _, err := p.orders.TransitionStatus(ctx, order.ID, []model.OrderStatus{model.OrderStatusProcessing}, model.OrderStatusPending, nil); err != nil {
			p.logger.Error("revert order failed",
				slog.Int64("order_id", order.ID),
				slog.String("error", err.Error()))
		}
		p.logger.Warn("currency missing from rate snapshot",
			slog.Int64("order_id", order.ID),
			slog.String("currency", claimed.Currency))
		return
	}

	base := claimed.TotalAmount.Mul(rate)
	completed, err := p.orders.TransitionStatus(ctx, order.ID, []model.OrderStatus{model.OrderStatusProcessing}, model.OrderStatusCompleted, &base)
	if err != nil {
		p.logger.Error("complete order failed",
			slog.Int64("order_id", order.ID),
			slog.String("error", err.Error()))
		return
	}

	// The terminal status is the authoritative outcome; a failed notification
	// never rolls it back.
	if err := p.sink.Notify(ctx, *completed); err != nil {
		p.logger.Error("notify completed order failed",
			slog.Int64("order_id", order.ID),
			slog.String("error", err.Error()))
	}
}
