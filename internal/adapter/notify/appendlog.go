package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avoronov/ordermart/internal/domain/model"
)

// entry is one line of the completed-order audit trail.
type entry struct {
	OrderID     int64            `json:"order_id"`
	Customer    string           `json:"customer"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
	Currency    string           `json:"currency"`
	BaseAmount  *decimal.Decimal `json:"total_amount_in_base_currency"`
	CompletedAt time.Time        `json:"completed_at"`
}

// AppendLog records completed orders to an append-only JSON-lines file.
type AppendLog struct {
	mu   sync.Mutex
	file *os.File
	now  func() time.Time
}

// NewAppendLog opens (or creates) the log file in append mode.
func NewAppendLog(path string) (*AppendLog, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open notification log: %w", err)
	}
	return &AppendLog{file: file, now: time.Now}, nil
}

// Notify appends one completed order to the log.
func (l *AppendLog) Notify(_ context.Context, order model.Order) error {
	line, err := json.Marshal(entry{
		OrderID:     order.ID,
		Customer:    order.CustomerName,
		TotalAmount: order.TotalAmount,
		Currency:    order.Currency,
		BaseAmount:  order.BaseAmount,
		CompletedAt: l.now(),
	})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append notification: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (l *AppendLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}
