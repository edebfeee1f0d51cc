package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domainErrors "github.com/avoronov/ordermart/internal/domain/errors"
	"github.com/avoronov/ordermart/internal/domain/model"
	"github.com/avoronov/ordermart/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool used by the storage. Kept as an
// interface so tests can substitute a pgxmock pool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

// New creates storage with schema initialization. NUMERIC columns are mapped
// to shopspring decimals on every connection.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Orders returns the order repository backed by this storage.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            customer_name TEXT NOT NULL,
            total_amount NUMERIC NOT NULL,
            currency TEXT NOT NULL,
            status TEXT NOT NULL,
            priority NUMERIC NOT NULL DEFAULT 0,
            base_amount NUMERIC,
            order_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, priority DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

const orderColumns = `id, customer_name, total_amount, currency, status, priority, base_amount, order_date, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.CustomerName, &o.TotalAmount, &o.Currency, &o.Status, &o.Priority, &o.BaseAmount, &o.OrderDate, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func statusStrings(statuses []model.OrderStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	const query = `INSERT INTO orders (customer_name, total_amount, currency, status, priority, order_date)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING id, updated_at`
	created := *order
	err := r.storage.pool.QueryRow(ctx, query,
		order.CustomerName, order.TotalAmount, order.Currency, order.Status, order.Priority, order.OrderDate,
	).Scan(&created.ID, &created.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE status <> $1 ORDER BY order_date DESC`
	rows, err := r.storage.pool.Query(ctx, query, model.OrderStatusCancelled)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *orderRepository) SelectByStatuses(ctx context.Context, statuses []model.OrderStatus) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE status = ANY($1) ORDER BY priority DESC, id`
	rows, err := r.storage.pool.Query(ctx, query, statusStrings(statuses))
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func collectOrders(rows pgx.Rows) ([]model.Order, error) {
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.TotalAmount, &o.Currency, &o.Status, &o.Priority, &o.BaseAmount, &o.OrderDate, &o.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) UpdatePriority(ctx context.Context, orderID int64, priority decimal.Decimal) error {
	const query = `UPDATE orders SET priority=$2, updated_at=NOW() WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, orderID, priority)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// TransitionStatus performs the atomic read-check-write of the order state
// machine in a single statement. When the legality check fails the current
// status is re-read to distinguish a missing order from an illegal edge.
func (r *orderRepository) TransitionStatus(ctx context.Context, orderID int64, from []model.OrderStatus, to model.OrderStatus, baseAmount *decimal.Decimal) (*model.Order, error) {
	const query = `UPDATE orders
                   SET status=$2, base_amount=COALESCE($3::numeric, base_amount), updated_at=NOW()
                   WHERE id=$1 AND status = ANY($4)
                   RETURNING ` + orderColumns
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, orderID, to, baseAmount, statusStrings(from)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			current, getErr := r.GetByID(ctx, orderID)
			if getErr != nil {
				return nil, getErr
			}
			return nil, &domainErrors.TransitionError{Current: current.Status}
		}
		return nil, err
	}
	return order, nil
}
