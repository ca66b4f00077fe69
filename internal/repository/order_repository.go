package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/storefront-service/internal/domain"
)

// OrderRepository encapsulates order persistence. Line items live in a JSONB
// column next to the order so every write is a single-row statement.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	CountByStatus(ctx context.Context, statuses []string) (int64, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository instantiates repository.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

const orderColumns = `id, customer_name, user_id, order_date, status, total_amount, items`

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	const query = `
        INSERT INTO orders (id, customer_name, user_id, order_date, status, total_amount, items)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`

	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now().UTC()
	}
	if order.Items == nil {
		order.Items = []domain.LineItem{}
	}
	_, err := r.pool.Exec(ctx, query,
		order.ID,
		order.CustomerName,
		order.UserID,
		order.OrderDate,
		order.Status,
		order.TotalAmount,
		order.Items,
	)
	return err
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`

	var order domain.Order
	if err := scanOrder(r.pool.QueryRow(ctx, query, id), &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY order_date DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Order{}
	for rows.Next() {
		var order domain.Order
		if err := scanOrder(rows, &order); err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	return result, rows.Err()
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	query := `UPDATE orders SET status=$1 WHERE id=$2 RETURNING ` + orderColumns

	var order domain.Order
	if err := scanOrder(r.pool.QueryRow(ctx, query, status, id), &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// TotalRevenue sums total_amount across all orders; zero when there are none.
func (r *orderRepository) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var raw string
	if err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(total_amount), 0)::text FROM orders`).Scan(&raw); err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(raw)
}

func (r *orderRepository) CountByStatus(ctx context.Context, statuses []string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE status = ANY($1)`, statuses).Scan(&count)
	return count, err
}

func scanOrder(row pgx.Row, order *domain.Order) error {
	if err := row.Scan(
		&order.ID,
		&order.CustomerName,
		&order.UserID,
		&order.OrderDate,
		&order.Status,
		&order.TotalAmount,
		&order.Items,
	); err != nil {
		return err
	}
	if order.Items == nil {
		order.Items = []domain.LineItem{}
	}
	return nil
}
