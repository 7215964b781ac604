package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"bizdash-be/internal/logger"
	"bizdash-be/internal/pricing"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

var (
	errDuplicateCode = errors.New("order code already used")

	PgUniqueViolation = "23505"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, f Filter) ([]*Order, error)
	Update(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context) (Summary, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `id, code, client_name, delivery_address, payment_status, delivery_status,
	expected_delivery_date, items, shipping_cost, total_amount, delivery_progress,
	customer_satisfaction, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var (
		o            Order
		rawItems     []byte
		satisfaction sql.NullInt32
	)

	err := row.Scan(
		&o.ID, &o.Code, &o.ClientName, &o.DeliveryAddress, &o.PaymentStatus, &o.DeliveryStatus,
		&o.ExpectedDeliveryDate, &rawItems, &o.ShippingCost, &o.TotalAmount, &o.DeliveryProgress,
		&satisfaction, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if satisfaction.Valid {
		v := int(satisfaction.Int32)
		o.CustomerSatisfaction = &v
	}

	var lines []pricing.LineItem
	if len(rawItems) > 0 {
		if err := json.Unmarshal(rawItems, &lines); err != nil {
			return nil, fmt.Errorf("decode order items: %w", err)
		}
	}
	o.Items = make([]Item, 0, len(lines))
	for _, l := range lines {
		o.Items = append(o.Items, Item{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	return &o, nil
}

func encodeItems(o *Order) ([]byte, error) {
	b, err := json.Marshal(o.LineItems())
	if err != nil {
		return nil, fmt.Errorf("encode order items: %w", err)
	}
	return b, nil
}

func (r *repository) Create(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("order_code", o.Code),
	)

	items, err := encodeItems(o)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO orders (
			code, client_name, delivery_address, payment_status, delivery_status,
			expected_delivery_date, items, shipping_cost, total_amount, delivery_progress,
			customer_satisfaction
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`
	err = r.db.QueryRowContext(ctx, query,
		o.Code, o.ClientName, o.DeliveryAddress, o.PaymentStatus, o.DeliveryStatus,
		o.ExpectedDeliveryDate, items, o.ShippingCost, o.TotalAmount, o.DeliveryProgress,
		o.CustomerSatisfaction,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
			return errDuplicateCode
		}
		log.Error("failed to insert order", zap.Error(err))
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get order",
			zap.String("layer", "repository"),
			zap.String("order_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return o, nil
}

func (r *repository) List(ctx context.Context, f Filter) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	query := `SELECT ` + orderColumns + ` FROM orders`

	where := []string{}
	args := []interface{}{}

	if f.DeliveryStatus != nil {
		args = append(args, *f.DeliveryStatus)
		where = append(where, fmt.Sprintf("delivery_status = $%d", len(args)))
	}
	if f.PaymentStatus != nil {
		args = append(args, *f.PaymentStatus)
		where = append(where, fmt.Sprintf("payment_status = $%d", len(args)))
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("order list query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("order row scan failed", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		log.Error("order rows iteration failed", zap.Error(err))
		return nil, err
	}

	return orders, nil
}

func (r *repository) Update(ctx context.Context, o *Order) error {
	items, err := encodeItems(o)
	if err != nil {
		return err
	}

	query := `
		UPDATE orders
		SET client_name = $2, delivery_address = $3, payment_status = $4, delivery_status = $5,
			expected_delivery_date = $6, items = $7, shipping_cost = $8, total_amount = $9,
			delivery_progress = $10, customer_satisfaction = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING code, created_at, updated_at
	`
	err = r.db.QueryRowContext(ctx, query,
		o.ID, o.ClientName, o.DeliveryAddress, o.PaymentStatus, o.DeliveryStatus,
		o.ExpectedDeliveryDate, items, o.ShippingCost, o.TotalAmount,
		o.DeliveryProgress, o.CustomerSatisfaction,
	).Scan(&o.Code, &o.CreatedAt, &o.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to update order",
			zap.String("layer", "repository"),
			zap.String("order_id", o.ID),
			zap.Error(err),
		)
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) Summary(ctx context.Context) (Summary, error) {
	var s Summary
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE delivery_status = $1),
			COALESCE(SUM(total_amount), 0)
		FROM orders
	`, pricing.DeliveryDelivered).Scan(&s.TotalOrders, &s.DeliveredOrders, &s.TotalSales)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize orders: %w", err)
	}
	return s, nil
}
