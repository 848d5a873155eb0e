package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/domain"
	"github.com/KilapathiMohanaRao/ReactProjectCart/pkg/database"
	apperrors "github.com/KilapathiMohanaRao/ReactProjectCart/pkg/errors"
)

// OrderRepository implements the order ledger on PostgreSQL. Lines are an
// immutable snapshot, so they live as a JSONB column on the order row
// instead of a child table. NUMERIC amounts cross the wire as text to keep
// full decimal precision.
type OrderRepository struct {
	pool database.DBTX
}

// NewOrderRepository creates a PostgreSQL-backed order repository.
func NewOrderRepository(pool database.DBTX) *OrderRepository {
	return &OrderRepository{pool: pool}
}

const orderColumns = `
	id, user_id, status, lines,
	subtotal::text, coupon_code, coupon_percent, coupon_discount::text,
	manual_percent, manual_discount::text, tax_amount::text, total_amount::text,
	currency, created_at`

// Create appends an order to the ledger.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	linesJSON, err := json.Marshal(o.Lines)
	if err != nil {
		return fmt.Errorf("marshal order lines: %w", err)
	}

	query := `
		INSERT INTO orders (
			id, user_id, status, lines,
			subtotal, coupon_code, coupon_percent, coupon_discount,
			manual_percent, manual_discount, tax_amount, total_amount,
			currency, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err = r.pool.Exec(ctx, query,
		o.ID,
		o.UserID,
		o.Status,
		linesJSON,
		o.Subtotal.String(),
		o.CouponCode,
		o.CouponPercent,
		o.CouponDiscount.String(),
		o.ManualPercent,
		o.ManualDiscount.String(),
		o.TaxAmount.String(),
		o.TotalAmount.String(),
		o.Currency,
		o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// ListByUser returns the user's orders, newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}
	return orders, nil
}

// GetByID retrieves one of the user's orders.
func (r *OrderRepository) GetByID(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1 AND user_id = $2`

	row := r.pool.QueryRow(ctx, query, orderID, userID)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("order", orderID)
		}
		return nil, err
	}
	return o, nil
}

// MarkReceiptStatus records the terminal outcome of the receipt email. This
// is the only update the ledger permits.
func (r *OrderRepository) MarkReceiptStatus(ctx context.Context, orderID, status string) error {
	if status != domain.OrderStatusReceiptSent && status != domain.OrderStatusReceiptError {
		return apperrors.InvalidInput(fmt.Sprintf("invalid receipt status %q", status))
	}

	ct, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`, status, orderID)
	if err != nil {
		return fmt.Errorf("mark receipt status: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("order", orderID)
	}
	return nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o                                            domain.Order
		linesJSON                                    []byte
		subtotal, couponDisc, manualDisc, tax, total string
	)

	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.Status,
		&linesJSON,
		&subtotal,
		&o.CouponCode,
		&o.CouponPercent,
		&couponDisc,
		&o.ManualPercent,
		&manualDisc,
		&tax,
		&total,
		&o.Currency,
		&o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}

	if err := json.Unmarshal(linesJSON, &o.Lines); err != nil {
		return nil, fmt.Errorf("unmarshal order lines: %w", err)
	}
	if o.Lines == nil {
		o.Lines = []domain.OrderLine{}
	}

	for _, field := range []struct {
		raw string
		dst *decimal.Decimal
	}{
		{subtotal, &o.Subtotal},
		{couponDisc, &o.CouponDiscount},
		{manualDisc, &o.ManualDiscount},
		{tax, &o.TaxAmount},
		{total, &o.TotalAmount},
	} {
		d, err := decimal.NewFromString(field.raw)
		if err != nil {
			return nil, fmt.Errorf("parse order amount %q: %w", field.raw, err)
		}
		*field.dst = d
	}

	return &o, nil
}
