package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order status constants. Orders in the ledger are immutable; the status
// only distinguishes a freshly placed order from one whose receipt email
// reached a terminal state.
const (
	OrderStatusPlaced       = "placed"
	OrderStatusReceiptSent  = "receipt_sent"
	OrderStatusReceiptError = "receipt_error"
)

// Order is an immutable snapshot of a cart and its price breakdown at the
// moment checkout succeeded. Lines and amounts never change after the
// ledger write is acknowledged.
type Order struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	Status         string          `json:"status"`
	Lines          []OrderLine     `json:"lines"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	CouponCode     string          `json:"coupon_code,omitempty"`
	CouponPercent  int             `json:"coupon_percent"`
	CouponDiscount decimal.Decimal `json:"coupon_discount"`
	ManualPercent  int             `json:"manual_percent"`
	ManualDiscount decimal.Decimal `json:"manual_discount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Currency       string          `json:"currency"`
	CreatedAt      time.Time       `json:"created_at"`
}

// OrderLine is a frozen copy of a cart line.
type OrderLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// ExtendedPrice returns unit price times quantity at full precision.
func (l *OrderLine) ExtendedPrice() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// NewOrder freezes the cart and its pricing into an order owned by the
// given user. The cart is copied line by line so clearing it afterwards
// cannot alter the order. The owner is passed explicitly because a guest
// cart's key is a session handle, not the buyer's user ID.
func NewOrder(userID string, cart *Cart, pricing PricingResult) *Order {
	lines := make([]OrderLine, len(cart.Lines))
	for i, l := range cart.Lines {
		lines[i] = OrderLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		}
	}

	return &Order{
		ID:             uuid.New().String(),
		UserID:         userID,
		Status:         OrderStatusPlaced,
		Lines:          lines,
		Subtotal:       pricing.Subtotal,
		CouponCode:     pricing.CouponCode,
		CouponPercent:  pricing.CouponPercent,
		CouponDiscount: pricing.CouponDiscount,
		ManualPercent:  pricing.ManualPercent,
		ManualDiscount: pricing.ManualDiscount,
		TaxAmount:      pricing.TaxAmount,
		TotalAmount:    pricing.Total,
		Currency:       cart.Currency,
		CreatedAt:      time.Now().UTC(),
	}
}
