// Package sender delivers order receipts to the customer's email through a
// transactional-email provider. Delivery is a single attempt; the checkout
// flow never waits on it or retries it.
package sender

import (
	"context"

	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/domain"
)

// Receipt is the rendered email payload for a placed order. Amounts are
// already formatted to two decimal places; this is a presentation type.
type Receipt struct {
	OrderID   string        `json:"order_id"`
	ToEmail   string        `json:"to_email"`
	ToName    string        `json:"to_name"`
	Subject   string        `json:"subject"`
	Lines     []ReceiptLine `json:"lines"`
	Subtotal  string        `json:"subtotal"`
	Discounts string        `json:"discounts"`
	Tax       string        `json:"tax"`
	Total     string        `json:"total"`
	Currency  string        `json:"currency"`
}

// ReceiptLine is one rendered order line.
type ReceiptLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Amount   string `json:"amount"`
}

// NewReceipt renders an order into the email payload.
func NewReceipt(order *domain.Order, identity *domain.Identity) Receipt {
	lines := make([]ReceiptLine, len(order.Lines))
	for i := range order.Lines {
		l := &order.Lines[i]
		lines[i] = ReceiptLine{
			Name:     l.Name,
			Quantity: l.Quantity,
			Amount:   l.ExtendedPrice().StringFixed(2),
		}
	}

	discounts := order.CouponDiscount.Add(order.ManualDiscount)

	return Receipt{
		OrderID:   order.ID,
		ToEmail:   identity.Email,
		ToName:    identity.Username,
		Subject:   "Your Ratanstore order " + order.ID,
		Lines:     lines,
		Subtotal:  order.Subtotal.StringFixed(2),
		Discounts: discounts.StringFixed(2),
		Tax:       order.TaxAmount.StringFixed(2),
		Total:     order.TotalAmount.StringFixed(2),
		Currency:  order.Currency,
	}
}

// Sender delivers a receipt through one channel.
type Sender interface {
	Name() string
	Send(ctx context.Context, receipt Receipt) error
}
