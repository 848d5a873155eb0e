package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Cart mutation errors.
var (
	// ErrLineNotFound is returned when a cart operation targets a product
	// that has no line in the cart.
	ErrLineNotFound = errors.New("cart line not found")

	// ErrQuantityAtMinimum is returned when a decrease would take a line
	// below quantity 1. The line is left untouched; removal is a separate,
	// explicit operation.
	ErrQuantityAtMinimum = errors.New("quantity already at minimum")
)

// Cart represents a user's shopping cart. Lines keep insertion order and
// hold at most one entry per product ID. Discount selections (applied coupon
// code and manual discount percent) live on the cart so pricing can be
// recomputed on every read.
type Cart struct {
	UserID                string          `json:"user_id"`
	Lines                 []CartLine      `json:"lines"`
	CouponCode            string          `json:"coupon_code,omitempty"`
	ManualDiscountPercent int             `json:"manual_discount_percent"`
	Currency              string          `json:"currency"`
	Version               int             `json:"version"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// CartLine is a single product entry in the cart. The unit price is a copy
// of the catalog price at the moment the product was added.
type CartLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"image_url,omitempty"`
}

// ExtendedPrice returns unit price times quantity at full precision.
func (l *CartLine) ExtendedPrice() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// NewCart returns an empty cart for the given user.
func NewCart(userID, currency string) *Cart {
	now := time.Now().UTC()
	return &Cart{
		UserID:    userID,
		Lines:     []CartLine{},
		Currency:  currency,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FindLineIndex returns the index of the line for the given product ID, or
// -1 if the product is not in the cart.
func (c *Cart) FindLineIndex(productID string) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Add puts the product in the cart. A product already present has its
// quantity incremented by one; a new product is appended at quantity 1 with
// the price copied from the catalog entry.
func (c *Cart) Add(p Product) {
	if i := c.FindLineIndex(p.ID); i >= 0 {
		c.Lines[i].Quantity++
		c.touch()
		return
	}
	c.Lines = append(c.Lines, CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  1,
		ImageURL:  p.ImageURL,
	})
	c.touch()
}

// Increase increments the quantity of an existing line by one.
func (c *Cart) Increase(productID string) error {
	i := c.FindLineIndex(productID)
	if i < 0 {
		return ErrLineNotFound
	}
	c.Lines[i].Quantity++
	c.touch()
	return nil
}

// Decrease decrements the quantity of an existing line by one. A line at
// quantity 1 is never decremented or removed; the caller gets
// ErrQuantityAtMinimum and the cart is unchanged.
func (c *Cart) Decrease(productID string) error {
	i := c.FindLineIndex(productID)
	if i < 0 {
		return ErrLineNotFound
	}
	if c.Lines[i].Quantity <= 1 {
		return ErrQuantityAtMinimum
	}
	c.Lines[i].Quantity--
	c.touch()
	return nil
}

// Remove deletes the line for the given product ID regardless of quantity.
func (c *Cart) Remove(productID string) error {
	i := c.FindLineIndex(productID)
	if i < 0 {
		return ErrLineNotFound
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	c.touch()
	return nil
}

// Clear empties the cart and resets the discount selections.
func (c *Cart) Clear() {
	c.Lines = []CartLine{}
	c.CouponCode = ""
	c.ManualDiscountPercent = 0
	c.touch()
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// ItemCount returns the total quantity across all lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, l := range c.Lines {
		count += l.Quantity
	}
	return count
}

// Subtotal sums the extended prices of all lines at full precision.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Lines {
		total = total.Add(c.Lines[i].ExtendedPrice())
	}
	return total
}

func (c *Cart) touch() {
	c.Version++
	c.UpdatedAt = time.Now().UTC()
}
