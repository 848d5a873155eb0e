package repository

import (
	"context"

	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/domain"
)

// CartRepository defines cart persistence. One cart per user, overwritten
// whole on every mutation.
type CartRepository interface {
	// Get retrieves the user's cart. A missing cart is a NotFound error;
	// callers that treat absence as an empty cart handle that themselves.
	Get(ctx context.Context, userID string) (*domain.Cart, error)

	// Save persists the cart, replacing any existing cart for the user.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the user's cart.
	Delete(ctx context.Context, userID string) error
}

// OrderRepository is the append-only order ledger. Orders are never
// updated or deleted once written, except for the receipt status mark.
type OrderRepository interface {
	// Create appends an order to the ledger.
	Create(ctx context.Context, order *domain.Order) error

	// ListByUser returns the user's orders, newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)

	// GetByID retrieves one of the user's orders.
	GetByID(ctx context.Context, userID, orderID string) (*domain.Order, error)

	// MarkReceiptStatus records the terminal outcome of the receipt email.
	MarkReceiptStatus(ctx context.Context, orderID, status string) error
}

// UserRepository defines account persistence.
type UserRepository interface {
	// Create inserts a new user. A taken username or email is an
	// AlreadyExists error.
	Create(ctx context.Context, user *domain.User) error

	// GetByUsername retrieves a user for login.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
