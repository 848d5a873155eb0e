package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/domain"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/event"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/payment"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/repository"
	apperrors "github.com/KilapathiMohanaRao/ReactProjectCart/pkg/errors"
)

// Pricer computes the price breakdown for a cart. Implemented by
// CartService; an interface here so checkout tests can fix the breakdown.
type Pricer interface {
	PriceCart(cart *domain.Cart) domain.PricingResult
}

// ReceiptDispatcher kicks off the fire-and-forget receipt email.
type ReceiptDispatcher interface {
	DispatchAsync(ctx context.Context, order *domain.Order, identity *domain.Identity)
}

// CheckoutService turns a cart into a ledger entry. Order placement for one
// user is serialized, the ledger write always precedes the cart clear, and
// the receipt email never blocks the response.
type CheckoutService struct {
	carts    repository.CartRepository
	orders   repository.OrderRepository
	pricer   Pricer
	receipts ReceiptDispatcher
	upi      *payment.UPIBuilder
	events   event.Publisher
	locks    *UserLocks
	logger   *slog.Logger
}

// NewCheckoutService creates a checkout service.
func NewCheckoutService(
	carts repository.CartRepository,
	orders repository.OrderRepository,
	pricer Pricer,
	receipts ReceiptDispatcher,
	upi *payment.UPIBuilder,
	events event.Publisher,
	locks *UserLocks,
	logger *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		orders:   orders,
		pricer:   pricer,
		receipts: receipts,
		upi:      upi,
		events:   events,
		locks:    locks,
		logger:   logger,
	}
}

// PlaceOrder checks the preconditions in their fixed order (empty cart
// first, then missing identity), freezes the cart into an order, appends it
// to the ledger, and only then clears the cart. A failed ledger write
// leaves the cart untouched; a failed cart clear is logged and the placed
// order is still returned.
func (s *CheckoutService) PlaceOrder(ctx context.Context, cartOwnerID string, identity *domain.Identity) (*domain.Order, error) {
	if cartOwnerID != "" {
		unlock := s.locks.Lock(cartOwnerID)
		defer unlock()
	}

	cart, err := s.loadCart(ctx, cartOwnerID)
	if err != nil {
		return nil, err
	}

	if cart == nil || cart.IsEmpty() {
		return nil, apperrors.EmptyCart()
	}
	if identity == nil || identity.UserID == "" {
		return nil, apperrors.AuthRequired()
	}

	pricing := s.pricer.PriceCart(cart)
	order := domain.NewOrder(identity.UserID, cart, pricing)

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	if err := s.carts.Delete(ctx, cartOwnerID); err != nil {
		// The order is already in the ledger; the stale cart will be
		// overwritten by the next mutation or expire on its own.
		s.logger.ErrorContext(ctx, "clear cart after order",
			slog.String("cart_owner", cartOwnerID),
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	} else {
		s.events.CartCleared(ctx, cartOwnerID)
	}

	s.events.OrderPlaced(ctx, order)
	s.receipts.DispatchAsync(ctx, order, identity)

	s.logger.InfoContext(ctx, "order placed",
		slog.String("user_id", identity.UserID),
		slog.String("order_id", order.ID),
		slog.String("total", order.TotalAmount.StringFixed(2)),
	)
	return order, nil
}

// PaymentReference renders the UPI deep link for the cart's current total.
func (s *CheckoutService) PaymentReference(ctx context.Context, userID string) (string, error) {
	cart, err := s.loadCart(ctx, userID)
	if err != nil {
		return "", err
	}
	if cart == nil || cart.IsEmpty() {
		return "", apperrors.EmptyCart()
	}

	pricing := s.pricer.PriceCart(cart)
	return s.upi.Reference(pricing.Total), nil
}

// loadCart fetches the user's cart, treating an absent cart (or blank user)
// as nil.
func (s *CheckoutService) loadCart(ctx context.Context, userID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, nil
	}
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}
