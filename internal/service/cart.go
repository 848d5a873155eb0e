package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/catalog"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/domain"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/event"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/repository"
	apperrors "github.com/KilapathiMohanaRao/ReactProjectCart/pkg/errors"
)

// MaxQuantityPerLine bounds a single cart line to keep carts sane.
const MaxQuantityPerLine = 100

// CartView is a cart together with its recomputed price breakdown. Every
// read and every mutation returns one, so the client never sees a cart
// whose totals are stale.
type CartView struct {
	Cart      *domain.Cart         `json:"cart"`
	ItemCount int                  `json:"item_count"`
	Pricing   domain.PricingResult `json:"pricing"`
}

// CartService implements cart mutations and pricing reads. All mutations
// for one user are serialized through the shared lock table.
type CartService struct {
	repo     repository.CartRepository
	catalog  *catalog.Catalog
	coupons  *domain.CouponRegistry
	events   event.Publisher
	locks    *UserLocks
	logger   *slog.Logger
	currency string
}

// NewCartService creates a cart service.
func NewCartService(
	repo repository.CartRepository,
	cat *catalog.Catalog,
	coupons *domain.CouponRegistry,
	events event.Publisher,
	locks *UserLocks,
	logger *slog.Logger,
	currency string,
) *CartService {
	return &CartService{
		repo:     repo,
		catalog:  cat,
		coupons:  coupons,
		events:   events,
		locks:    locks,
		logger:   logger,
		currency: currency,
	}
}

// GetCart returns the user's cart with its price breakdown. A user with no
// stored cart gets an empty one.
func (s *CartService) GetCart(ctx context.Context, userID string) (*CartView, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.view(cart), nil
}

// AddItem adds a catalog product to the cart, merging onto the existing
// line when the product is already present.
func (s *CartService) AddItem(ctx context.Context, userID, productID string) (*CartView, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	product, ok := s.catalog.ByID(productID)
	if !ok {
		return nil, apperrors.NotFound("product", productID)
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if i := cart.FindLineIndex(productID); i >= 0 && cart.Lines[i].Quantity >= MaxQuantityPerLine {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerLine))
	}
	cart.Add(product)

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("user_id", userID),
		slog.String("product_id", productID),
	)
	return s.view(cart), nil
}

// IncreaseItem increments the quantity of a line by one.
func (s *CartService) IncreaseItem(ctx context.Context, userID, productID string) (*CartView, error) {
	return s.mutateLine(ctx, userID, productID, "item quantity increased", func(cart *domain.Cart) error {
		if i := cart.FindLineIndex(productID); i >= 0 && cart.Lines[i].Quantity >= MaxQuantityPerLine {
			return apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerLine))
		}
		return cart.Increase(productID)
	})
}

// DecreaseItem decrements the quantity of a line by one. A line at
// quantity 1 stays untouched and the caller gets a MINIMUM_QUANTITY
// conflict; removal is its own operation.
func (s *CartService) DecreaseItem(ctx context.Context, userID, productID string) (*CartView, error) {
	return s.mutateLine(ctx, userID, productID, "item quantity decreased", func(cart *domain.Cart) error {
		return cart.Decrease(productID)
	})
}

// RemoveItem deletes a line regardless of quantity.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (*CartView, error) {
	return s.mutateLine(ctx, userID, productID, "item removed from cart", func(cart *domain.Cart) error {
		return cart.Remove(productID)
	})
}

// ClearCart empties the cart and resets its discount selections.
func (s *CartService) ClearCart(ctx context.Context, userID string) (*CartView, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	if err := s.repo.Delete(ctx, userID); err != nil {
		return nil, fmt.Errorf("delete cart: %w", err)
	}

	s.events.CartCleared(ctx, userID)
	s.logger.InfoContext(ctx, "cart cleared", slog.String("user_id", userID))

	return s.view(domain.NewCart(userID, s.currency)), nil
}

// ApplyCoupon validates a code against the registry and stores the
// selection on the cart. An unknown code is a normal negative result, not
// an error; it clears any previously applied code.
func (s *CartService) ApplyCoupon(ctx context.Context, userID, code string) (*CartView, domain.CouponResult, error) {
	if userID == "" {
		return nil, domain.CouponResult{}, apperrors.InvalidInput("user id is required")
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return nil, domain.CouponResult{}, err
	}

	result := s.coupons.Validate(code)
	if result.IsValid {
		cart.CouponCode = code
	} else {
		cart.CouponCode = ""
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, domain.CouponResult{}, err
	}

	s.logger.InfoContext(ctx, "coupon applied",
		slog.String("user_id", userID),
		slog.String("code", code),
		slog.Bool("valid", result.IsValid),
	)
	return s.view(cart), result, nil
}

// SetManualDiscount stores a manual discount selection. The percent must
// come from the allowed set; selecting replaces the previous value.
func (s *CartService) SetManualDiscount(ctx context.Context, userID string, percent int) (*CartView, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if !domain.IsAllowedManualDiscount(percent) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("manual discount must be one of %v", domain.AllowedManualDiscounts))
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.ManualDiscountPercent = percent
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "manual discount set",
		slog.String("user_id", userID),
		slog.Int("percent", percent),
	)
	return s.view(cart), nil
}

// ResetDiscounts clears the applied coupon and the manual discount.
func (s *CartService) ResetDiscounts(ctx context.Context, userID string) (*CartView, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.CouponCode = ""
	cart.ManualDiscountPercent = 0
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "discounts reset", slog.String("user_id", userID))
	return s.view(cart), nil
}

// PriceCart recomputes the breakdown for a cart using its stored discount
// selections. The coupon is re-validated on every computation so a code
// removed from the registry stops discounting immediately.
func (s *CartService) PriceCart(cart *domain.Cart) domain.PricingResult {
	couponPercent := 0
	couponCode := ""
	if cart.CouponCode != "" {
		if result := s.coupons.Validate(cart.CouponCode); result.IsValid {
			couponPercent = result.DiscountPercent
			couponCode = cart.CouponCode
		}
	}
	return domain.Price(cart.Subtotal(), couponCode, couponPercent, cart.ManualDiscountPercent)
}

func (s *CartService) mutateLine(ctx context.Context, userID, productID, logMsg string, mutate func(*domain.Cart) error) (*CartView, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("cart item", productID)
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	if err := mutate(cart); err != nil {
		switch {
		case errors.Is(err, domain.ErrLineNotFound):
			return nil, apperrors.NotFound("cart item", productID)
		case errors.Is(err, domain.ErrQuantityAtMinimum):
			name := productID
			if i := cart.FindLineIndex(productID); i >= 0 {
				name = cart.Lines[i].Name
			}
			return nil, apperrors.QuantityAtMinimum(name)
		default:
			return nil, err
		}
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, logMsg,
		slog.String("user_id", userID),
		slog.String("product_id", productID),
	)
	return s.view(cart), nil
}

func (s *CartService) save(ctx context.Context, cart *domain.Cart) error {
	if err := s.repo.Save(ctx, cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	s.events.CartUpdated(ctx, cart)
	return nil
}

func (s *CartService) view(cart *domain.Cart) *CartView {
	return &CartView{
		Cart:      cart,
		ItemCount: cart.ItemCount(),
		Pricing:   s.PriceCart(cart),
	}
}

func (s *CartService) getOrCreateCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.NewCart(userID, s.currency), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}
