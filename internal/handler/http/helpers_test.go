package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/auth"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/catalog"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/domain"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/event"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/payment"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/service"
	"github.com/KilapathiMohanaRao/ReactProjectCart/pkg/health"
)

// ============================================================================
// Mock repositories
// ============================================================================

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *mockCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *mockCartRepository) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *mockOrderRepository) GetByID(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, userID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockOrderRepository) MarkReceiptStatus(ctx context.Context, orderID, status string) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) DispatchAsync(ctx context.Context, order *domain.Order, identity *domain.Identity) {
	m.Called(ctx, order, identity)
}

// ============================================================================
// Test fixtures
// ============================================================================

type fixtures struct {
	carts      *mockCartRepository
	orders     *mockOrderRepository
	users      *mockUserRepository
	dispatcher *mockDispatcher
	tokens     *auth.JWTManager
	router     http.Handler
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newFixtures wires real services over mock repositories behind the
// production route layout, so middleware behavior is tested end-to-end.
func newFixtures(t *testing.T) *fixtures {
	t.Helper()

	cat, err := catalog.Load()
	require.NoError(t, err)

	logger := testLogger()
	tokens := auth.NewJWTManager("test-secret", time.Hour)
	locks := service.NewUserLocks()
	events := event.NopPublisher{}
	coupons := domain.NewCouponRegistry(domain.DefaultCoupons())
	upi := payment.NewUPIBuilder("9949237674-2@ybl", "Ratanstore", "INR")

	f := &fixtures{
		carts:      new(mockCartRepository),
		orders:     new(mockOrderRepository),
		users:      new(mockUserRepository),
		dispatcher: new(mockDispatcher),
		tokens:     tokens,
	}

	cartSvc := service.NewCartService(f.carts, cat, coupons, events, locks, logger, "INR")
	checkoutSvc := service.NewCheckoutService(f.carts, f.orders, cartSvc, f.dispatcher, upi, events, locks, logger)
	orderSvc := service.NewOrderService(f.orders, logger)
	userSvc := service.NewUserService(f.users, tokens, events, logger)

	f.router = NewRouter(RouterDeps{
		Catalog:    cat,
		Users:      userSvc,
		Carts:      cartSvc,
		Checkout:   checkoutSvc,
		Orders:     orderSvc,
		Receipts:   f.dispatcher,
		Tokens:     tokens,
		Health:     health.NewHandler(),
		Logger:     logger,
		CORS:       CORSConfig{Environment: "development"},
		ReqTimeout: 5 * time.Second,
	})
	return f
}

// token issues a signed JWT for the canonical test user.
func (f *fixtures) token(t *testing.T) string {
	t.Helper()
	signed, err := f.tokens.Generate(&domain.User{
		ID:       "user-1",
		Username: "ratan",
		Email:    "ratan@example.com",
	})
	require.NoError(t, err)
	return signed
}

func (f *fixtures) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

// decodeResponse reads the body into the standard envelope.
func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response {
	t.Helper()
	var resp response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// cartWith returns a stored cart holding the given product lines.
func cartWith(owner string, lines ...domain.CartLine) *domain.Cart {
	cart := domain.NewCart(owner, "INR")
	cart.Lines = lines
	return cart
}

func tomatoLine(qty int) domain.CartLine {
	return domain.CartLine{
		ProductID: "tomato",
		Name:      "Tomato",
		UnitPrice: decimal.NewFromInt(40),
		Quantity:  qty,
	}
}
