package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/auth"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/catalog"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/service"
	"github.com/KilapathiMohanaRao/ReactProjectCart/pkg/health"
	"github.com/KilapathiMohanaRao/ReactProjectCart/pkg/middleware"
)

// RouterDeps bundles everything the router wires together.
type RouterDeps struct {
	Catalog    *catalog.Catalog
	Users      *service.UserService
	Carts      *service.CartService
	Checkout   *service.CheckoutService
	Orders     *service.OrderService
	Receipts   service.ReceiptDispatcher
	Tokens     *auth.JWTManager
	Health     *health.Handler
	Logger     *slog.Logger
	CORS       CORSConfig
	ReqTimeout time.Duration
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(CORS(deps.CORS))
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(chimiddleware.Compress(5))
	r.Use(chimiddleware.Timeout(deps.ReqTimeout))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(deps.Logger))

	// Health check endpoints
	r.Get("/health/live", deps.Health.LivenessHandler())
	r.Get("/health/ready", deps.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	catalogHandler := NewCatalogHandler(deps.Catalog, deps.Logger)
	authHandler := NewAuthHandler(deps.Users, deps.Logger)
	cartHandler := NewCartHandler(deps.Carts, deps.Logger)
	checkoutHandler := NewCheckoutHandler(deps.Checkout, deps.Orders, deps.Receipts, deps.Logger)
	orderHandler := NewOrderHandler(deps.Orders, deps.Logger)

	// Catalog endpoints (public)
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/", catalogHandler.ListCategories)
		r.Get("/{category}", catalogHandler.ListProducts)
	})

	// Auth endpoints (public)
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(Authenticate(deps.Tokens))
			r.Get("/me", authHandler.Me)
		})
	})

	// Cart endpoints. Guests shop against a session-keyed cart, so these
	// take either a token or an X-Session-ID header.
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(Identify(deps.Tokens))

		r.Get("/", cartHandler.GetCart)
		r.Delete("/", cartHandler.ClearCart)

		r.Post("/items", cartHandler.AddItem)
		r.Post("/items/{productID}/increase", cartHandler.IncreaseItem)
		r.Post("/items/{productID}/decrease", cartHandler.DecreaseItem)
		r.Delete("/items/{productID}", cartHandler.RemoveItem)

		r.Post("/coupon", cartHandler.ApplyCoupon)
		r.Put("/discount", cartHandler.SetDiscount)
		r.Delete("/discounts", cartHandler.ResetDiscounts)
	})

	// Checkout endpoints. Deliberately not behind Authenticate: an empty
	// cart answers 400 before a missing login answers 401.
	r.Route("/api/v1/checkout", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(Identify(deps.Tokens))

		r.Post("/", checkoutHandler.PlaceOrder)
		r.Get("/payment-reference", checkoutHandler.PaymentReference)
	})

	// Receipt resend and the order ledger (auth required)
	r.Group(func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(Authenticate(deps.Tokens))

		r.Post("/api/v1/receipt", checkoutHandler.ResendReceipt)
		r.Get("/api/v1/orders", orderHandler.List)
		r.Get("/api/v1/orders/{orderID}", orderHandler.Get)
	})

	return r
}
