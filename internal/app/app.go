package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/auth"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/catalog"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/config"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/domain"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/event"
	handler "github.com/KilapathiMohanaRao/ReactProjectCart/internal/handler/http"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/payment"
	postgresrepo "github.com/KilapathiMohanaRao/ReactProjectCart/internal/repository/postgres"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/repository/postgres/migrations"
	redisrepo "github.com/KilapathiMohanaRao/ReactProjectCart/internal/repository/redis"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/sender"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/sender/emailapi"
	sendermock "github.com/KilapathiMohanaRao/ReactProjectCart/internal/sender/mock"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/service"
	"github.com/KilapathiMohanaRao/ReactProjectCart/pkg/database"
	"github.com/KilapathiMohanaRao/ReactProjectCart/pkg/health"
	"github.com/KilapathiMohanaRao/ReactProjectCart/pkg/httpclient"
	pkgkafka "github.com/KilapathiMohanaRao/ReactProjectCart/pkg/kafka"
	"github.com/KilapathiMohanaRao/ReactProjectCart/pkg/tracing"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	redisClient    *redis.Client
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "storefront",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	cat, err := catalog.Load()
	if err != nil {
		return nil, err
	}
	logger.Info("catalog loaded", slog.Int("products", cat.Len()))

	pgCfg := database.PostgresConfig{
		Host:            cfg.PostgresHost,
		Port:            cfg.PostgresPort,
		User:            cfg.PostgresUser,
		Password:        cfg.PostgresPass,
		DBName:          cfg.PostgresDB,
		SSLMode:         cfg.PostgresSSL,
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: time.Duration(cfg.DBMaxConnLifetimeMins) * time.Minute,
		MaxConnIdleTime: time.Duration(cfg.DBMaxConnIdleTimeMins) * time.Minute,
	}

	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.String("database", cfg.PostgresDB),
	)

	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	redisClient, err := database.NewRedisClient(ctx, database.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis", slog.String("addr", cfg.RedisAddr))

	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	jwtExpiry, err := time.ParseDuration(cfg.JWTExpiry)
	if err != nil {
		return nil, fmt.Errorf("parse JWT expiry %q: %w", cfg.JWTExpiry, err)
	}

	// Build the dependency graph.
	tokens := auth.NewJWTManager(cfg.JWTSecret, jwtExpiry)
	cartRepo := redisrepo.NewCartRepository(redisClient, time.Duration(cfg.CartTTLHours)*time.Hour)
	orderRepo := postgresrepo.NewOrderRepository(pool)
	userRepo := postgresrepo.NewUserRepository(pool)
	events := event.NewProducer(producer, logger)
	locks := service.NewUserLocks()
	coupons := domain.NewCouponRegistry(cfg.CouponCodes)
	upi := payment.NewUPIBuilder(cfg.UPIPayeeID, cfg.UPIPayeeName, cfg.Currency)

	receiptSender := newReceiptSender(cfg, logger)
	receiptTimeout := time.Duration(cfg.ReceiptTimeoutSec) * time.Second

	cartSvc := service.NewCartService(cartRepo, cat, coupons, events, locks, logger, cfg.Currency)
	receiptSvc := service.NewReceiptService(receiptSender, orderRepo, events, logger, receiptTimeout)
	checkoutSvc := service.NewCheckoutService(cartRepo, orderRepo, cartSvc, receiptSvc, upi, events, locks, logger)
	orderSvc := service.NewOrderService(orderRepo, logger)
	userSvc := service.NewUserService(userRepo, tokens, events, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("redis", func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})
	healthHandler.Register("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})

	router := handler.NewRouter(handler.RouterDeps{
		Catalog:    cat,
		Users:      userSvc,
		Carts:      cartSvc,
		Checkout:   checkoutSvc,
		Orders:     orderSvc,
		Receipts:   receiptSvc,
		Tokens:     tokens,
		Health:     healthHandler,
		Logger:     logger,
		CORS:       handler.CORSConfig{AllowedOrigins: cfg.CORSOrigins, Environment: cfg.Environment},
		ReqTimeout: time.Duration(cfg.RequestTimeoutSec) * time.Second,
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		redisClient:    redisClient,
		producer:       producer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// newReceiptSender selects the configured receipt transport. The mock sender
// logs instead of sending and is the development default.
func newReceiptSender(cfg *config.Config, logger *slog.Logger) sender.Sender {
	if cfg.EmailSender == "emailapi" {
		client := httpclient.New(httpclient.DefaultConfig())
		cb := httpclient.NewCircuitBreakerClient(client, httpclient.DefaultCircuitBreakerConfig("email-api"), logger)
		return emailapi.New(cb, cfg.EmailAPIURL, cfg.EmailAPIKey, logger)
	}
	return sendermock.New(logger)
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components: drain HTTP, flush spans, close
// the Kafka producer, then drop the store connections.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if err := a.redisClient.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}
	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
