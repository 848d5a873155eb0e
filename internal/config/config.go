package config

import (
	"fmt"

	pkgconfig "github.com/KilapathiMohanaRao/ReactProjectCart/pkg/config"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort          int      `env:"HTTP_PORT" envDefault:"8080"`
	RequestTimeoutSec int      `env:"REQUEST_TIMEOUT_SECONDS" envDefault:"30"`
	CORSOrigins       []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"" envSeparator:","`

	// Redis (cart store)
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Cart TTL in hours (default: 7 days)
	CartTTLHours int `env:"CART_TTL_HOURS" envDefault:"168"`

	// PostgreSQL (order ledger, users)
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"storefront"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"storefront"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"storefront"`
	PostgresSSL  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	DBMaxConns            int32 `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns            int32 `env:"DB_MIN_CONNS" envDefault:"2"`
	DBMaxConnLifetimeMins int   `env:"DB_MAX_CONN_LIFETIME_MINUTES" envDefault:"60"`
	DBMaxConnIdleTimeMins int   `env:"DB_MAX_CONN_IDLE_MINUTES" envDefault:"10"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Identity tokens
	JWTSecret string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	JWTExpiry string `env:"JWT_EXPIRY" envDefault:"24h"`

	// Pricing
	Currency    string         `env:"CURRENCY" envDefault:"INR"`
	CouponCodes map[string]int `env:"COUPON_CODES" envDefault:"RATAN10:10,RATAN20:20,RATAN30:30" envSeparator:"," envKeyValSeparator:":"`

	// UPI payment reference
	UPIPayeeID   string `env:"UPI_PAYEE_ID" envDefault:"9949237674-2@ybl"`
	UPIPayeeName string `env:"UPI_PAYEE_NAME" envDefault:"Ratanstore"`

	// Receipt email
	EmailSender       string `env:"EMAIL_SENDER" envDefault:"mock"`
	EmailAPIURL       string `env:"EMAIL_API_URL" envDefault:""`
	EmailAPIKey       string `env:"EMAIL_API_KEY" envDefault:""`
	ReceiptTimeoutSec int    `env:"RECEIPT_TIMEOUT_SECONDS" envDefault:"30"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.CartTTLHours < 1 {
		return fmt.Errorf("cart TTL must be at least 1 hour, got %d", c.CartTTLHours)
	}
	for code, percent := range c.CouponCodes {
		if percent <= 0 || percent >= 100 {
			return fmt.Errorf("coupon %q: discount percent must be in (0, 100), got %d", code, percent)
		}
	}
	if c.EmailSender != "mock" && c.EmailSender != "emailapi" {
		return fmt.Errorf("email sender must be mock or emailapi, got %q", c.EmailSender)
	}
	if c.EmailSender == "emailapi" && c.EmailAPIURL == "" {
		return fmt.Errorf("EMAIL_API_URL is required when the emailapi sender is selected")
	}
	return nil
}
