package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	// Supplier endpoints and credentials.
	SupplierSearchURL string
	SupplierBookURL   string
	SupplierRatesURL  string
	SupplierKey       string
	SupplierSecret    string

	// Mutual-TLS material. All three must be present (and loadable) or all
	// empty; a partial set is a fatal configuration error.
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string

	SupplierTimeout time.Duration
	SupplierRPS     int

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	StripeKey string

	CacheTTL time.Duration
	CartTTL  time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/tripdesk?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),

		SupplierSearchURL: env("SUPPLIER_SEARCH_URL", "https://api-mtls.hotelbeds.com/hotel-api/1.0/hotels"),
		SupplierBookURL:   env("SUPPLIER_BOOK_URL", "https://api-mtls.hotelbeds.com/hotel-api/1.0/bookings"),
		SupplierRatesURL:  env("SUPPLIER_RATES_URL", "https://api-mtls.hotelbeds.com/hotel-api/1.2/checkrates"),
		SupplierKey:       env("SUPPLIER_KEY", ""),
		SupplierSecret:    env("SUPPLIER_SECRET", ""),

		TLSCertFile: env("SUPPLIER_TLS_CERT", ""),
		TLSKeyFile:  env("SUPPLIER_TLS_KEY", ""),
		TLSCAFile:   env("SUPPLIER_TLS_CA", ""),

		SupplierTimeout: time.Duration(atoi("SUPPLIER_TIMEOUT_SECONDS", 30)) * time.Second,
		SupplierRPS:     atoi("SUPPLIER_RPS", 5),

		SMTPHost: env("SMTP_HOST", "localhost"),
		SMTPPort: atoi("SMTP_PORT", 465),
		SMTPUser: env("SMTP_USERNAME", ""),
		SMTPPass: env("SMTP_PASSWORD", ""),
		SMTPFrom: env("SMTP_FROM_EMAIL", "bookings@tripdesk.local"),

		StripeKey: env("STRIPE_SECRET_KEY", ""),

		CacheTTL: time.Duration(atoi("CACHE_TTL_SECONDS", 3600)) * time.Second,
		CartTTL:  time.Duration(atoi("CART_TTL_SECONDS", 900)) * time.Second,
	}
	if c.SupplierKey == "" || c.SupplierSecret == "" {
		log.Warn().Msg("supplier credentials are empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
