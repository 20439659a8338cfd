package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "tripdesk/internal/adapters/http_server"
	"tripdesk/internal/adapters/hotelbeds"
	"tripdesk/internal/adapters/mailer"
	"tripdesk/internal/adapters/observability"
	"tripdesk/internal/adapters/payments"
	redisad "tripdesk/internal/adapters/redis"
	"tripdesk/internal/app"
	"tripdesk/internal/shared"
	mysqlrepo "tripdesk/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	supplier, err := hotelbeds.New(hotelbeds.Config{
		SearchURL: cfg.SupplierSearchURL,
		BookURL:   cfg.SupplierBookURL,
		RatesURL:  cfg.SupplierRatesURL,
		Key:       cfg.SupplierKey,
		Secret:    cfg.SupplierSecret,
		CertFile:  cfg.TLSCertFile,
		KeyFile:   cfg.TLSKeyFile,
		CAFile:    cfg.TLSCAFile,
		Timeout:   cfg.SupplierTimeout,
		RPS:       cfg.SupplierRPS,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("supplier client setup failed")
	}

	notifier := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPUser, cfg.SMTPPass)
	processor := payments.New(cfg.StripeKey)

	content := app.NewContentService(repo, cache, cfg.CacheTTL)
	search := app.NewSearchService(supplier, content)
	cart := app.NewCartService(repo, content, cfg.CartTTL)
	booking := app.NewBookingService(supplier, repo, repo, notifier)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Search:   search,
		Content:  content,
		Cart:     cart,
		Booking:  booking,
		Payments: processor,
		Accounts: repo,
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
