package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redis "github.com/redis/go-redis/v9"

	"github.com/maisonbelle/storefront/internal/api/router"
	"github.com/maisonbelle/storefront/internal/availability"
	"github.com/maisonbelle/storefront/internal/booking"
	"github.com/maisonbelle/storefront/internal/cancellation"
	"github.com/maisonbelle/storefront/internal/catalog"
	"github.com/maisonbelle/storefront/internal/checkout"
	"github.com/maisonbelle/storefront/internal/clientstore"
	appconfig "github.com/maisonbelle/storefront/internal/config"
	"github.com/maisonbelle/storefront/internal/confirmation"
	"github.com/maisonbelle/storefront/internal/currency"
	"github.com/maisonbelle/storefront/internal/http/handlers"
	"github.com/maisonbelle/storefront/internal/observability/metrics"
	"github.com/maisonbelle/storefront/internal/profile"
	"github.com/maisonbelle/storefront/internal/salonapi"
	"github.com/maisonbelle/storefront/pkg/logging"
)

func main() {
	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting storefront gateway",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	redisOpts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Error("redis unreachable", "addr", cfg.RedisAddr, "error", err)
		os.Exit(1)
	}

	api := salonapi.NewClient(cfg.SalonAPIBaseURL, cfg.SalonAPIKey, logger).
		WithTimeout(cfg.SalonAPITimeout)

	storage := clientstore.NewStore(redisClient, cfg.SessionTTL)
	currencySel := currency.NewSelection(storage, cfg.DefaultCurrency)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	drafts := booking.NewRegistry()
	resolver := availability.NewResolver(api, logger)
	orchestrators := checkout.NewRegistry(api, logger)
	tracker := confirmation.NewTracker(api, logger).
		WithMaxAttempts(cfg.ConfirmMaxAttempts).
		WithRetryStep(cfg.ConfirmRetryStep).
		WithBookingFee(cfg.BookingFeePence)
	cancellations := cancellation.NewInitiator(api, logger)

	routerCfg := &router.Config{
		Logger:             logger,
		CatalogHandler:     handlers.NewCatalogHandler(catalog.New(api, logger), currencySel, logger),
		BookingHandler:     handlers.NewBookingHandler(drafts, resolver, m, logger),
		CheckoutHandler:    handlers.NewCheckoutHandler(orchestrators, drafts, tracker, cancellations, m, logger),
		CartHandler:        handlers.NewCartHandler(storage, currencySel, logger),
		ProfileHandler:     handlers.NewProfileHandler(profile.NewService(api, storage, logger), logger),
		CurrencyHandler:    handlers.NewCurrencyHandler(currencySel, logger),
		MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	// Stop any in-flight confirmation pollers before exiting.
	tracker.Shutdown()

	if err := redisClient.Close(); err != nil {
		logger.Error("redis close failed", "error", err)
	}

	logger.Info("server stopped")
}
