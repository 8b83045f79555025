package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/otaviooaugusto13-cyber/edu/internal/config"
	"github.com/otaviooaugusto13-cyber/edu/internal/gateway"
	h "github.com/otaviooaugusto13-cyber/edu/internal/http"
	"github.com/otaviooaugusto13-cyber/edu/internal/repository"
	"github.com/otaviooaugusto13-cyber/edu/internal/service"
	"github.com/otaviooaugusto13-cyber/edu/internal/webhook"
)

func main() {
	cfg := config.Load()
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// The database is optional, as the sales page must keep serving even
	// when DATABASE_URL is absent or wrong.
	var repo *repository.Repository
	if cfg.DatabaseURL != "" {
		var err error
		repo, err = repository.NewRepository(cfg.DatabaseURL)
		if err != nil {
			logger.Error().Err(err).Msg("database connection failed, continuing without it")
			repo = nil
		} else {
			defer repo.Close()
			if err := repo.RunMigrations("./migrations"); err != nil {
				logger.Fatal().Err(err).Msg("migrations failed")
			}
			logger.Info().Msg("connected to postgres")
		}
	} else {
		logger.Info().Msg("DATABASE_URL not set, database disabled")
	}

	stripeGateway := gateway.NewStripeGateway(
		cfg.StripeSecretKey,
		cfg.StripePriceID,
		cfg.SuccessURL,
		cfg.CancelURL,
	)
	checkoutService := service.NewCheckoutService(stripeGateway)
	checkoutHandler := h.NewCheckoutHandler(checkoutService, cfg.RequestTimeout, logger)

	var dispatcher h.EventDispatcher
	if repo != nil {
		verifier := webhook.NewVerifier(cfg.StripeWebhookSecret)
		dispatcher = service.NewWebhookDispatcher(verifier, repo, logger)
	}
	webhookHandler := h.NewWebhookHandler(dispatcher, cfg.RequestTimeout, cfg.MaxWebhookBodySize, logger)

	var pinger h.Pinger
	if repo != nil {
		pinger = repo
	}
	dbCheckHandler := h.NewDBCheckHandler(pinger, 5*time.Second, logger)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.RequestIDMiddleware)
	r.Use(h.RequestLogger(logger))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(cfg.StaticDir, "edu.html"))
	})
	r.Get("/api/db-check", dbCheckHandler.Check)
	r.Post("/checkout", checkoutHandler.Create)
	// The webhook route takes the raw body; no parsing middleware may be
	// added in front of it.
	r.Post("/webhook", webhookHandler.Receive)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "edu-server"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.HTTPPort).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited")
}
