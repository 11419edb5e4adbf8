// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"camerpay-payments/internal/config"
	payAdapters "camerpay-payments/internal/infra/adapters/payment"
	httpapi "camerpay-payments/internal/infra/http"
	"camerpay-payments/internal/infra/logging"
	"camerpay-payments/internal/infra/metrics"
	"camerpay-payments/internal/usecase"
)

func main() {
	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (verbose logs, unredacted PII)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] Enabled")
	}

	metrics.MustRegister()

	// Missing credentials are reported once here; each operation still fails
	// locally on its own (charge before I/O, webhook closed).
	if cfg.Payment.Tranzak.AppID == "" || cfg.Payment.Tranzak.APIKey == "" {
		logger.Warn().Msg("tranzak app_id/api_key not configured; charge requests will fail until set")
	}
	if cfg.Payment.Tranzak.WebhookSecret == "" {
		logger.Warn().Msg("tranzak webhook_secret not configured; webhook deliveries will be rejected")
	}

	// ---- Gateway + use cases ----
	gateway := payAdapters.NewTranzakGateway(cfg.Payment.Tranzak)
	chargeUC := usecase.NewChargeUseCase(cfg.Payment, gateway, logger, cfg.Runtime.Dev)
	verifier := payAdapters.NewTranzakWebhookVerifier(cfg.Payment.Tranzak.WebhookSecret)

	// ---- HTTP server ----
	srv := httpapi.NewServer(chargeUC, verifier, logger)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
}
