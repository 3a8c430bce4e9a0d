package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/migishaone/xenovaPay/internal/api"
	"github.com/migishaone/xenovaPay/internal/config"
	"github.com/migishaone/xenovaPay/internal/metrics"
	"github.com/migishaone/xenovaPay/internal/pawapay"
	"github.com/migishaone/xenovaPay/internal/service"
	"github.com/migishaone/xenovaPay/internal/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting payment relay",
		"port", cfg.Server.Port,
		"env", cfg.Primary.Env,
		"sandbox_assume_completed", cfg.SandboxAssumeCompleted(),
	)

	metrics.Init()

	txStore := store.NewMemoryTransactionStore()
	providers := store.NewMemoryProviderCatalog()
	gateway := pawapay.NewClient(cfg.Gateway)

	paymentService := service.NewPaymentService(txStore, providers, gateway, cfg, logger)

	router := api.NewRouter(cfg, paymentService, logger)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
