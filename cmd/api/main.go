package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/skbags/storefront/api/routes"
	"github.com/skbags/storefront/internal/backend"
	"github.com/skbags/storefront/internal/catalog"
	"github.com/skbags/storefront/internal/checkout"
	"github.com/skbags/storefront/internal/session"
	"github.com/skbags/storefront/pkg/config"
	"github.com/skbags/storefront/pkg/logger"
	"github.com/skbags/storefront/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	storeMetrics := metrics.NewStorefrontMetrics(registry)

	client, err := backend.NewClient(cfg.Backend, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create store api client", err)
		os.Exit(1)
	}

	cache, err := catalog.NewCache(client, logg, storeMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog cache", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Warm the catalog before accepting traffic. A failure here is fine, the
	// cache serves the sample list until the store API answers.
	if err := cache.Refresh(ctx); err != nil {
		logg.Warn(ctx, "initial catalog fetch failed, serving sample catalog")
	}
	go cache.Run(ctx, cfg.Catalog.RefreshInterval)

	sessions := session.NewManager(cfg.Session, func() *checkout.Submitter {
		return checkout.NewSubmitter(client, client, cfg.Checkout.SubmitTimeout, storeMetrics, logg)
	}, logg)
	go sessions.Run(ctx)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	startCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(startCtx, "starting storefront server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, client, cache, sessions, registry),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "graceful shutdown failed", err)
			os.Exit(1)
		}
		logg.Info(context.Background(), "storefront server stopped")
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(startCtx, "storefront server stopped unexpectedly", err)
			os.Exit(1)
		}
	}
}
