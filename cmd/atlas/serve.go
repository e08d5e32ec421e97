package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/climate-atlas/internal/adapter/httpapi"
	"github.com/couchcryptid/climate-atlas/internal/adapter/ws"
	"github.com/couchcryptid/climate-atlas/internal/config"
	"github.com/couchcryptid/climate-atlas/internal/dataset"
	"github.com/couchcryptid/climate-atlas/internal/domain"
	"github.com/couchcryptid/climate-atlas/internal/observability"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return err
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	client := dataset.NewClient(cfg.DataBaseURL, cfg.FetchTimeout, logger)
	cache := dataset.NewMonthCache(client, clock, metrics)
	cities := dataset.NewCityStore(client, clock, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The city collection gates readiness, so load it before serving.
	if err := cities.Load(ctx); err != nil {
		logger.Error("failed to load city collection", "error", err)
		return err
	}
	logger.Info("city collection loaded", "count", len(cities.Cities()))

	if cfg.WarmOnStart {
		go func() {
			if err := cache.WarmAll(ctx, func(key domain.MonthKey, err error) {
				if err != nil {
					logger.Warn("warm fetch failed", "month", key, "error", err)
				}
			}); err != nil {
				logger.Warn("cache warm incomplete", "error", err)
				return
			}
			logger.Info("cache warm complete", "months", cache.Len())
		}()
	}

	srv := httpapi.NewServer(cfg.HTTPAddr, httpapi.Deps{
		Cache:       cache,
		Cities:      cities,
		Metrics:     metrics,
		Logger:      logger,
		WSHandler:   ws.NewHandler(cache, metrics, logger),
		CORSOrigins: cfg.CORSOrigins,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}
