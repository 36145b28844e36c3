package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"insightsgo/internal/delivery"
	"insightsgo/internal/domain"
	"insightsgo/internal/infrastructure"
	"insightsgo/internal/usecase"
	"insightsgo/pkg/config"
	"insightsgo/pkg/logger"
	"insightsgo/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.File)
	log.Info("Starting server")

	m := metrics.New()

	snapshots := infrastructure.NewSnapshotRepository(log)
	generator := infrastructure.NewSyntheticGenerator(cfg.Dashboard.WindowDays, cfg.Dashboard.CampaignCount, log)

	dashboardService := usecase.NewDashboardService(snapshots, log, m)
	refreshService := usecase.NewRefreshService(generator, snapshots, log, m, cfg.Dashboard.RefreshInterval, cfg.Dashboard.InitialDelay)
	exportService := usecase.NewExportService(snapshots, infrastructure.NewCSVExporter(), infrastructure.NewPDFExporter(log), log, m)

	handlers := delivery.NewHTTPHandlers(
		dashboardService,
		refreshService,
		exportService,
		domain.ParseTheme(cfg.Export.Theme, domain.ThemeDark),
		cfg.Dashboard.PageSize,
		log,
		m,
	)
	router := delivery.NewHTTPRouter(handlers, log, m, cfg.Server.RequestTimeout, cfg.Server.RateLimitPerSecond)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	refreshService.Start(ctx)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router.SetupRoutes(),
	}

	go func() {
		log.WithField("port", cfg.Server.Port).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("HTTP server failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown failed")
	}

	<-refreshService.Done()
	log.Info("Server stopped")
}
