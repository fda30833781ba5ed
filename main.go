package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/seo-optimizer/insights/analyzer"
	"github.com/seo-optimizer/insights/api"
	"github.com/seo-optimizer/insights/config"
	"github.com/seo-optimizer/insights/logging"
	"github.com/seo-optimizer/insights/metrics"
	"github.com/seo-optimizer/insights/stats"
)

const (
	maintenanceInterval = 10 * time.Minute
	visitorRetention    = 7 * 24 * time.Hour
)

func main() {
	envFound := config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	gin.SetMode(cfg.Server.GinMode)
	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format)
	if !envFound {
		logger.Info("no .env file found, using environment variables")
	}

	storage, err := stats.NewStorage(cfg.DataDir)
	if err != nil {
		logger.Error("failed to open stats storage", "dir", cfg.DataDir, "error", err)
		os.Exit(1)
	}
	storage.Cleanup(cfg.Stats.RetainMonths)

	reqStats, err := logging.New(filepath.Join(cfg.DataDir, "statistics.json"))
	if err != nil {
		// start from empty counters rather than refusing to serve
		logger.Warn("failed to load request statistics", "error", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	seoAnalyzer, err := analyzer.New(analyzer.Config{
		CacheSize: cfg.Cache.Size,
		CacheTTL:  cfg.Cache.TTL,
		Seed:      cfg.Cache.Seed,
	},
		analyzer.WithStats(storage),
		analyzer.WithRecorder(m),
		analyzer.WithLogger(logger),
	)
	if err != nil {
		logger.Error("failed to create analyzer", "error", err)
		os.Exit(1)
	}

	server := api.NewServer(seoAnalyzer, reqStats, m, reg, api.Options{
		DevMode:        cfg.DevMode,
		CorsOrigins:    cfg.Server.CorsOrigins,
		AnalyzeTimeout: cfg.Server.AnalyzeTimeout,
		RateLimitRPS:   cfg.Limits.RPS,
		RateLimitBurst: cfg.Limits.Burst,
	}, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go maintain(ctx, server, reqStats, logger)

	go func() {
		logger.Info("server starting", "addr", "http://localhost:"+cfg.Server.Port, "dev", cfg.DevMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	if err := seoAnalyzer.Shutdown(); err != nil {
		logger.Error("failed to persist monthly stats", "error", err)
	}
	if err := reqStats.Save(); err != nil {
		logger.Error("failed to persist request statistics", "error", err)
	}
	logger.Info("server exited")
}

// maintain drops idle rate limiter buckets and old visitor entries, then
// persists request statistics
func maintain(ctx context.Context, server *api.Server, reqStats *logging.Statistics, logger *slog.Logger) {
	ticker := time.NewTicker(maintenanceInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := server.Limiter().Cleanup()
			pruned := reqStats.Prune(visitorRetention)
			if err := reqStats.Save(); err != nil {
				logger.Warn("failed to save request statistics", "error", err)
			}
			logger.Debug("maintenance complete", "limiters_removed", removed, "visitors_pruned", pruned)
		}
	}
}
