package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/road-safety-reports/internal/adapter/csvsource"
	"github.com/couchcryptid/road-safety-reports/internal/adapter/filestore"
	kafkaadapter "github.com/couchcryptid/road-safety-reports/internal/adapter/kafka"
	"github.com/couchcryptid/road-safety-reports/internal/adapter/mapbox"
	"github.com/couchcryptid/road-safety-reports/internal/config"
	"github.com/couchcryptid/road-safety-reports/internal/domain"
	"github.com/couchcryptid/road-safety-reports/internal/observability"
	"github.com/couchcryptid/road-safety-reports/internal/pipeline"
)

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if dataPath != "" {
		cfg.DataPath = dataPath
	}
	if reportsDir != "" {
		cfg.ReportsDir = reportsDir
	}

	logger := observability.NewLogger(cfg)
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetricsWith(reg)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var notifier pipeline.Notifier
	if cfg.KafkaEnabled() {
		n := kafkaadapter.NewNotifier(cfg, logger)
		defer func() {
			if err := n.Close(); err != nil {
				logger.Error("kafka notifier close error", "error", err)
			}
		}()
		notifier = n
		logger.Info("report notifications enabled", "topic", cfg.KafkaReportTopic)
	}

	var geocoder domain.ReverseGeocoder
	if cfg.MapboxEnabled {
		geocoder = mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, cfg.MapboxRPS, metrics, logger)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "timeout", cfg.MapboxTimeout, "rate_limit", cfg.MapboxRPS)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	p := pipeline.New(
		csvsource.NewLoader(cfg.DataPath, logger),
		filestore.NewWriter(cfg.ReportsDir, logger),
		notifier,
		geocoder,
		logger,
		metrics,
	)

	sum, runErr := p.Run(ctx)

	if cfg.PushgatewayURL != "" {
		pushCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		instance, _ := os.Hostname()
		if err := observability.Push(pushCtx, cfg.PushgatewayURL, instance, reg); err != nil {
			logger.Warn("metrics push failed", "error", err)
		}
	}

	switch {
	case errors.Is(runErr, domain.ErrMissingSource):
		logger.Error("dataset not found", "path", cfg.DataPath, "error", runErr)
	case errors.Is(runErr, domain.ErrSchemaMismatch):
		logger.Error("dataset schema mismatch", "path", cfg.DataPath, "error", runErr)
	case runErr != nil:
		logger.Error("some reports were not written", "failed", sum.Failed, "error", runErr)
	default:
		logger.Info("generation complete", "run_id", sum.RunID, "records", sum.Records, "dir", cfg.ReportsDir)
	}
	return runErr
}
