package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/road-safety-reports/internal/adapter/filestore"
	httpadapter "github.com/couchcryptid/road-safety-reports/internal/adapter/http"
	"github.com/couchcryptid/road-safety-reports/internal/adapter/model"
	"github.com/couchcryptid/road-safety-reports/internal/config"
	"github.com/couchcryptid/road-safety-reports/internal/domain"
	"github.com/couchcryptid/road-safety-reports/internal/observability"
)

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	var classifier domain.Classifier
	if cfg.ModelURL != "" {
		classifier = model.NewClient(cfg.ModelURL, cfg.ModelTimeout, logger)
		logger.Info("severity classifier enabled", "url", cfg.ModelURL)
	} else {
		logger.Info("severity classifier disabled")
	}

	reports := filestore.NewReader(cfg.ReportsDir)
	srv := httpadapter.NewServer(cfg.HTTPAddr, reports, classifier, metrics, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", "error", err)
		return err
	}
	logger.Info("shutdown complete")
	return nil
}
