/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/awsclient"
	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/config"
	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/launcher"
	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/logging"
	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/server"
	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/sessions"
	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/store"
	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/telemetry"
)

var (
	logger zerolog.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "workscheduler",
	Short: "Workstation scheduler - automated launching of studio streaming sessions",
	Long:  "Workstation scheduler launches cloud workstation streaming sessions on a quarter-hour grid so artists find their machines warm when they sit down.",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the scheduler daemon",
	Long:  "Run the invocation loop against the config table and serve the operational HTTP endpoints",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads configuration (called by commands that need it)
func loadConfig() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger = logging.Setup(cfg.Environment)
	return nil
}

// newScheduler wires the launch service against live AWS clients.
func newScheduler(ctx context.Context) (*launcher.Service, error) {
	awsCfg, err := awsclient.Load(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	configs := store.NewDynamo(awsCfg, cfg.ConfigTableName)
	nimble := sessions.NewClient(awsCfg)
	return launcher.New(configs, nimble, cfg.SessionLookupFailure, logger), nil
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	logger.Info().Msg("workstation scheduler starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracerProvider, err := telemetry.InitTracer(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize tracer: %w", err)
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown tracer provider")
		}
	}()

	scheduler, err := newScheduler(ctx)
	if err != nil {
		return err
	}

	srv := server.New(cfg, scheduler, logger)
	httpServer := srv.HTTPServer()

	go func() {
		logger.Info().Str("addr", httpServer.Addr).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}()

	go func() {
		if err := scheduler.Run(ctx); err != nil && err != context.Canceled {
			logger.Error().Err(err).Msg("scheduler loop error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down gracefully...")
	cancel()

	timeoutCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(timeoutCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("workstation scheduler stopped")
	return nil
}
