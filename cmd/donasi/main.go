package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"donasi/internal/amqp"
	"donasi/internal/config"
	"donasi/internal/dashboard"
	apphttp "donasi/internal/http"
	applog "donasi/internal/log"
	ports "donasi/internal/sheets"
	gsheet "donasi/internal/sheets/google"
	"donasi/internal/sheets/sample"
	"donasi/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: applog.ComponentApp,
	})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sampleStore := sample.New()

	var source ports.RowReader
	switch cfg.DataBackend {
	case "sheets":
		cli, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err, "backend", cfg.DataBackend)
			os.Exit(1)
		}
		source = cli
		logger.Info("Initialized Google Sheets backend", "backend", cfg.DataBackend, "sheet", cfg.GoogleSheetName)
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer repo.Close()
		if err := repo.SeedIfEmpty(ctx, sample.Dataset()); err != nil {
			logger.Error("Failed to seed donations table", "error", err)
			os.Exit(1)
		}
		source = repo
		logger.Info("Initialized SQLite backend", "backend", cfg.DataBackend, "path", cfg.SQLiteDBPath)
	default:
		source = sampleStore
		logger.Info("Initialized sample backend", "backend", cfg.DataBackend)
	}

	// AMQP notifications are optional. A broker being down must not keep the
	// dashboard from serving.
	var notifier dashboard.Notifier
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without notifications", "error", err)
		} else {
			defer amqpClient.Close()
			notifier = amqpClient
			logger.Info("Initialized AMQP notifications", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	ctrl := dashboard.NewController(source, sampleStore, notifier, cfg.FetchTimeout)
	ctrl.Start(ctx, cfg.RefreshInterval)
	defer ctrl.Stop()

	srv := apphttp.NewServer(":"+cfg.Port, ctrl, cfg.ShowDonorNames, logger)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting donasi server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"refresh_interval", cfg.RefreshInterval.String())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
