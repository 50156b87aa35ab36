package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"verkskra/internal/amqp"
	"verkskra/internal/backend"
	"verkskra/internal/cli"
	"verkskra/internal/config"
	apphttp "verkskra/internal/http"
	"verkskra/internal/ledger"
	"verkskra/internal/log"
	"verkskra/internal/mirror"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	result, err := backend.Create(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize persistence backend", log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer result.Cleanup()
	}

	var (
		m          mirror.Port = mirror.Noop{}
		amqpClient *amqp.Client
	)
	switch cfg.SyncMode {
	case config.SyncAppsScript:
		m = mirror.NewAppsScript(cfg.AppsScriptURL, logger)
		logger.Info("Remote mirror enabled", log.FieldSyncMode, cfg.SyncMode)
	case config.SyncAMQP:
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without mirror", log.FieldError, err)
		} else {
			m = mirror.NewQueue(amqpClient, logger)
			logger.Info("Remote mirror enabled", log.FieldSyncMode, cfg.SyncMode,
				"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	default:
		logger.Info("Remote mirror disabled")
	}
	if amqpClient != nil {
		defer amqpClient.Close()
	}

	store := ledger.NewStore(result.Persistence, m, logger)
	if err := store.Load(context.Background()); err != nil {
		logger.Error("Failed to load ledger", log.FieldError, err)
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, store, m, cfg.InvoiceCacheTTL)
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(shutdownCtx context.Context) {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
	})

	logger.Info("Starting verkskra server", "port", cfg.Port, log.FieldBackend, cfg.DataBackend, log.FieldSyncMode, cfg.SyncMode)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
