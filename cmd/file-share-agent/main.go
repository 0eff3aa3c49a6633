package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vertextoedge/file-share-agent/internal/adapter/shareapi"
	"github.com/vertextoedge/file-share-agent/internal/adapter/sqlite"
	"github.com/vertextoedge/file-share-agent/internal/config"
	"github.com/vertextoedge/file-share-agent/internal/logger"
	"github.com/vertextoedge/file-share-agent/internal/service/orchestrator"
	"github.com/vertextoedge/file-share-agent/internal/service/server"
	"go.uber.org/zap"
)

const version = "0.1.0"

func main() {
	// Parse command line flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	zapLogger := logger.GetZapLogger()
	zapLogger.Info("starting file-share-agent",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	// Open local share store
	store, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		zapLogger.Fatal("failed to open database", zap.Error(err), zap.String("path", cfg.Database.Path))
	}
	defer store.Close()

	// Create share backend client
	shareClient := shareapi.NewClient(
		cfg.Backend.BaseURL,
		cfg.Backend.GetTimeout(),
		cfg.Backend.SkipTLSVerify,
	)

	// Create the share workflow orchestrator
	workflow := orchestrator.New(shareClient, store, zapLogger)

	// Create HTTP server for the UI shell
	serverCfg := &server.Config{
		BindAddr:     cfg.HTTP.BindAddr,
		ReadTimeout:  cfg.HTTP.GetReadTimeout(),
		WriteTimeout: cfg.HTTP.GetWriteTimeout(),
		IdleTimeout:  cfg.HTTP.GetIdleTimeout(),
	}
	httpServer := server.New(serverCfg, workflow, store, zapLogger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start()
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		zapLogger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			zapLogger.Error("HTTP server error", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		zapLogger.Error("failed to stop HTTP server", zap.Error(err))
	}

	zapLogger.Info("shutdown complete")
}
