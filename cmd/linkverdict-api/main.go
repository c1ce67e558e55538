package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/olegrjumin/linkverdict/internal/config"
	"github.com/olegrjumin/linkverdict/internal/httpapi"
	"github.com/olegrjumin/linkverdict/internal/httpclient"
	"github.com/olegrjumin/linkverdict/internal/intelapi"
	"github.com/olegrjumin/linkverdict/internal/logging"
	"github.com/olegrjumin/linkverdict/internal/scan"
	"github.com/olegrjumin/linkverdict/internal/service"
)

func main() {
	// Load local .env if present, then configuration from environment
	_ = godotenv.Load()

	// Initialize logger
	logger := logging.New()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize the intel API client over the pooled HTTP client
	intelClient := intelapi.New(cfg.IntelBaseURL, cfg.IntelAPIKey, httpclient.New(cfg.RequestTimeout))

	// Initialize the scan core: poller, orchestrator and result cache
	poller := scan.NewPoller(intelClient, cfg.PollInterval, cfg.PollTimeout)
	scanner := scan.NewScanner(intelClient, poller)
	cache := scan.NewCache(cfg.CacheTTL, cfg.CacheMaxEntries)

	// Initialize service with scanner, cache, and logger
	svc := service.New(scanner, cache, logger)

	// Create server address from config
	addr := fmt.Sprintf(":%d", cfg.Port)

	// Create a new HTTP server
	server := httpapi.NewServer(addr, logger, svc)

	// Channel to listen for OS signals (Ctrl+C, kill, etc.)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start the server in a goroutine so it doesn't block
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "intel_base_url", cfg.IntelBaseURL)
		if err := server.ListenAndServe(); err != nil {
			logger.Error("Server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	<-quit
	logger.Info("Shutting down server...")

	// Create a context with timeout for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully")
}
