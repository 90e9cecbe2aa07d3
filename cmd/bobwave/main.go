// SPDX-License-Identifier: EPL-2.0

// Package main is the entry point for the bobwave layer server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ik5/bobwave"
	"github.com/ik5/bobwave/internal/config"
	"github.com/ik5/bobwave/internal/logger"
	"github.com/ik5/bobwave/internal/server"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Initialize(cfg.LogLevel, !cfg.IsProduction())

	engine, err := bobwave.New(cfg.EngineOptions())
	if err != nil {
		logger.Fatal("Failed to create engine: %v", err)
	}
	logger.Info("Engine: %s, max %d layers per project, export %s",
		engine.Layout(), engine.MaxLayers(), engine.ExportFormat())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           server.SetupRouter(engine, cfg),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("Starting bobwave server on %s", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()

	// Graceful shutdown
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
