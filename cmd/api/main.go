package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"simontech/internal/config"
	"simontech/internal/database"
	"simontech/internal/metrics"
	"simontech/internal/server"
	"simontech/internal/services"
	apperrors "simontech/pkg/errors"
)

const (
	shutdownTimeout = 30 * time.Second
	startupTimeout  = 30 * time.Second
	readTimeout     = 15 * time.Second
	writeTimeout    = 15 * time.Second
	idleTimeout     = 60 * time.Second
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server failed",
			zap.String("code", string(apperrors.CodeOf(err))),
			zap.Bool("startup", apperrors.IsStartup(err)),
			zap.Error(err),
		)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("Starting service",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.Bool("debug", cfg.App.Debug),
		zap.String("addr", cfg.App.Addr()),
		zap.String("static_dir", cfg.App.StaticDir),
	)
	if cfg.CORS.AllowsAnyOrigin() {
		logger.Info("CORS allows all origins")
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	// Initialize database
	db, err := database.Open(startupCtx, &cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		logger.Info("Closing database connections...")
		if err := db.Close(); err != nil {
			logger.Error("Error closing database", zap.Error(err))
		}
	}()

	// Serving requests against a missing table cannot succeed.
	if err := database.EnsureSchema(startupCtx, db.DB, logger); err != nil {
		return err
	}

	// Create service instances
	inquiryRepo := database.NewInquiryRepository(db.DB, cfg.Database.QueryTimeout, logger)
	inquirySvc := services.NewInquiryService(inquiryRepo, logger)
	healthSvc := services.NewHealthService(cfg.App.Name, db)

	handler := server.New(cfg, server.Handlers{
		Inquiry: server.NewInquiryHandler(inquirySvc, logger),
		Health:  server.NewHealthHandler(healthSvc, logger),
		Static:  server.NewStaticHandler(cfg.App.StaticDir, logger),
		Metrics: metrics.Handler(),
	}, logger)

	// Create HTTP server with timeouts
	httpServer := &http.Server{
		Addr:         cfg.App.Addr(),
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
		ErrorLog:     zap.NewStdLog(logger.Named("http")),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err
	case sig := <-shutdown:
		logger.Info("Starting graceful shutdown", zap.String("signal", sig.String()))
	}

	// Graceful shutdown
	ctx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Error during graceful shutdown", zap.Error(err))
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Warn("Shutdown timeout exceeded, forcing close...")
			_ = httpServer.Close()
		}
	}

	logger.Info("Server shutdown complete")
	return nil
}
