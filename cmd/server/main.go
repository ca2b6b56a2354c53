package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"log/slog"

	"github.com/joho/godotenv"

	"github.com/taskify/intake/api"
	dbembed "github.com/taskify/intake/db"
	"github.com/taskify/intake/internal/config"
	"github.com/taskify/intake/internal/db"
	"github.com/taskify/intake/internal/upload"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	// .env is optional; environment variables win either way
	_ = godotenv.Load()

	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	api.SetLogger(logger)

	logger.Info("starting intake server",
		slog.String("version", version),
		slog.String("build_time", buildTime),
	)

	ctx := context.Background()

	// Open database connection, creating the parent directory if needed
	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Failed to create database dir: %v", err)
		}
	}
	database, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Migrate(ctx, database, dbembed.Migrations); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	uploads, err := upload.New(cfg.UploadDir, logger)
	if err != nil {
		log.Fatalf("Failed to init upload store: %v", err)
	}

	handler, err := api.SetupRoutes(cfg, version, buildTime, database, uploads)
	if err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	logger.Info("storage ready",
		slog.String("database", cfg.DatabasePath),
		slog.String("upload_dir", uploads.Dir()),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server starting", slog.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// Close database connection
	if err := database.Close(); err != nil {
		logger.Error("error closing DB", slog.Any("err", err))
	}

	logger.Info("server exited")
}
