package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/dealerlocator/internal/config"
	"github.com/JonMunkholm/dealerlocator/internal/directory"
	"github.com/JonMunkholm/dealerlocator/internal/ingest"
	"github.com/JonMunkholm/dealerlocator/internal/logging"
	"github.com/JonMunkholm/dealerlocator/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	src, err := ingest.Open(cfg.Source.Ref, ingest.Options{
		Timeout:  cfg.Source.FetchTimeout,
		MaxBytes: cfg.Source.MaxBytes,
		S3: ingest.S3Options{
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Region:    cfg.S3.Region,
			UseSSL:    cfg.S3.UseSSL,
		},
	})
	if err != nil {
		slog.Error("invalid dealer source", "error", err)
		os.Exit(1)
	}

	dir := directory.New(src, ingest.NewPipeline(slog.Default()), directory.Options{
		KeepOnFailure: cfg.Source.KeepOnFailure,
	})

	// A failed first load still serves: the directory answers with an empty
	// set and /api/status reports the error.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.Source.FetchTimeout)
	if err := dir.Load(loadCtx); err != nil {
		slog.Warn("initial load failed", "error", err)
	}
	cancelLoad()

	reloader, err := directory.StartReloader(dir, cfg.Source.ReloadInterval, cfg.Source.FetchTimeout)
	if err != nil {
		slog.Error("failed to start reloader", "error", err)
		os.Exit(1)
	}

	server := web.NewServer(dir, cfg.Server)

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		if err := reloader.Stop(); err != nil {
			slog.Warn("reloader stop error", "error", err)
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	<-done
	slog.Info("server stopped")
}
