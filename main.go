package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"innovia-cms/pkg/config"
	"innovia-cms/pkg/handlers"
	"innovia-cms/pkg/services"
	"innovia-cms/pkg/storage"
)

func main() {
	// Initialize config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var logHandler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg.Production() {
		logHandler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(logHandler))
	gin.SetMode(cfg.GinMode)

	if err := run(cfg); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	slots, err := storage.Open(cfg)
	if err != nil {
		return err
	}
	defer slots.Close()

	store := services.NewContentStore(slots, cfg.ContentKey, cfg.CacheTTL, cfg.StorageTimeout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.SeedDemo {
		seeded, err := store.Seed(ctx, services.DemoContent)
		if err != nil {
			slog.Warn("failed to seed demo content", "error", err)
		} else if seeded {
			slog.Info("seeded demo content")
		}
	}

	h := handlers.NewHandler(cfg, store, services.NewMedia(cfg.MediaDir, cfg.MediaURL))
	r, err := handlers.NewRouter(h)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting innovia-cms", "addr", srv.Addr, "storage", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
