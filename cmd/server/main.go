package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/feedlab/snsbox/internal/config"
	"github.com/feedlab/snsbox/internal/events"
	"github.com/feedlab/snsbox/internal/faults"
	"github.com/feedlab/snsbox/internal/httpserver"
	"github.com/feedlab/snsbox/internal/snapshot"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	var persister snapshot.Persister
	if cfg.DatabasePath == config.InMemoryPath {
		persister = snapshot.NewMemoryPersister()
	} else {
		persister = snapshot.NewFilePersister(cfg.DatabasePath)
	}

	store := snapshot.NewStore(persister, logger)
	store.Load()
	logger.Info("snapshot loaded", "path", cfg.DatabasePath)

	ctrl := faults.NewController()
	hub := events.NewHub(logger)

	server := httpserver.NewServer(cfg, store, ctrl, faults.RandSampler{}, hub, logger)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server exited with error", "error", err)
		}
	}()

	logger.Info("server started", "addr", cfg.Addr())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("received signal, shutting down", "signal", sig)

	if err := server.Shutdown(context.Background()); err != nil {
		logger.Error("error shutting down http server", "error", err)
	}

	// Final durability flush; every mutation already persisted itself.
	store.Save()
	logger.Info("shutdown complete")

	return nil
}
