package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adrianliechti/nimbus/config"
	"github.com/adrianliechti/nimbus/pkg/logger"
	"github.com/adrianliechti/nimbus/pkg/otel"
	"github.com/adrianliechti/nimbus/server"

	"github.com/joho/godotenv"
)

var version = "dev"

func main() {
	configFlag := flag.String("config", "config.yaml", "config file")

	flag.Parse()

	godotenv.Load()

	slog.SetDefault(logger.New(logger.FromEnvironment()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := otel.Setup(ctx, "nimbus", version)

	if err != nil {
		slog.Error("unable to setup telemetry", "error", err)
		os.Exit(1)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		shutdown(shutdownCtx)
	}()

	cfg, err := loadConfig(ctx, *configFlag)

	if err != nil {
		slog.Error("unable to load config", "error", err)
		os.Exit(1)
	}

	s, err := server.New(cfg)

	if err != nil {
		slog.Error("unable to create server", "error", err)
		os.Exit(1)
	}

	if err := s.ListenAndServe(ctx); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		slog.Info("config file not found, using environment", "path", path)
		return config.FromEnvironment(ctx)
	}

	return config.Parse(ctx, path)
}
