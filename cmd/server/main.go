package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/samber/do/v2"

	"github.com/nfrund/authflow/internal/app"
	"github.com/nfrund/authflow/internal/config"
	"github.com/nfrund/authflow/internal/logging"
	"github.com/nfrund/authflow/internal/server"
)

func main() {
	cfg := config.New()
	logging.New(cfg.GetLogFormat(), cfg.GetLogLevel())

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	injector := app.New(cfg)
	defer injector.Shutdown()

	s, err := do.Invoke[*server.Server](injector)
	if err != nil {
		slog.Error("Failed to build server", "error", err)
		os.Exit(1)
	}

	if err := s.Start(context.Background()); err != nil {
		slog.Error("Server stopped", "error", err)
		injector.Shutdown()
		os.Exit(1)
	}
}
