package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"forwarding/cmd"
	httpin "forwarding/internal/adapters/in/http"
	"forwarding/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	configs, err := cmd.LoadConfigFromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := cmd.OpenStore(ctx, configs, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeQuietly(logger, "store", store.Close)

	events := cmd.OpenEventSink(ctx, configs, logger)
	defer closeQuietly(logger, "event sink", events.Close)

	app := cmd.NewCompositionRoot(configs, store.UoWFactory, store.Reader, events.Publisher, ports.SystemClock{}, logger)

	jobManager, err := app.CreateJobManager()
	if err != nil {
		log.Fatalf("Failed to create jobs: %v", err)
	}
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	spec, err := httpin.LoadAPISpec(ctx)
	if err != nil {
		log.Fatalf("Failed to load API description: %v", err)
	}

	startWebServer(ctx, app, spec, configs, logger)
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, spec *httpin.APISpec, configs cmd.Config, logger *slog.Logger) {
	e := echo.New()
	e.HideBanner = true
	httpin.Mount(e, spec, app.CreateServer(), logger, configs.StoreTimeout)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}

func closeQuietly(logger *slog.Logger, name string, closeFn func() error) {
	if err := closeFn(); err != nil {
		logger.Error("Close failed", "resource", name, "error", err)
	}
}
