package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	adapterhttp "todoboard/internal/adapter/http"
	"todoboard/internal/shared"
)

const serviceVersion = "1.0.0"

func main() {
	config := shared.GetDefaultConfig()

	logger, err := shared.NewAppLogger("todoboard")

	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	defer logger.Sync()

	telemetry, err := shared.InitTelemetry(shared.TelemetryConfig{
		ServiceName:    "todoboard",
		ServiceVersion: serviceVersion,
		MetricsPort:    config.MetricsPort,
		OTLPEndpoint:   config.OTLPEndpoint,
		Environment:    config.Environment,
	})

	if err != nil {
		slog.Error("Failed to initialize telemetry", "error", err)
		os.Exit(1)
	}

	metrics := shared.NewAppMetrics(telemetry.PrometheusRegistry)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics.StartSystemMetrics(ctx)

	go adapterhttp.StartServerWithConfig(metrics, logger, config)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		slog.Warn("Telemetry shutdown failed", "error", err)
	}
}
