package app

import (
	"context"
	"log/slog"
	"time"

	"dataprep/internal/config"
	apperrors "dataprep/internal/errors"
	"dataprep/internal/infrastructure"
)

// shutdownTimeout bounds the final telemetry flush
const shutdownTimeout = 5 * time.Second

// Bootstrap initializes the process-wide logger and telemetry. Spans go to
// stderr so stdout only carries job output.
func Bootstrap(cfg *config.Config) (*slog.Logger, *infrastructure.Telemetry, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, nil, apperrors.NewConfigError("failed to initialize logger", err)
	}

	tel, err := infrastructure.InitializeTelemetry(cfg.Telemetry, logger, nil)
	if err != nil {
		return nil, nil, apperrors.NewConfigError("failed to initialize telemetry", err)
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion),
		slog.String("trace_exporter", cfg.Telemetry.TraceExporter),
		slog.String("metric_exporter", cfg.Telemetry.MetricExporter))

	return logger, tel, nil
}

// Shutdown flushes telemetry and closes the log file. Failures are logged
// and never change the exit status.
func Shutdown(logger *slog.Logger, tel *infrastructure.Telemetry) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := tel.Shutdown(ctx); err != nil {
		logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
	}
	if err := infrastructure.CloseLogFile(); err != nil {
		logger.Warn("Failed to close log file", slog.String("error", err.Error()))
	}
}
