package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"dataprep/internal/config"
)

const (
	ServiceName = config.AppName
	MeterName   = "dataprep"
)

// Telemetry holds the tracer and meter used by a run together with the
// metric instruments the jobs record into.
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Metrics        *JobMetrics

	registry    *prom.Registry
	metricsFile string
	logger      *slog.Logger
}

// InitializeTelemetry builds tracing and metrics from configuration. Disabled
// exporters fall back to no-op providers so callers never nil-check.
// Spans are written to traceOut, or stderr when nil.
func InitializeTelemetry(cfg config.TelemetryConfig, logger *slog.Logger, traceOut io.Writer) (*Telemetry, error) {
	if logger == nil {
		logger = GetLogger()
	}
	if traceOut == nil {
		traceOut = os.Stderr
	}

	res := createResource()
	t := &Telemetry{
		logger:      logger,
		metricsFile: cfg.MetricsFile,
	}

	switch cfg.TraceExporter {
	case config.ExporterStdout:
		exporter, err := stdouttrace.New(
			stdouttrace.WithWriter(traceOut),
			stdouttrace.WithPrettyPrint(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
		)
		t.TracerProvider = tp
		t.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(config.AppVersion))
		otel.SetTracerProvider(tp)
	case config.ExporterNone, "":
		t.Tracer = tracenoop.NewTracerProvider().Tracer(MeterName)
	default:
		return nil, fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}

	switch cfg.MetricExporter {
	case config.ExporterPrometheus:
		// Private registry so repeated runs in one process never collide
		// with the default registerer.
		reg := prom.NewRegistry()
		exporter, err := otelprom.New(otelprom.WithRegisterer(reg))
		if err != nil {
			return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
		}
		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exporter),
		)
		t.registry = reg
		t.MeterProvider = mp
		t.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(config.AppVersion))
		otel.SetMeterProvider(mp)
	case config.ExporterNone, "":
		t.Meter = metricnoop.NewMeterProvider().Meter(MeterName)
	default:
		return nil, fmt.Errorf("unsupported metric exporter: %s", cfg.MetricExporter)
	}

	metrics, err := NewJobMetrics(t.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}
	t.Metrics = metrics

	logger.Debug("Telemetry initialized",
		slog.String("trace_exporter", cfg.TraceExporter),
		slog.String("metric_exporter", cfg.MetricExporter))

	return t, nil
}

// NoopTelemetry returns telemetry that records nothing
func NoopTelemetry() *Telemetry {
	t, _ := InitializeTelemetry(config.TelemetryConfig{
		TraceExporter:  config.ExporterNone,
		MetricExporter: config.ExporterNone,
	}, slog.New(slog.NewJSONHandler(io.Discard, nil)), io.Discard)
	return t
}

func createResource() *resource.Resource {
	hostname, _ := os.Hostname()
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(config.AppVersion),
		attribute.String("service.instance.id", fmt.Sprintf("%s-%d", hostname, time.Now().Unix())),
	)
}

// Gatherer exposes the private registry, or nil when metrics are disabled
func (t *Telemetry) Gatherer() prom.Gatherer {
	if t.registry == nil {
		return nil
	}
	return t.registry
}

// WriteMetrics dumps the registry in the Prometheus text format to the
// configured textfile. It is a no-op when metrics are disabled.
func (t *Telemetry) WriteMetrics() error {
	if t.registry == nil || t.metricsFile == "" {
		return nil
	}
	if err := config.EnsureParentDir(t.metricsFile); err != nil {
		return err
	}
	if err := prom.WriteToTextfile(t.metricsFile, t.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", t.metricsFile, err)
	}
	t.logger.Info("Metrics written", slog.String("path", t.metricsFile))
	return nil
}

// Shutdown writes pending metrics and flushes both providers
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error

	if err := t.WriteMetrics(); err != nil {
		errs = append(errs, err)
	}
	if t.TracerProvider != nil {
		if err := t.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}
	if t.MeterProvider != nil {
		if err := t.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	return errors.Join(errs...)
}

// JobMetrics holds the instruments recorded by both jobs
type JobMetrics struct {
	RowsLoaded   metric.Int64Counter
	RowsDropped  metric.Int64Counter
	RowsWritten  metric.Int64Counter
	CellsRecoded metric.Int64Counter
	StepsTotal   metric.Int64Counter
	StepDuration metric.Float64Histogram
}

// NewJobMetrics creates the job instruments on meter
func NewJobMetrics(meter metric.Meter) (*JobMetrics, error) {
	rowsLoaded, err := meter.Int64Counter(
		"dataprep_rows_loaded",
		metric.WithDescription("Rows read from input files"),
	)
	if err != nil {
		return nil, err
	}

	rowsDropped, err := meter.Int64Counter(
		"dataprep_rows_dropped",
		metric.WithDescription("Rows removed by filtering"),
	)
	if err != nil {
		return nil, err
	}

	rowsWritten, err := meter.Int64Counter(
		"dataprep_rows_written",
		metric.WithDescription("Rows written to output files"),
	)
	if err != nil {
		return nil, err
	}

	cellsRecoded, err := meter.Int64Counter(
		"dataprep_cells_recoded",
		metric.WithDescription("Cells changed by fill and recode"),
	)
	if err != nil {
		return nil, err
	}

	stepsTotal, err := meter.Int64Counter(
		"dataprep_steps",
		metric.WithDescription("Steps executed"),
	)
	if err != nil {
		return nil, err
	}

	stepDuration, err := meter.Float64Histogram(
		"dataprep_step_duration",
		metric.WithDescription("Step execution duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &JobMetrics{
		RowsLoaded:   rowsLoaded,
		RowsDropped:  rowsDropped,
		RowsWritten:  rowsWritten,
		CellsRecoded: cellsRecoded,
		StepsTotal:   stepsTotal,
		StepDuration: stepDuration,
	}, nil
}

// AddRows adds n to counter under the job attribute
func (m *JobMetrics) AddRows(ctx context.Context, counter metric.Int64Counter, job string, n int) {
	if m == nil || counter == nil || n <= 0 {
		return
	}
	counter.Add(ctx, int64(n), metric.WithAttributes(attribute.String("job", job)))
}

// RecordStep records one step execution
func (m *JobMetrics) RecordStep(ctx context.Context, job, stepID string, duration time.Duration, success bool) {
	if m == nil {
		return
	}
	status := "success"
	if !success {
		status = "failure"
	}
	attrs := metric.WithAttributes(
		attribute.String("job", job),
		attribute.String("step", stepID),
		attribute.String("status", status),
	)
	m.StepsTotal.Add(ctx, 1, attrs)
	m.StepDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// TraceIDFromContext extracts the OpenTelemetry trace ID from context
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}
