package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"

	"bikeshare/internal/config"
)

// TracerName is the instrumentation scope of every span the explorer creates.
const TracerName = "bikeshare"

// TracingProviders holds the tracer provider and the file spans are written to.
type TracingProviders struct {
	TracerProvider *sdktrace.TracerProvider
	Logger         *slog.Logger
	closer         io.Closer

	shutdownOnce sync.Once
	shutdownErr  error
}

var (
	tracingMu     sync.Mutex
	activeTracing *TracingProviders
)

// InitializeTracing installs a global tracer provider that writes finished
// spans as JSON lines to cfg.FilePath. With output "none" the global no-op
// provider stays in place and spans cost nothing.
func InitializeTracing(cfg config.TracingConfig, logger *slog.Logger) (*TracingProviders, error) {
	if logger == nil {
		logger = GetLogger()
	}
	providers := &TracingProviders{Logger: logger}

	switch strings.ToLower(cfg.Output) {
	case "", "none":
		return providers, nil
	case "file":
	default:
		return nil, fmt.Errorf("unsupported trace output: %s", cfg.Output)
	}

	file, err := openLogFile(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}

	tp, err := newTracerProvider(file, true)
	if err != nil {
		file.Close()
		return nil, err
	}

	providers.TracerProvider = tp
	providers.closer = file
	otel.SetTracerProvider(tp)

	tracingMu.Lock()
	activeTracing = providers
	tracingMu.Unlock()

	logger.Info("Tracing initialized",
		slog.String("output", cfg.Output),
		slog.String("file_path", cfg.FilePath))

	return providers, nil
}

// newTracerProvider builds a provider exporting to w. Spans are batched
// unless batch is false, in which case each span is written when it ends.
func newTracerProvider(w io.Writer, batch bool) (*sdktrace.TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(config.AppName),
		semconv.ServiceVersion(config.AppVersion),
	)

	register := sdktrace.WithSyncer(exporter)
	if batch {
		register = sdktrace.WithBatcher(exporter)
	}

	return sdktrace.NewTracerProvider(
		register,
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	), nil
}

// ShutdownTracing flushes and closes the tracing installed by the last
// InitializeTracing call. It is safe to call more than once.
func ShutdownTracing(ctx context.Context) error {
	tracingMu.Lock()
	p := activeTracing
	activeTracing = nil
	tracingMu.Unlock()

	return p.Shutdown(ctx)
}

// Shutdown flushes pending spans and closes the trace file. Only the first
// call does any work; later calls return its result.
func (p *TracingProviders) Shutdown(ctx context.Context) error {
	if p == nil || p.TracerProvider == nil {
		return nil
	}
	p.shutdownOnce.Do(func() { p.shutdownErr = p.shutdown(ctx) })
	return p.shutdownErr
}

func (p *TracingProviders) shutdown(ctx context.Context) error {
	var errs []error
	if err := p.TracerProvider.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
	}
	if p.closer != nil {
		if err := p.closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("trace file close: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("tracing shutdown errors: %v", errs)
	}

	p.Logger.InfoContext(ctx, "Tracing shutdown complete")
	return nil
}

// StartSpan starts a span named name as a child of any span in ctx.
// The session ID on ctx, if any, is recorded as an attribute.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if sessionID := GetSessionID(ctx); sessionID != "" {
		attrs = append(attrs, attribute.String("session.id", sessionID))
	}
	return otel.Tracer(TracerName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records err on span, if any, and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil && span.IsRecording() {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// TraceIDFromContext extracts trace ID from context for logging correlation
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}
