// Package otel provides OpenTelemetry tracer provider initialization and management.
package otel

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mrzor/crumbtrail/internal/config"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Options tune the provider beyond what the environment configures.
type Options struct {
	// SessionID is attached to the resource as session.id
	SessionID string
	// Version is attached to the resource as service.version
	Version string
	// TraceID, when valid, is used for every root span
	TraceID trace.TraceID
}

// InitProvider initializes the OpenTelemetry tracer provider exporting over
// OTLP/HTTP to the configured endpoint.
//
// Note: The HTTP client honors HTTP_PROXY, HTTPS_PROXY, and NO_PROXY
// through Go's standard net/http transport.
func InitProvider(ctx context.Context, cfg *config.OTELConfig, opts Options, logger *slog.Logger) (*sdktrace.TracerProvider, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	endpoint := cfg.GetEndpoint()
	logger.Info("OTEL configuration",
		slog.String("service_name", cfg.ServiceName),
		slog.String("endpoint", endpoint),
		slog.String("resource_attributes", cfg.ResourceAttributes),
		slog.Bool("insecure", cfg.Insecure))

	exporterOpts := []otlptracehttp.Option{otlptracehttp.WithTimeout(10 * time.Second)}
	if strings.Contains(endpoint, "://") {
		// Full URLs carry their own scheme and path
		exporterOpts = append(exporterOpts, otlptracehttp.WithEndpointURL(endpoint))
	} else {
		exporterOpts = append(exporterOpts, otlptracehttp.WithEndpoint(endpoint))
		if cfg.Insecure {
			exporterOpts = append(exporterOpts, otlptracehttp.WithInsecure())
		}
	}
	exporter, err := otlptracehttp.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	res, err := NewResource(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}

	providerOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	}
	if opts.TraceID.IsValid() {
		providerOpts = append(providerOpts, sdktrace.WithIDGenerator(FixedTraceID(opts.TraceID)))
	}

	return sdktrace.NewTracerProvider(providerOpts...), nil
}

// NewResource builds the resource describing this process.
func NewResource(ctx context.Context, cfg *config.OTELConfig, opts Options) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{semconv.ServiceName(cfg.ServiceName)}
	if opts.Version != "" {
		attrs = append(attrs, semconv.ServiceVersion(opts.Version))
	}
	if opts.SessionID != "" {
		attrs = append(attrs, attribute.String("session.id", opts.SessionID))
	}
	attrs = append(attrs, cfg.ParseResourceAttributes()...)

	res, err := resource.New(ctx, resource.WithAttributes(attrs...))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// ShutdownProvider gracefully shuts down the tracer provider, flushing any remaining spans.
func ShutdownProvider(ctx context.Context, tp *sdktrace.TracerProvider) error {
	if tp == nil {
		return nil
	}

	if err := tp.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown tracer provider: %w", err)
	}

	return nil
}

// fixedTraceID generates random span IDs under one trace ID.
type fixedTraceID struct {
	traceID trace.TraceID
}

// FixedTraceID returns an ID generator that places every root span in traceID.
func FixedTraceID(traceID trace.TraceID) sdktrace.IDGenerator {
	return fixedTraceID{traceID: traceID}
}

func (g fixedTraceID) NewIDs(ctx context.Context) (trace.TraceID, trace.SpanID) {
	return g.traceID, g.NewSpanID(ctx, g.traceID)
}

func (g fixedTraceID) NewSpanID(_ context.Context, _ trace.TraceID) trace.SpanID {
	var sid trace.SpanID
	for !sid.IsValid() {
		_, _ = rand.Read(sid[:]) //nolint:errcheck // crypto/rand.Read never fails
	}
	return sid
}
