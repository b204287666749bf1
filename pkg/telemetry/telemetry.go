// Package telemetry wires the SDK into OpenTelemetry: an OTLP gRPC
// trace exporter plus helpers for annotating the spans the clients
// open around service calls and transfers.
package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/realitycloud/realitycloud/internal/version"
	"github.com/realitycloud/realitycloud/pkg/config"
)

// scope names the instrumentation scope of every span the SDK opens.
const scope = "github.com/realitycloud/realitycloud"

// Setup holds the exporter lifecycle. Zero value is inert: spans go to
// the default no-op provider until Init succeeds.
type Setup struct {
	mu       sync.Mutex
	provider *sdktrace.TracerProvider
	shutdown func(context.Context) error
}

// Init creates the OTLP gRPC exporter and installs it as the global
// tracer provider. Returns a shutdown function that flushes pending
// spans; safe to call when telemetry is disabled (it is then a no-op).
func (s *Setup) Init(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.shutdown != nil {
		return s.shutdown, nil
	}
	if cfg == nil || !cfg.Telemetry.Enabled {
		s.shutdown = func(context.Context) error { return nil }
		return s.shutdown, nil
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.Telemetry.Endpoint),
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
		otlptracegrpc.WithTimeout(30*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create OTLP exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName("realitycloud"),
			semconv.ServiceVersion(version.Version),
			semconv.DeploymentEnvironment(string(cfg.Environment)),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	s.provider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(s.provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	s.shutdown = func(ctx context.Context) error {
		return s.provider.Shutdown(ctx)
	}
	return s.shutdown, nil
}

// Tracer returns the SDK's tracer from the installed provider.
func Tracer() trace.Tracer {
	return otel.Tracer(scope)
}

// StartCall opens a span around one service call.
func StartCall(ctx context.Context, method, path string) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "rest.call",
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		))
}

// EndCall closes a call span with its outcome.
func EndCall(span trace.Span, status int, err error) {
	span.SetAttributes(attribute.Int("http.response.status_code", status))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// StartTransfer opens a span around one bulk transfer.
func StartTransfer(ctx context.Context, op string, files int, bytes int64) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "transfer."+op,
		trace.WithAttributes(
			attribute.Int("transfer.files", files),
			attribute.Int64("transfer.bytes", bytes),
		))
}

// EndTransfer closes a transfer span with its outcome.
func EndTransfer(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
