// Package otel sets up optional OpenTelemetry tracing for climb sessions.
package otel

import (
	"context"
	"fmt"
	"strings"

	"ascent/internal/platform/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "ascent"

// Service describes the process that owns the sessions. Mode and TickRate end
// up on every span so traces from differently tuned servers can be told apart.
type Service struct {
	Name     string
	Version  string
	Mode     string
	TickRate int
}

type exportEnv struct {
	Endpoint    string  `env:"ASCENT_OTEL_ENDPOINT"`
	Enabled     string  `env:"ASCENT_OTEL_ENABLED"`
	SampleRatio float64 `env:"ASCENT_OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// Setup initialises OpenTelemetry tracing for svc.
//
// Tracing is opt-in: when ASCENT_OTEL_ENDPOINT is empty or
// ASCENT_OTEL_ENABLED is "false", Setup returns a no-op shutdown function and
// no global provider is registered. ASCENT_OTEL_SAMPLE_RATIO keeps a share of
// session traces, 1 keeps all of them.
//
// The returned shutdown function flushes pending spans and should be deferred
// by the caller.
func Setup(ctx context.Context, svc Service) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }

	var cfg exportEnv
	if err := config.ParseEnv(&cfg); err != nil {
		return noop, err
	}
	if strings.EqualFold(cfg.Enabled, "false") || cfg.Endpoint == "" {
		return noop, nil
	}
	if cfg.SampleRatio < 0 || cfg.SampleRatio > 1 {
		return noop, fmt.Errorf("otel sample ratio must be within [0, 1], got %g", cfg.SampleRatio)
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(cfg.Endpoint),
	)
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx, resource.WithAttributes(svc.attributes()...))
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(cfg.SampleRatio)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

func (s Service) attributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{semconv.ServiceName(s.Name)}
	if s.Version != "" {
		attrs = append(attrs, semconv.ServiceVersion(s.Version))
	}
	if s.Mode != "" {
		attrs = append(attrs, attribute.String("ascent.mode", s.Mode))
	}
	if s.TickRate > 0 {
		attrs = append(attrs, attribute.Int("ascent.tick_rate", s.TickRate))
	}
	return attrs
}

func sampler(ratio float64) sdktrace.Sampler {
	if ratio >= 1 {
		return sdktrace.AlwaysSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
}

// Tracer returns the tracer for session spans. Without Setup it is a no-op.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}
