package otel_test

import (
	"context"
	"testing"

	"ascent/internal/platform/otel"
)

var testService = otel.Service{Name: "test-service", Version: "dev", Mode: "endless", TickRate: 60}

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("ASCENT_OTEL_ENDPOINT", "")
	t.Setenv("ASCENT_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), testService)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv("ASCENT_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("ASCENT_OTEL_ENABLED", "false")

	shutdown, err := otel.Setup(context.Background(), testService)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address so nothing is exported.
	t.Setenv("ASCENT_OTEL_ENDPOINT", "http://192.0.2.1:4318")
	t.Setenv("ASCENT_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), testService)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_RejectsBadSampleRatio(t *testing.T) {
	t.Setenv("ASCENT_OTEL_ENDPOINT", "http://192.0.2.1:4318")
	t.Setenv("ASCENT_OTEL_ENABLED", "")
	t.Setenv("ASCENT_OTEL_SAMPLE_RATIO", "1.5")

	if _, err := otel.Setup(context.Background(), testService); err == nil {
		t.Fatal("expected an error for a sample ratio above 1")
	}
}

func TestTracerWithoutSetup(t *testing.T) {
	_, span := otel.Tracer().Start(context.Background(), "climb.session")
	span.End()
}
