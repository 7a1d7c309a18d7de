package tracing

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestInit_WithoutZipkin(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	shutdown, err := Init("", "location-map", logger)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if shutdown == nil {
		t.Fatal("Init() returned nil shutdown func")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error = %v", err)
	}
}

func TestInit_WithZipkin(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	shutdown, err := Init("http://localhost:9411/api/v2/spans", "location-map", logger)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error = %v", err)
	}
}

func TestInjectExtract_RoundTrip(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if _, err := Init("", "location-map", logger); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	req, _ := http.NewRequest(http.MethodGet, "http://example.com/dados", nil)
	Inject(ctx, req)

	if req.Header.Get("traceparent") == "" {
		t.Fatal("traceparent header was not injected")
	}

	got := trace.SpanContextFromContext(Extract(context.Background(), req.Header))
	if got.TraceID() != traceID {
		t.Errorf("extracted TraceID = %s, want %s", got.TraceID(), traceID)
	}
}
