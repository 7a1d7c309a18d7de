package main

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func TestTracingMiddleware(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	app := newTestApp(&memStore{loadErr: errors.New("disk error")}, &mockLocationService{})

	serve(app, http.MethodGet, "/ping")
	serve(app, http.MethodGet, "/dados")

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("recorded %d spans, want 2", len(spans))
	}

	tests := []struct {
		name       string
		wantStatus codes.Code
	}{
		{name: "GET /ping", wantStatus: codes.Unset},
		{name: "GET /dados", wantStatus: codes.Error},
	}
	for i, tt := range tests {
		span := spans[i]
		if span.Name() != tt.name {
			t.Errorf("span[%d] name = %q, want %q", i, span.Name(), tt.name)
		}
		if span.SpanKind() != trace.SpanKindServer {
			t.Errorf("span[%d] kind = %v, want server", i, span.SpanKind())
		}
		if span.Status().Code != tt.wantStatus {
			t.Errorf("span[%d] status = %v, want %v", i, span.Status().Code, tt.wantStatus)
		}
	}
}
