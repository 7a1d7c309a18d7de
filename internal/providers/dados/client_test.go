package dados

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_FetchPayload(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		body            string
		wantErr         bool
		errContains     string
		wantCoordenadas *string
		wantCidade      *string
		wantCidadeNull  bool
	}{
		{
			name:            "full payload",
			status:          http.StatusOK,
			body:            `{"coordenadas":"51.5,-0.12","cidade":"London","nome_pc":"Computador Teste 1"}`,
			wantCoordenadas: ptr("51.5,-0.12"),
			wantCidade:      ptr("London"),
		},
		{
			name:            "missing cidade",
			status:          http.StatusOK,
			body:            `{"coordenadas":"-23.55,-46.63"}`,
			wantCoordenadas: ptr("-23.55,-46.63"),
		},
		{
			name:            "null cidade",
			status:          http.StatusOK,
			body:            `{"coordenadas":"51.5,-0.12","cidade":null}`,
			wantCoordenadas: ptr("51.5,-0.12"),
			wantCidadeNull:  true,
		},
		{
			name:   "empty object",
			status: http.StatusOK,
			body:   `{}`,
		},
		{
			name:        "not json",
			status:      http.StatusOK,
			body:        `<html>oops</html>`,
			wantErr:     true,
			errContains: "failed to decode response",
		},
		{
			name:        "server error",
			status:      http.StatusInternalServerError,
			body:        `boom`,
			wantErr:     true,
			errContains: "fetch returned status 500: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("method = %s, want GET", r.Method)
				}
				if r.URL.Path != "/dados" {
					t.Errorf("path = %s, want /dados", r.URL.Path)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL+"/dados", srv.Client(), newTestLogger())
			got, err := client.FetchPayload(context.Background())

			if tt.wantErr {
				if err == nil {
					t.Fatalf("FetchPayload() expected error but got none")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("FetchPayload() error = %v, want error containing %q", err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("FetchPayload() unexpected error = %v", err)
			}

			assertField(t, "Coordenadas", got.Coordenadas, tt.wantCoordenadas)
			assertField(t, "Cidade", got.Cidade, tt.wantCidade)
			if got.CidadeNull != tt.wantCidadeNull {
				t.Errorf("CidadeNull = %v, want %v", got.CidadeNull, tt.wantCidadeNull)
			}
		})
	}
}

func TestClient_FetchPayload_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL + "/dados"
	srv.Close()

	client := NewClient(url, nil, newTestLogger())
	if _, err := client.FetchPayload(context.Background()); err == nil {
		t.Fatal("FetchPayload() expected error for closed server")
	}
}

func TestClient_FetchPayload_SpanStatus(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus codes.Code
	}{
		{name: "ok", status: http.StatusOK, body: `{"coordenadas":"1,2"}`, wantStatus: codes.Unset},
		{name: "upstream unavailable", status: http.StatusServiceUnavailable, body: `down`, wantStatus: codes.Error},
		{name: "not found", status: http.StatusNotFound, body: `{}`, wantStatus: codes.Error},
		{name: "undecodable body", status: http.StatusOK, body: `nope`, wantStatus: codes.Error},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			before := len(recorder.Ended())
			client := NewClient(srv.URL, srv.Client(), newTestLogger())
			_, _ = client.FetchPayload(context.Background())

			spans := recorder.Ended()
			if len(spans) != before+1 {
				t.Fatalf("recorded %d new spans, want 1", len(spans)-before)
			}
			span := spans[len(spans)-1]
			if span.Name() != "dados.FetchPayload" {
				t.Errorf("span name = %q, want dados.FetchPayload", span.Name())
			}
			if span.Status().Code != tt.wantStatus {
				t.Errorf("span status = %v, want %v", span.Status().Code, tt.wantStatus)
			}
		})
	}
}

func ptr(s string) *string { return &s }

func assertField(t *testing.T, name string, got, want *string) {
	t.Helper()
	switch {
	case want == nil && got != nil:
		t.Errorf("%s = %q, want absent", name, *got)
	case want != nil && got == nil:
		t.Errorf("%s absent, want %q", name, *want)
	case want != nil && *got != *want:
		t.Errorf("%s = %q, want %q", name, *got, *want)
	}
}
