package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHealthz_UsesRequestScopedLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	srv := NewServer("127.0.0.1:0", zap.New(core))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q", body["status"])
	}

	entries := logs.FilterMessage("health check").All()
	if len(entries) != 1 {
		t.Fatalf("health log entries = %d, want 1", len(entries))
	}
	found := false
	for _, f := range entries[0].Context {
		if f.Key == "request_id" {
			found = true
		}
	}
	if !found {
		t.Error("request logger missing request_id field")
	}
}

func TestMetricsEndpointServed(t *testing.T) {
	srv := NewServer("127.0.0.1:0", zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
