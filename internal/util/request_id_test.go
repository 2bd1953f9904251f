package util

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestWithRequestIDKeepsIncomingID(t *testing.T) {
	const id = "upstream-7f3a"
	var seen string
	handler := WithRequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestID(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	req.Header.Set("X-Request-Id", id)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != id {
		t.Fatalf("request id in context = %q, want %q", seen, id)
	}
	if got := rec.Header().Get("X-Request-Id"); got != id {
		t.Fatalf("response header = %q, want %q", got, id)
	}
}

func TestWithRequestIDMintsUUIDWhenAbsent(t *testing.T) {
	var seen string
	handler := WithRequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestID(r)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/books", nil))

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("generated id %q is not a uuid: %v", seen, err)
	}
	if rec.Header().Get("X-Request-Id") != seen {
		t.Fatalf("header and context ids differ")
	}
}

func TestWithRequestIDBindsContextLogger(t *testing.T) {
	var logger *slog.Logger
	handler := WithRequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		logger = LoggerFromContext(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/books", nil))

	if logger == nil || logger == slog.Default() {
		t.Fatalf("expected a request-scoped logger in context")
	}
}
