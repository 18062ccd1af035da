package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoggerSetsRequestIDAndCallsNext(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	Logger(next).ServeHTTP(rec, req)

	if !called {
		t.Fatalf("expected the wrapped handler to be called")
	}
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected X-Request-Id header to be set")
	}
}

func TestLoggerAssignsDistinctRequestIDs(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	rec1 := httptest.NewRecorder()
	Logger(next).ServeHTTP(rec1, httptest.NewRequest(http.MethodGet, "/", nil))

	rec2 := httptest.NewRecorder()
	Logger(next).ServeHTTP(rec2, httptest.NewRequest(http.MethodGet, "/", nil))

	id1 := rec1.Header().Get("X-Request-Id")
	id2 := rec2.Header().Get("X-Request-Id")
	if id1 == "" || id2 == "" {
		t.Fatalf("expected non-empty request ids, got %q and %q", id1, id2)
	}
	if id1 == id2 {
		t.Fatalf("expected distinct request ids across requests, both were %q", id1)
	}
}
