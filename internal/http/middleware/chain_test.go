package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hirepulse/internal/http/metrics"
)

func TestMetricsMiddlewareClassifiesStatuses(t *testing.T) {
	collector := metrics.NewCollector()
	statuses := []int{http.StatusOK, http.StatusInternalServerError, http.StatusTooManyRequests}
	for _, status := range statuses {
		handler := Metrics(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/jobs", nil))
	}

	requests, errors, rateLimited := collector.Snapshot()
	if requests != 3 {
		t.Fatalf("expected 3 requests, got %d", requests)
	}
	if errors != 1 {
		t.Fatalf("expected 1 error, got %d", errors)
	}
	if rateLimited != 1 {
		t.Fatalf("expected 1 rate-limited response, got %d", rateLimited)
	}
}

func TestMetricsMiddlewareNilCollector(t *testing.T) {
	called := false
	handler := Metrics(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/jobs", nil))
	if !called {
		t.Fatal("nil collector must not short-circuit the chain")
	}
}
