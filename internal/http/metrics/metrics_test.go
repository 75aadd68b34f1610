package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCollectorCounts(t *testing.T) {
	collector := NewCollector()
	collector.IncRequests()
	collector.IncRequests()
	collector.IncErrors()
	collector.IncRateLimited()

	requests, errors, rateLimited := collector.Snapshot()
	if requests != 2 || errors != 1 || rateLimited != 1 {
		t.Fatalf("unexpected snapshot: requests=%d errors=%d rate_limited=%d", requests, errors, rateLimited)
	}
}

func TestHandlerExposition(t *testing.T) {
	collector := NewCollector()
	collector.IncRequests()
	collector.IncErrors()

	recorder := httptest.NewRecorder()
	NewHandler(collector).ServeHTTP(recorder, httptest.NewRequest("GET", "/metrics", nil))

	body := recorder.Body.String()
	if !strings.Contains(body, "hirepulse_requests_total 1") {
		t.Fatalf("request counter missing from exposition:\n%s", body)
	}
	if !strings.Contains(body, "hirepulse_errors_total 1") {
		t.Fatalf("error counter missing from exposition:\n%s", body)
	}
	if got := recorder.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/plain") {
		t.Fatalf("unexpected content type %q", got)
	}
}

func TestHandlerNilCollector(t *testing.T) {
	recorder := httptest.NewRecorder()
	NewHandler(nil).ServeHTTP(recorder, httptest.NewRequest("GET", "/metrics", nil))
	if !strings.Contains(recorder.Body.String(), "hirepulse_requests_total 0") {
		t.Fatal("nil collector should expose zero counters")
	}
}
