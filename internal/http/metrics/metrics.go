package metrics

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

// Collector counts requests and server-side failures. Counters only; anything
// richer belongs in an external scraper.
type Collector struct {
	requests    uint64
	errors      uint64
	rateLimited uint64
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) IncRequests() {
	atomic.AddUint64(&c.requests, 1)
}

func (c *Collector) IncErrors() {
	atomic.AddUint64(&c.errors, 1)
}

func (c *Collector) IncRateLimited() {
	atomic.AddUint64(&c.rateLimited, 1)
}

func (c *Collector) Snapshot() (requests, errors, rateLimited uint64) {
	return atomic.LoadUint64(&c.requests), atomic.LoadUint64(&c.errors), atomic.LoadUint64(&c.rateLimited)
}

type Handler struct {
	collector *Collector
}

func NewHandler(collector *Collector) *Handler {
	return &Handler{collector: collector}
}

// ServeHTTP writes Prometheus text exposition format.
func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	var requests, errors, rateLimited uint64
	if h.collector != nil {
		requests, errors, rateLimited = h.collector.Snapshot()
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_, _ = fmt.Fprintf(w, "# HELP hirepulse_requests_total Total number of HTTP requests.\n")
	_, _ = fmt.Fprintf(w, "# TYPE hirepulse_requests_total counter\n")
	_, _ = fmt.Fprintf(w, "hirepulse_requests_total %d\n", requests)
	_, _ = fmt.Fprintf(w, "# HELP hirepulse_errors_total Total number of 5xx HTTP responses.\n")
	_, _ = fmt.Fprintf(w, "# TYPE hirepulse_errors_total counter\n")
	_, _ = fmt.Fprintf(w, "hirepulse_errors_total %d\n", errors)
	_, _ = fmt.Fprintf(w, "# HELP hirepulse_rate_limited_total Total number of 429 HTTP responses.\n")
	_, _ = fmt.Fprintf(w, "# TYPE hirepulse_rate_limited_total counter\n")
	_, _ = fmt.Fprintf(w, "hirepulse_rate_limited_total %d\n", rateLimited)
}
