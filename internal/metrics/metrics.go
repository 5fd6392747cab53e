package metrics

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// BidMetrics counts bid submission outcomes.
type BidMetrics struct {
	accepted prometheus.Counter
	rejected *prometheus.CounterVec
}

// NewBidMetrics registers the bid metrics on the provided registerer.
// Calling it again with the same registerer reuses the registered counters.
// A nil registerer yields a no-op recorder.
func NewBidMetrics(reg prometheus.Registerer) *BidMetrics {
	if reg == nil {
		return &BidMetrics{}
	}
	accepted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bids_accepted_total",
		Help: "Bids accepted and stored.",
	})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bids_rejected_total",
		Help: "Bids rejected, by reason.",
	}, []string{"reason"})
	return &BidMetrics{
		accepted: register(reg, accepted),
		rejected: register(reg, rejected),
	}
}

// IncAccepted counts one accepted bid.
func (m *BidMetrics) IncAccepted() {
	if m == nil || m.accepted == nil {
		return
	}
	m.accepted.Inc()
}

// IncRejected counts one rejected bid for reason.
func (m *BidMetrics) IncRejected(reason string) {
	if m == nil || m.rejected == nil {
		return
	}
	m.rejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

// HTTPMetrics counts served requests.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
}

// NewHTTPMetrics registers the request counter on the provided registerer.
// Routers built on the same registerer share one counter.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests served, by method, route and status.",
	}, []string{"method", "route", "status"})
	return &HTTPMetrics{requests: register(reg, requests)}
}

// Observe counts one request.
func (m *HTTPMetrics) Observe(method, route string, status int) {
	if m == nil || m.requests == nil {
		return
	}
	m.requests.WithLabelValues(method, normalizeLabel(route), strconv.Itoa(status)).Inc()
}

// register adds c to reg, or returns the collector already registered
// under the same descriptor. Any other registration error panics.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	err := reg.Register(c)
	if err == nil {
		return c
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing
		}
	}
	panic(err)
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
