package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	providerAttempts *prometheus.CounterVec
	providerLatency  *prometheus.HistogramVec
	fallbacks        *prometheus.CounterVec
	movers           *prometheus.GaugeVec
	errorsTotal      *prometheus.CounterVec
	latency          *prometheus.HistogramVec
}

// New creates a Recorder registered with the default registry.
func New() *Recorder {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates a Recorder registered with reg. Tests pass a fresh
// prometheus.NewRegistry() so collectors do not collide.
func NewWithRegisterer(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		providerAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moverscan_provider_attempts_total",
				Help: "Provider calls by kind, provider and result (ok, empty, error, timeout, panic)",
			},
			[]string{"kind", "provider", "result"},
		),
		providerLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "moverscan_provider_duration_seconds",
				Help:    "Duration of provider calls in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
			},
			[]string{"kind", "provider"},
		),
		fallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moverscan_fallbacks_total",
				Help: "Scanner runs answered by a provider other than the first in the session order",
			},
			[]string{"session", "provider"},
		),
		movers: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "moverscan_movers",
				Help: "Number of movers returned by the last scan per session",
			},
			[]string{"session"},
		),
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moverscan_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "moverscan_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
	reg.MustRegister(r.providerAttempts, r.providerLatency, r.fallbacks, r.movers, r.errorsTotal, r.latency)
	return r
}

// RecordProviderAttempt records one guarded provider call.
func (r *Recorder) RecordProviderAttempt(kind, provider, result string, seconds float64) {
	provider = strings.ToLower(provider)
	r.providerAttempts.WithLabelValues(kind, provider, result).Inc()
	r.providerLatency.WithLabelValues(kind, provider).Observe(seconds)
}

// RecordFallback records a scan that was answered by a fallback tier.
func (r *Recorder) RecordFallback(session, provider string) {
	r.fallbacks.WithLabelValues(session, provider).Inc()
}

// RecordMovers records the size of the last movers list.
func (r *Recorder) RecordMovers(session string, n int) {
	r.movers.WithLabelValues(session).Set(float64(n))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// Nop discards every observation.
type Nop struct{}

func (Nop) RecordProviderAttempt(string, string, string, float64) {}
func (Nop) RecordFallback(string, string)                         {}
func (Nop) RecordMovers(string, int)                              {}
func (Nop) RecordError(string)                                    {}
func (Nop) RecordLatency(string, float64)                         {}
