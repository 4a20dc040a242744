package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records checkout outcomes and catalog refresh behavior.
type StorefrontMetrics struct {
	submissions    *prometheus.CounterVec
	submitDuration prometheus.Histogram
	fallback       prometheus.Counter
	refreshSeconds prometheus.Histogram
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_submissions_total",
		Help: "Order submissions by outcome code.",
	}, []string{"outcome"})
	submitDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_submit_duration_seconds",
		Help:    "Duration of order submission calls in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	fallback := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_fallback_total",
		Help: "Times the built-in sample catalog was served because the store API was unreachable.",
	})
	refreshSeconds := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_refresh_duration_seconds",
		Help:    "Duration of catalog refresh calls in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(submissions, submitDuration, fallback, refreshSeconds)
	return &StorefrontMetrics{
		submissions:    submissions,
		submitDuration: submitDuration,
		fallback:       fallback,
		refreshSeconds: refreshSeconds,
	}
}

// ObserveSubmission records one submission attempt with its outcome code.
func (m *StorefrontMetrics) ObserveSubmission(outcome string, duration time.Duration) {
	if m == nil || m.submissions == nil {
		return
	}
	m.submissions.WithLabelValues(normalizeLabel(outcome)).Inc()
	m.submitDuration.Observe(duration.Seconds())
}

// IncCatalogFallback counts a fallback-catalog activation.
func (m *StorefrontMetrics) IncCatalogFallback() {
	if m == nil || m.fallback == nil {
		return
	}
	m.fallback.Inc()
}

// ObserveCatalogRefresh records the duration of a catalog refresh.
func (m *StorefrontMetrics) ObserveCatalogRefresh(duration time.Duration) {
	if m == nil || m.refreshSeconds == nil {
		return
	}
	m.refreshSeconds.Observe(duration.Seconds())
}

func normalizeLabel(outcome string) string {
	if outcome == "" {
		return "unknown"
	}
	return outcome
}
