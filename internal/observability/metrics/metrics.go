package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DemoRequestMetrics exposes counters/histograms for the demo-request flow.
// The transport label is "mock", "live" or "server".
type DemoRequestMetrics struct {
	submissionsTotal  *prometheus.CounterVec
	submitLatency     *prometheus.HistogramVec
	catalogReadsTotal *prometheus.CounterVec
}

func NewDemoRequestMetrics(reg prometheus.Registerer) *DemoRequestMetrics {
	m := &DemoRequestMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "onboardai",
			Subsystem: "demo_requests",
			Name:      "submissions_total",
			Help:      "Demo request submissions by transport and outcome",
		}, []string{"transport", "outcome"}),
		submitLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "onboardai",
			Subsystem: "demo_requests",
			Name:      "submit_latency_seconds",
			Help:      "Latency of demo request submissions",
			Buckets:   prometheus.DefBuckets,
		}, []string{"transport"}),
		catalogReadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "onboardai",
			Subsystem: "demo_requests",
			Name:      "catalog_reads_total",
			Help:      "Reference catalog reads by transport and catalog",
		}, []string{"transport", "catalog"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.submitLatency, m.catalogReadsTotal)
	return m
}

func (m *DemoRequestMetrics) ObserveSubmission(transport, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(transport, outcome).Inc()
	m.submitLatency.WithLabelValues(transport).Observe(elapsed.Seconds())
}

func (m *DemoRequestMetrics) ObserveCatalog(transport, catalog string) {
	if m == nil {
		return
	}
	m.catalogReadsTotal.WithLabelValues(transport, catalog).Inc()
}
