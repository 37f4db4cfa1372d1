package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LeadMetrics exposes counters/histograms for lead submission and sink delivery.
type LeadMetrics struct {
	submissionsTotal *prometheus.CounterVec
	sinkTotal        *prometheus.CounterVec
	sinkLatency      *prometheus.HistogramVec
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "merkaz",
			Subsystem: "leads",
			Name:      "submissions_total",
			Help:      "Total lead submissions by endpoint and locale",
		}, []string{"endpoint", "locale"}),
		sinkTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "merkaz",
			Subsystem: "leads",
			Name:      "sink_deliveries_total",
			Help:      "Total lead sink delivery attempts by outcome",
		}, []string{"sink", "status"}),
		sinkLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "merkaz",
			Subsystem: "leads",
			Name:      "sink_latency_seconds",
			Help:      "Latency of lead sink deliveries",
			Buckets:   prometheus.DefBuckets,
		}, []string{"sink"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.sinkTotal, m.sinkLatency)
	return m
}

func (m *LeadMetrics) ObserveSubmission(endpoint, locale string) {
	if m == nil {
		return
	}
	if locale == "" {
		locale = "unknown"
	}
	m.submissionsTotal.WithLabelValues(endpoint, locale).Inc()
}

// ObserveSink records one sink attempt. status is "ok", "error" or "timeout".
func (m *LeadMetrics) ObserveSink(sink, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.sinkTotal.WithLabelValues(sink, status).Inc()
	m.sinkLatency.WithLabelValues(sink).Observe(elapsed.Seconds())
}
