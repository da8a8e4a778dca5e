package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// FlowMetrics records the outcome of transactional business flows
// (purchase create, sale delete, payment create, ...).
type FlowMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewFlowMetrics registers the flow metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewFlowMetrics(reg prometheus.Registerer) *FlowMetrics {
	if reg == nil {
		return &FlowMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "flow_duration_seconds",
		Help:    "Duration of transactional flows in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"flow"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flow_success_total",
		Help: "Committed transactional flows.",
	}, []string{"flow"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flow_failure_total",
		Help: "Rolled back transactional flows.",
	}, []string{"flow"})
	reg.MustRegister(duration, success, failure)
	return &FlowMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// Track observes the duration since start and bumps the success or failure counter.
func (f *FlowMetrics) Track(flow string, start time.Time, err error) {
	f.ObserveDuration(flow, time.Since(start))
	if err != nil {
		f.IncFailure(flow)
		return
	}
	f.IncSuccess(flow)
}

// ObserveDuration records the duration for the named flow.
func (f *FlowMetrics) ObserveDuration(flow string, duration time.Duration) {
	if f == nil || f.duration == nil {
		return
	}
	f.duration.WithLabelValues(normalizeLabel(flow)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named flow.
func (f *FlowMetrics) IncSuccess(flow string) {
	if f == nil || f.success == nil {
		return
	}
	f.success.WithLabelValues(normalizeLabel(flow)).Inc()
}

// IncFailure increments the failure counter for the named flow.
func (f *FlowMetrics) IncFailure(flow string) {
	if f == nil || f.failure == nil {
		return
	}
	f.failure.WithLabelValues(normalizeLabel(flow)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
