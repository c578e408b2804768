// Package metrics holds the prometheus collectors of the sentiment pipeline.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sentiment"

type Metrics struct {
	ProviderCalls    *prometheus.CounterVec
	NewsItemsFetched prometheus.Counter
	CacheLookups     *prometheus.CounterVec
	PipelineRuns     *prometheus.CounterVec
	PipelineDuration prometheus.Histogram
	SnapshotsWritten prometheus.Counter
}

// New builds the collectors and registers them on reg when reg is non-nil.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ProviderCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_calls_total",
			Help:      "Provider calls by operation and result",
		}, []string{"op", "result"}),
		NewsItemsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "news_items_fetched_total",
			Help:      "News items returned by the provider after capping",
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Result cache lookups by outcome (hit, miss, expired)",
		}, []string{"result"}),
		PipelineRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Batch pipeline runs by outcome",
		}, []string{"result"}),
		PipelineDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Batch pipeline wall time",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		SnapshotsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_written_total",
			Help:      "CSV snapshots written",
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.ProviderCalls,
			m.NewsItemsFetched,
			m.CacheLookups,
			m.PipelineRuns,
			m.PipelineDuration,
			m.SnapshotsWritten,
		)
	}
	return m
}

func (m *Metrics) ProviderCall(op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.ProviderCalls.WithLabelValues(op, result).Inc()
}

func (m *Metrics) NewsItems(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.NewsItemsFetched.Add(float64(n))
}

func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) PipelineRun(result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.PipelineRuns.WithLabelValues(result).Inc()
	m.PipelineDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) SnapshotWritten() {
	if m == nil {
		return
	}
	m.SnapshotsWritten.Inc()
}
