package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus instruments for the query pipeline.
type Metrics struct {
	QueriesTotal    *prometheus.CounterVec
	QueryDuration   prometheus.Histogram
	InsightsTotal   *prometheus.CounterVec
	DatasetEvents   prometheus.Gauge
	HistorySessions prometheus.Gauge
}

// NewMetrics creates and registers the pipeline metrics on the default
// registry.
func NewMetrics() *Metrics {
	return &Metrics{
		QueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "asksiem_queries_total",
			Help: "Number of natural-language queries processed, by intent.",
		}, []string{"intent"}),
		QueryDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "asksiem_query_duration_seconds",
			Help:    "End-to-end query pipeline duration.",
			Buckets: prometheus.DefBuckets,
		}),
		InsightsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "asksiem_insights_total",
			Help: "Number of insights generated, by type.",
		}, []string{"type"}),
		DatasetEvents: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "asksiem_dataset_events",
			Help: "Number of events in the loaded dataset.",
		}),
		HistorySessions: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "asksiem_history_sessions",
			Help: "Number of conversation sessions currently retained.",
		}),
	}
}
