package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// SCHI pipeline. Dataset labels are "commute" and "weather"; join-drop side
// labels match them.
type Metrics struct {
	RowsRead    *prometheus.CounterVec // labels: dataset
	FeatureRows *prometheus.CounterVec // labels: dataset

	// Join and geometry bookkeeping.
	JoinDroppedRows *prometheus.CounterVec // labels: side={commute,weather}
	GeometryMisses  prometheus.Counter

	// Run lifecycle.
	RunsTotal       *prometheus.CounterVec // labels: outcome={success,error}
	RunDuration     prometheus.Histogram
	PipelineRunning prometheus.Gauge

	// Snapshot of the latest artifact.
	IndexRows prometheus.Gauge
	QuickSCHI prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "schi_etl",
			Name:      "rows_read_total",
			Help:      "Cleaned input rows read, by dataset.",
		}, []string{"dataset"}),
		FeatureRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "schi_etl",
			Name:      "feature_rows_total",
			Help:      "Aggregated (area, day) feature rows produced, by dataset.",
		}, []string{"dataset"}),
		JoinDroppedRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "schi_etl",
			Name:      "join_dropped_rows_total",
			Help:      "Feature rows dropped by the inner join, by one-sided side.",
		}, []string{"side"}),
		GeometryMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "schi_etl",
			Name:      "geometry_misses_total",
			Help:      "Index rows emitted without a boundary polygon.",
		}),
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "schi_etl",
			Name:      "runs_total",
			Help:      "Completed pipeline runs, by outcome.",
		}, []string{"outcome"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "schi_etl",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete load-aggregate-blend-write run.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "schi_etl",
			Name:      "pipeline_running",
			Help:      "1 while a run is in flight, 0 otherwise.",
		}),
		IndexRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "schi_etl",
			Name:      "index_rows",
			Help:      "Rows in the most recently written SCHI artifact.",
		}),
		QuickSCHI: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "schi_etl",
			Name:      "quick_schi",
			Help:      "City-wide quick pulse score (0-100) from the latest run.",
		}),
	}

	prometheus.MustRegister(
		m.RowsRead,
		m.FeatureRows,
		m.JoinDroppedRows,
		m.GeometryMisses,
		m.RunsTotal,
		m.RunDuration,
		m.PipelineRunning,
		m.IndexRows,
		m.QuickSCHI,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RowsRead:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "schi_etl", Name: "rows_read_total"}, []string{"dataset"}),
		FeatureRows:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "schi_etl", Name: "feature_rows_total"}, []string{"dataset"}),
		JoinDroppedRows: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "schi_etl", Name: "join_dropped_rows_total"}, []string{"side"}),
		GeometryMisses:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "schi_etl", Name: "geometry_misses_total"}),
		RunsTotal:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "schi_etl", Name: "runs_total"}, []string{"outcome"}),
		RunDuration:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "schi_etl", Name: "run_duration_seconds"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "schi_etl", Name: "pipeline_running"}),
		IndexRows:       prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "schi_etl", Name: "index_rows"}),
		QuickSCHI:       prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "schi_etl", Name: "quick_schi"}),
	}
}
