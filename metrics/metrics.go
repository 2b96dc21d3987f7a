// Package metrics holds the prometheus collectors of the dispatch tracker.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ScanMetrics is safe to use as a nil pointer, in which case nothing is recorded.
type ScanMetrics struct {
	scanTotal        *prometheus.CounterVec
	scanDuration     prometheus.Histogram
	rollbacksTotal   prometheus.Counter
	referenceRows    prometheus.Gauge
	referenceReloads *prometheus.CounterVec

	collectors []prometheus.Collector
}

// NewScanMetrics creates the collectors and registers them on registry.
func NewScanMetrics(registry prometheus.Registerer) (*ScanMetrics, error) {
	m := &ScanMetrics{}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *ScanMetrics) initMetrics() {
	m.scanTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_scan_total",
			Help: "Total number of scan attempts by outcome",
		},
		[]string{"outcome", "reason"},
	)

	m.scanDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dispatch_scan_duration_seconds",
			Help:    "Time taken to validate and commit one scan",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
		},
	)

	m.rollbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dispatch_scan_rollbacks_total",
			Help: "Total number of compensating deletes issued by the commit step",
		},
	)

	m.referenceRows = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dispatch_reference_rows",
			Help: "Rows in the reference dataset after the last replace",
		},
	)

	m.referenceReloads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_reference_replace_total",
			Help: "Total number of reference dataset replacements",
		},
		[]string{"status"},
	)

	m.collectors = []prometheus.Collector{
		m.scanTotal,
		m.scanDuration,
		m.rollbacksTotal,
		m.referenceRows,
		m.referenceReloads,
	}
}

// Describe implements the Collector interface
func (m *ScanMetrics) Describe(ch chan<- *prometheus.Desc) {
	for _, collector := range m.collectors {
		collector.Describe(ch)
	}
}

// Collect implements the Collector interface
func (m *ScanMetrics) Collect(ch chan<- prometheus.Metric) {
	for _, collector := range m.collectors {
		collector.Collect(ch)
	}
}

func (m *ScanMetrics) RecordScan(outcome, reason string, elapsed time.Duration) {
	if m == nil {
		return
	}
	if reason == "" {
		reason = "none"
	}
	m.scanTotal.WithLabelValues(outcome, reason).Inc()
	m.scanDuration.Observe(elapsed.Seconds())
}

func (m *ScanMetrics) RecordRollback() {
	if m == nil {
		return
	}
	m.rollbacksTotal.Inc()
}

func (m *ScanMetrics) RecordReferenceReplace(rows int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.referenceReloads.WithLabelValues("error").Inc()
		return
	}
	m.referenceReloads.WithLabelValues("success").Inc()
	m.referenceRows.Set(float64(rows))
}
