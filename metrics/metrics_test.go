package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewScanMetrics(reg)
	require.NoError(t, err)

	m.RecordScan("success", "", 5*time.Millisecond)
	m.RecordScan("error", "global_duplicate", time.Millisecond)
	m.RecordScan("error", "global_duplicate", time.Millisecond)
	m.RecordRollback()
	m.RecordReferenceReplace(42, nil)
	m.RecordReferenceReplace(0, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.scanTotal.WithLabelValues("success", "none")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.scanTotal.WithLabelValues("error", "global_duplicate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rollbacksTotal))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.referenceRows))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.referenceReloads.WithLabelValues("error")))
}

func TestNilScanMetricsIsNoop(t *testing.T) {
	var m *ScanMetrics
	assert.NotPanics(t, func() {
		m.RecordScan("success", "", time.Second)
		m.RecordRollback()
		m.RecordReferenceReplace(1, nil)
	})
}

func TestNewScanMetricsRejectsDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewScanMetrics(reg)
	require.NoError(t, err)
	_, err = NewScanMetrics(reg)
	assert.Error(t, err)
}
