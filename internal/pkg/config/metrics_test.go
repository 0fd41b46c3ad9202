package config

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// Each test registers against the default Prometheus registry, so every
// NewConfigMetrics call needs a component name unique across this file.

func TestNewConfigMetrics(t *testing.T) {
	metrics := NewConfigMetrics("test_registration")

	assert.NotNil(t, metrics.LoadTimestamp)
	assert.NotNil(t, metrics.ValidationErrorsTotal)
	assert.NotNil(t, metrics.FallbacksTotal)
	assert.NotNil(t, metrics.FallbackActive)
	assert.Equal(t, "test_registration", metrics.componentName)
}

func TestNewConfigMetrics_TwoComponentsCoexist(t *testing.T) {
	apiMetrics := NewConfigMetrics("test_api")
	workerMetrics := NewConfigMetrics("test_sweep_worker")

	apiMetrics.RecordLoadTimestamp()
	workerMetrics.RecordLoadTimestamp()

	assert.NotSame(t, apiMetrics.LoadTimestamp, workerMetrics.LoadTimestamp)
}

func TestRecordLoadTimestamp(t *testing.T) {
	metrics := NewConfigMetrics("test_load_timestamp")

	metrics.RecordLoadTimestamp()

	assert.Greater(t, testutil.ToFloat64(metrics.LoadTimestamp), float64(0))
}

func TestRecordValidationError_CountsPerField(t *testing.T) {
	metrics := NewConfigMetrics("test_validation_errors")

	metrics.RecordValidationError("retention")
	metrics.RecordValidationError("sweep_timeout")
	metrics.RecordValidationError("retention")

	retention := testutil.ToFloat64(metrics.ValidationErrorsTotal.WithLabelValues("retention"))
	sweepTimeout := testutil.ToFloat64(metrics.ValidationErrorsTotal.WithLabelValues("sweep_timeout"))
	assert.Equal(t, float64(2), retention)
	assert.Equal(t, float64(1), sweepTimeout)
}

func TestRecordFallback_CountsPerField(t *testing.T) {
	metrics := NewConfigMetrics("test_fallbacks")

	metrics.RecordFallback("cron_schedule")
	metrics.RecordFallback("cron_schedule")
	metrics.RecordFallback("health_port")

	schedule := testutil.ToFloat64(metrics.FallbacksTotal.WithLabelValues("cron_schedule"))
	port := testutil.ToFloat64(metrics.FallbacksTotal.WithLabelValues("health_port"))
	assert.Equal(t, float64(2), schedule)
	assert.Equal(t, float64(1), port)
}

func TestSetFallbackActive_TogglesGauge(t *testing.T) {
	metrics := NewConfigMetrics("test_fallback_active")

	metrics.SetFallbackActive(true)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.FallbackActive))

	metrics.SetFallbackActive(false)
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.FallbackActive))
}
