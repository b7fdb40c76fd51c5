package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/nutriplan/internal/pipeline"
	"github.com/jonathan/nutriplan/internal/rendering"
)

var (
	_ pipeline.Recorder        = (*Metrics)(nil)
	_ rendering.ExportRecorder = (*Metrics)(nil)
)

func TestGenerationMetrics(t *testing.T) {
	m := New()

	m.ChunkReceived()
	m.ChunkReceived()
	m.DayReached(4)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.chunks))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.progressDay))

	m.GenerationFinished(pipeline.OutcomeSuccess, 3*time.Second)
	m.GenerationFinished(pipeline.OutcomeMalformed, time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.generations.WithLabelValues(pipeline.OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.generations.WithLabelValues(pipeline.OutcomeMalformed)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.progressDay))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestExportMetrics(t *testing.T) {
	m := New()

	m.ExportFinished(rendering.ExportSuccess)
	m.ExportFinished(rendering.ExportFailure)
	m.ExportFinished(rendering.ExportFailure)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.exports.WithLabelValues(rendering.ExportSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.exports.WithLabelValues(rendering.ExportFailure)))
}

func TestHandler(t *testing.T) {
	m := New()
	m.GenerationFinished(pipeline.OutcomeTransportError, time.Second)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `nutriplan_generations_total{outcome="transport_error"} 1`)
	assert.Contains(t, body, "nutriplan_generation_duration_seconds_bucket")
	assert.Contains(t, body, "go_goroutines")
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.ChunkReceived()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.chunks))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.chunks))
}
