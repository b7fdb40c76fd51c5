// Package metrics exposes generation and export measurements to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "nutriplan"

// Metrics owns a private registry so several servers (and tests) can coexist in one process.
// It satisfies pipeline.Recorder and rendering.ExportRecorder.
type Metrics struct {
	registry *prometheus.Registry

	generations *prometheus.CounterVec
	duration    prometheus.Histogram
	chunks      prometheus.Counter
	progressDay prometheus.Gauge
	exports     *prometheus.CounterVec
}

// New creates the collectors and registers them, together with the Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generations_total",
				Help:      "Count of finished generation attempts by outcome.",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "generation_duration_seconds",
				Help:      "Duration of generation attempts from stream open to validation.",
				Buckets:   []float64{1, 2.5, 5, 10, 20, 30, 60, 120},
			},
		),
		chunks: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generation_chunks_total",
				Help:      "Count of non-empty chunks received from the model.",
			},
		),
		progressDay: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "generation_progress_day",
				Help:      "Day ordinal most recently reached by the running generation.",
			},
		),
		exports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "exports_total",
				Help:      "Count of PDF exports by outcome.",
			},
			[]string{"outcome"},
		),
	}

	m.registry.MustRegister(
		m.generations, m.duration, m.chunks, m.progressDay, m.exports,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ChunkReceived counts one non-empty chunk.
func (m *Metrics) ChunkReceived() {
	m.chunks.Inc()
}

// DayReached records the latest day ordinal.
func (m *Metrics) DayReached(day int) {
	m.progressDay.Set(float64(day))
}

// GenerationFinished records one attempt and resets the progress gauge.
func (m *Metrics) GenerationFinished(outcome string, elapsed time.Duration) {
	m.generations.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
	m.progressDay.Set(0)
}

// ExportFinished records one export attempt.
func (m *Metrics) ExportFinished(outcome string) {
	m.exports.WithLabelValues(outcome).Inc()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
