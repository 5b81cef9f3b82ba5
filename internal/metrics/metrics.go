package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for a playback session.
type Metrics struct {
	registry              *prometheus.Registry
	framesTotal           prometheus.Counter
	extentRecomputesTotal prometheus.Counter
	mutationsTotal        prometheus.Counter
	aliveObjects          prometheus.Gauge
	adjustments           prometheus.Gauge
}

// New creates and registers Prometheus metrics for the scroll engine.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	framesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "osuscroll_frames_total",
		Help: "Total number of update passes run",
	})
	extentRecomputesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "osuscroll_extent_recomputes_total",
		Help: "Total number of times a container extent was recomputed after invalidation",
	})
	mutationsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "osuscroll_mutations_total",
		Help: "Total number of queued mutations applied on the update pass",
	})
	aliveObjects := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "osuscroll_alive_objects",
		Help: "Number of hit objects currently held by scrolling containers",
	})
	adjustments := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "osuscroll_speed_adjustments",
		Help: "Number of speed adjustments in the session",
	})

	registry.MustRegister(
		framesTotal,
		extentRecomputesTotal,
		mutationsTotal,
		aliveObjects,
		adjustments,
	)

	return &Metrics{
		registry:              registry,
		framesTotal:           framesTotal,
		extentRecomputesTotal: extentRecomputesTotal,
		mutationsTotal:        mutationsTotal,
		aliveObjects:          aliveObjects,
		adjustments:           adjustments,
	}
}

func (m *Metrics) IncFrames() {
	m.framesTotal.Inc()
}

// AddExtentRecomputes adds n recomputations observed during a frame
func (m *Metrics) AddExtentRecomputes(n int) {
	if n > 0 {
		m.extentRecomputesTotal.Add(float64(n))
	}
}

func (m *Metrics) AddMutations(n int) {
	if n > 0 {
		m.mutationsTotal.Add(float64(n))
	}
}

func (m *Metrics) SetAliveObjects(n int) {
	m.aliveObjects.Set(float64(n))
}

func (m *Metrics) SetAdjustments(n int) {
	m.adjustments.Set(float64(n))
}

// Registry exposes the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an http.Handler that serves Prometheus metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
