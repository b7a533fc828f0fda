// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const NAMESPACE = "solar_leads"

// Collaborator labels.
const (
	CollaboratorDataLayers       = "data_layers"
	CollaboratorFootprints       = "footprints"
	CollaboratorGeocoder         = "geocoder"
	CollaboratorBuildingInsights = "building_insights"
	CollaboratorPropertyDetails  = "property_details"
)

// Pipeline outcomes.
const (
	OutcomeDone      = "done"
	OutcomeAborted   = "aborted"
	OutcomeCancelled = "cancelled"
)

// Metrics holds the service collectors on a private registry. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	pipelineRuns     *prometheus.CounterVec
	buildingsSkipped *prometheus.CounterVec
	insightsStreamed prometheus.Counter
	callDuration     *prometheus.HistogramVec
	throttleWait     prometheus.Histogram
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{Namespace: NAMESPACE}),
	)

	m := &Metrics{
		registry: registry,
		pipelineRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: NAMESPACE,
			Name:      "area_pipeline_runs_total",
			Help:      "Area solar pipeline runs by outcome.",
		}, []string{"outcome"}),
		buildingsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: NAMESPACE,
			Name:      "buildings_skipped_total",
			Help:      "Buildings left out of an area stream, by reason.",
		}, []string{"reason"}),
		insightsStreamed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: NAMESPACE,
			Name:      "insights_streamed_total",
			Help:      "Building insight records written to area streams.",
		}),
		callDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: NAMESPACE,
			Name:      "external_call_duration_seconds",
			Help:      "Latency of calls to external collaborators.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"collaborator", "status"}),
		throttleWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: NAMESPACE,
			Name:      "insights_throttle_wait_seconds",
			Help:      "Time spent waiting on the shared building insights throttle.",
			Buckets:   []float64{.01, .1, .5, 1, 2, 5, 10, 30, 60},
		}),
	}
	registry.MustRegister(m.pipelineRuns, m.buildingsSkipped, m.insightsStreamed, m.callDuration, m.throttleWait)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) PipelineRun(outcome string) {
	if m == nil {
		return
	}
	m.pipelineRuns.WithLabelValues(outcome).Inc()
}

func (m *Metrics) BuildingSkipped(reason string) {
	if m == nil {
		return
	}
	m.buildingsSkipped.WithLabelValues(reason).Inc()
}

func (m *Metrics) InsightStreamed() {
	if m == nil {
		return
	}
	m.insightsStreamed.Inc()
}

// ObserveCall records the duration of a call started at start.
func (m *Metrics) ObserveCall(collaborator string, start time.Time, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.callDuration.WithLabelValues(collaborator, status).Observe(time.Since(start).Seconds())
}

func (m *Metrics) ObserveThrottleWait(d time.Duration) {
	if m == nil {
		return
	}
	m.throttleWait.Observe(d.Seconds())
}
