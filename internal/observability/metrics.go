// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Gateway metrics
	FetchTotal   *prometheus.CounterVec
	FetchLatency *prometheus.HistogramVec

	// Pipeline metrics
	GenerationsStarted prometheus.Counter
	StageOutcomes      *prometheus.CounterVec
	StaleDiscarded     prometheus.Counter
	PipelineDuration   *prometheus.HistogramVec

	// Aggregation metrics
	SmartMoneyEvents *prometheus.CounterVec

	// Feed metrics
	ActivityEntries prometheus.Counter
	FeedClients     prometheus.Gauge
}

// NewMetrics creates a new Metrics instance registered on reg.
// A nil reg uses the default Prometheus registerer.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "token_scope"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		FetchTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "fetch_total",
			Help:      "Total number of provider fetches by provider and result",
		}, []string{"provider", "result"}),
		FetchLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "fetch_latency_seconds",
			Help:      "Provider fetch latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),

		GenerationsStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "generations_started_total",
			Help:      "Total number of query generations started",
		}),
		StageOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_outcomes_total",
			Help:      "Total number of completed stages by stage and outcome",
		}, []string{"stage", "outcome"}),
		StaleDiscarded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stale_results_discarded_total",
			Help:      "Total number of stage results dropped because their generation was superseded",
		}),
		PipelineDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "duration_seconds",
			Help:      "Generation duration from submit to terminal state",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		}, []string{"state"}),

		SmartMoneyEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "smart_money",
			Name:      "events_total",
			Help:      "Raw transaction events seen by aggregation, by disposition",
		}, []string{"disposition"}),

		ActivityEntries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "activity",
			Name:      "entries_total",
			Help:      "Total number of activity log entries appended",
		}),
		FeedClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "clients",
			Help:      "Number of connected websocket feed clients",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("", nil)

// RecordFetch records a provider fetch. result is "ok" or an error kind.
func RecordFetch(provider, result string, seconds float64) {
	DefaultMetrics.FetchTotal.WithLabelValues(provider, result).Inc()
	DefaultMetrics.FetchLatency.WithLabelValues(provider).Observe(seconds)
}

// RecordGenerationStarted increments the generations counter.
func RecordGenerationStarted() {
	DefaultMetrics.GenerationsStarted.Inc()
}

// RecordStage records a completed stage.
func RecordStage(stage, outcome string) {
	DefaultMetrics.StageOutcomes.WithLabelValues(stage, outcome).Inc()
}

// RecordStaleDiscarded increments the stale results counter.
func RecordStaleDiscarded() {
	DefaultMetrics.StaleDiscarded.Inc()
}

// RecordPipelineRun records a generation reaching a terminal state.
func RecordPipelineRun(state string, durationSeconds float64) {
	DefaultMetrics.PipelineDuration.WithLabelValues(state).Observe(durationSeconds)
}

// RecordSmartMoneyEvents adds n events with the given disposition.
func RecordSmartMoneyEvents(disposition string, n int) {
	if n <= 0 {
		return
	}
	DefaultMetrics.SmartMoneyEvents.WithLabelValues(disposition).Add(float64(n))
}

// RecordActivityEntry increments the activity entries counter.
func RecordActivityEntry() {
	DefaultMetrics.ActivityEntries.Inc()
}

// SetFeedClients sets the connected feed clients gauge.
func SetFeedClients(n int) {
	DefaultMetrics.FeedClients.Set(float64(n))
}
