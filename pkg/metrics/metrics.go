package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "intelligence"

// Run statuses recorded on the runs counter.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Recorder collects report pipeline metrics.
type Recorder interface {
	ObserveRun(status string, took time.Duration)
	AddIngested(n int)
	AddSkipped(reason string, n int)
	Handler() http.Handler
}

type recorder struct {
	registry *prometheus.Registry
	runs     *prometheus.CounterVec
	ingested prometheus.Counter
	skipped  *prometheus.CounterVec
	duration prometheus.Histogram
}

// New registers the pipeline collectors on a private registry along with
// the Go runtime and process collectors.
func New() Recorder {
	r := &recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_runs_total",
			Help:      "Report runs by final status.",
		}, []string{"status"}),
		ingested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_ingested_total",
			Help:      "Comments accepted into an aggregation.",
		}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_skipped_total",
			Help:      "Records skipped by reason.",
		}, []string{"reason"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_duration_seconds",
			Help:      "Wall time of a report run.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
	}
	r.registry.MustRegister(
		r.runs, r.ingested, r.skipped, r.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *recorder) ObserveRun(status string, took time.Duration) {
	r.runs.WithLabelValues(status).Inc()
	r.duration.Observe(took.Seconds())
}

func (r *recorder) AddIngested(n int) {
	if n > 0 {
		r.ingested.Add(float64(n))
	}
}

func (r *recorder) AddSkipped(reason string, n int) {
	if n > 0 {
		r.skipped.WithLabelValues(reason).Add(float64(n))
	}
}

// Handler serves the registry in the Prometheus text format.
func (r *recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Nop discards everything. Handler serves an empty registry.
func Nop() Recorder {
	return nopRecorder{registry: prometheus.NewRegistry()}
}

type nopRecorder struct {
	registry *prometheus.Registry
}

func (nopRecorder) ObserveRun(string, time.Duration) {}
func (nopRecorder) AddIngested(int)                  {}
func (nopRecorder) AddSkipped(string, int)           {}
func (n nopRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(n.registry, promhttp.HandlerOpts{})
}
