package worker

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// jobDurationBuckets reach well past the API latency range since blur on
// large sources legitimately takes seconds.
var jobDurationBuckets = []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60}

type metrics struct {
	registry             *prometheus.Registry
	jobsTotal            *prometheus.CounterVec
	jobDuration          *prometheus.HistogramVec
	activeJobs           prometheus.Gauge
	outputBytesTotal     prometheus.Counter
	pixelsProcessedTotal prometheus.Counter
	bytesSavedTotal      prometheus.Counter
	computeTimeMSTotal   prometheus.Counter
}

func newMetrics() *metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &metrics{
		registry: registry,
		jobsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "darkroom_worker_jobs_total",
			Help: "Total worker jobs by source type and final status.",
		}, []string{"source_type", "status"}),
		jobDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "darkroom_worker_job_duration_seconds",
			Help:    "Total processing duration for each worker job.",
			Buckets: jobDurationBuckets,
		}, []string{"source_type", "status"}),
		activeJobs: factory.NewGauge(prometheus.GaugeOpts{
			Name: "darkroom_worker_active_jobs",
			Help: "Current number of active edit jobs in the worker.",
		}),
		outputBytesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "darkroom_worker_output_bytes_total",
			Help: "Total encoded output bytes emitted by the worker.",
		}),
		pixelsProcessedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "darkroom_usage_pixels_processed_total",
			Help: "Total pixels processed across all successful jobs.",
		}),
		bytesSavedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "darkroom_usage_bytes_saved_total",
			Help: "Total bytes saved across all successful jobs.",
		}),
		computeTimeMSTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "darkroom_usage_compute_time_ms_total",
			Help: "Total compute time in milliseconds across successful jobs.",
		}),
	}
}

func (m *metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
