// Package metrics
package metrics

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Detections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "langid_detections_total",
			Help: "Total number of detection requests, labeled by engine and outcome.",
		},
		[]string{"engine", "outcome"},
	)
	DetectionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "langid_detection_duration_seconds",
			Help:    "Duration of engine invocations in seconds.",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"engine"},
	)
	HintErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "langid_hint_errors_total",
			Help: "Total number of rejected hints, labeled by error kind.",
		},
		[]string{"kind"},
	)
	TextBytes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "langid_text_bytes_total",
			Help: "Total number of input bytes the engine classified as text.",
		},
	)
	DBQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "langid_db_query_duration_seconds",
			Help:    "Duration of database queries in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query_name"},
	)
	Jobs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "langid_jobs_total",
			Help: "Total number of detection jobs finished by the worker, labeled by final status.",
		},
		[]string{"status"},
	)
	PendingJobs = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "langid_jobs_pending",
			Help: "Number of jobs waiting for detection.",
		},
	)
	PublishedResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "langid_published_results_total",
			Help: "Total number of results published to the result stream, labeled by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(Detections)
	prometheus.MustRegister(DetectionDuration)
	prometheus.MustRegister(HintErrors)
	prometheus.MustRegister(TextBytes)
	prometheus.MustRegister(DBQueryDuration)
	prometheus.MustRegister(Jobs)
	prometheus.MustRegister(PendingJobs)
	prometheus.MustRegister(PublishedResults)
}

func ExposeMetrics(addr string) {
	slog.Info("Exposing Prometheus metrics", "address", addr)
	http.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, nil); err != nil {
		slog.Error("Failed to start Prometheus metrics server", "error", err)
	}
}
