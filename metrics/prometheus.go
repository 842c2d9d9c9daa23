package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "endpoint", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations.",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"method", "endpoint", "status"},
	)
	ingestItemsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compare_ingest_items_total",
			Help: "Marketplace items processed by ingestion, by outcome.",
		},
		[]string{"category", "outcome"},
	)
	ingestBatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compare_ingest_batches_total",
			Help: "Ingestion batches, by result.",
		},
		[]string{"category", "result"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(ingestItemsTotal)
	prometheus.MustRegister(ingestBatchesTotal)
}

func RecordRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := classifyStatus(statusCode)
	httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
}

func RecordIngestItem(category string, outcome Outcome) {
	ingestItemsTotal.WithLabelValues(category, string(outcome)).Inc()
}

func RecordIngestBatch(category string, err error) {
	result := "ok"
	if err != nil {
		result = "failed"
	}
	ingestBatchesTotal.WithLabelValues(category, result).Inc()
}

func classifyStatus(statusCode int) string {
	if statusCode >= 200 && statusCode < 300 {
		return "2xx"
	} else if statusCode >= 300 && statusCode < 400 {
		return "3xx"
	} else if statusCode >= 400 && statusCode < 500 {
		return "4xx"
	} else if statusCode >= 500 && statusCode < 600 {
		return "5xx"
	}
	return "unknown"
}

// MetricsHandler exposes the default registry for scraping.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
