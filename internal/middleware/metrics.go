package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "myvoca_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "myvoca_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "myvoca_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	wordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "myvoca_words_total",
			Help: "Words created and deleted through the API",
		},
		[]string{"operation"},
	)

	dictionaryLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "myvoca_dictionary_lookups_total",
			Help: "Dictionary enrichment requests by outcome",
		},
		[]string{"status"},
	)
)

// Metrics collects Prometheus request metrics. Routes are labelled with
// their pattern (e.g. /api/words/:id) so ids don't explode cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

func RecordWordCreated() {
	wordsTotal.WithLabelValues("created").Inc()
}

func RecordWordDeleted() {
	wordsTotal.WithLabelValues("deleted").Inc()
}

// RecordDictionaryLookup counts one word enrichment, inline or from a task.
func RecordDictionaryLookup(success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	dictionaryLookupsTotal.WithLabelValues(status).Inc()
}
