// Package metrics provides Prometheus metrics for the disk registry server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yadisk_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "yadisk_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Registry metrics
	importItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yadisk_import_items_total",
			Help: "Total number of import items by batch outcome",
		},
		[]string{"result"},
	)

	treeNodesReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "yadisk_tree_nodes_returned",
			Help:    "Number of nodes in each returned tree",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	deletedItemsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "yadisk_deleted_items_total",
			Help: "Total number of items removed by delete operations",
		},
	)

	// Store metrics
	txDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "yadisk_store_tx_duration_seconds",
			Help:    "Backing store transaction duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"store", "status"},
	)
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordHTTPRequest records an HTTP request metric.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordImport records the items of one import batch.
func RecordImport(items int, success bool) {
	importItemsTotal.WithLabelValues(result(success)).Add(float64(items))
}

// ObserveTreeNodes records the size of a returned tree.
func ObserveTreeNodes(count int) {
	treeNodesReturned.Observe(float64(count))
}

// RecordDeletedItems records items removed by one delete.
func RecordDeletedItems(count int) {
	deletedItemsTotal.Add(float64(count))
}

// RecordTx records a store transaction.
func RecordTx(store string, duration time.Duration, success bool) {
	txDuration.WithLabelValues(store, result(success)).Observe(duration.Seconds())
}

func result(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns HTTP middleware that records request metrics.
// Requests are labelled by route pattern so item ids do not become labels.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		RecordHTTPRequest(r.Method, path, rw.statusCode, time.Since(start))
	})
}
