package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latency of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	dbConnectionPoolStats = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "db_connection_pool_stats",
			Help: "Database connection pool statistics (total, idle, active)",
		},
		[]string{"state"},
	)

	cacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
	)
	cacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	repositoryCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "repository_call_duration_seconds",
			Help:    "Latency of favourites repository calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "outcome"},
	)

	workflowOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_outcomes_total",
			Help: "Favourite add/remove invocations by final state and reason",
		},
		[]string{"operation", "state", "reason"},
	)
)

func init() {
	// Register metrics
	prometheus.MustRegister(httpRequestLatency)
	prometheus.MustRegister(dbConnectionPoolStats)
	prometheus.MustRegister(cacheHits)
	prometheus.MustRegister(cacheMisses)
	prometheus.MustRegister(repositoryCallDuration)
	prometheus.MustRegister(workflowOutcomes)
}

// Middleware records HTTP request latency.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriterSpy{ResponseWriter: w, code: http.StatusOK}

		next.ServeHTTP(ww, r)

		duration := time.Since(start).Seconds()
		httpRequestLatency.WithLabelValues(r.Method, r.Pattern, fmt.Sprint(ww.code)).Observe(duration)
	})
}

type responseWriterSpy struct {
	http.ResponseWriter
	code int
}

func (w *responseWriterSpy) WriteHeader(statusCode int) {
	w.code = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// StartDBStatsCollector samples pool stats every 5s until ctx is done.
func StartDBStatsCollector(ctx context.Context, dbPool *pgxpool.Pool) {
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			stats := dbPool.Stat()
			dbConnectionPoolStats.WithLabelValues("total").Set(float64(stats.TotalConns()))
			dbConnectionPoolStats.WithLabelValues("idle").Set(float64(stats.IdleConns()))
			dbConnectionPoolStats.WithLabelValues("acquired").Set(float64(stats.AcquiredConns()))
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}
