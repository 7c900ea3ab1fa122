// Package metrics provides Prometheus metrics collection for the bar bending schedule service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// ScheduleCalculationsTotal counts schedule calculations by outcome.
	ScheduleCalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bbs_calculations_total",
			Help: "Total number of bar bending schedule calculations",
		},
		[]string{"status"},
	)

	// ScheduleCalculationDuration tracks engine run time.
	ScheduleCalculationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bbs_calculation_duration_seconds",
			Help:    "Bar bending schedule calculation duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5},
		},
	)

	// BarGroupsPerSchedule tracks schedule size.
	BarGroupsPerSchedule = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bbs_bar_groups_per_schedule",
			Help:    "Number of bar groups per calculated schedule",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	// SplicesTotal counts splices added by the lap resolver, per bar.
	SplicesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bbs_splices_total",
			Help: "Total number of lap splices in calculated schedules",
		},
	)

	// SteelWeightKgTotal accumulates the steel weight of calculated schedules.
	SteelWeightKgTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bbs_steel_weight_kg_total",
			Help: "Total steel weight of calculated schedules in kg",
		},
		[]string{"diameter_mm"},
	)

	// ImportRowsTotal counts imported bar group rows by format and outcome.
	ImportRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bbs_import_rows_total",
			Help: "Total number of imported bar group rows",
		},
		[]string{"format", "status"},
	)

	// ExportsTotal counts schedule exports by format.
	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bbs_exports_total",
			Help: "Total number of schedule exports",
		},
		[]string{"format"},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
	)

	// CacheCapacity tracks cache capacity.
	CacheCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Cache capacity",
		},
	)

	// CircuitBreakerState reports 0 closed, 1 open, 2 half-open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		statusCode := strconv.Itoa(c.Writer.Status())
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path, statusCode).Observe(time.Since(start).Seconds())
		HTTPRequestTotal.WithLabelValues(c.Request.Method, path, statusCode).Inc()
	}
}

// ScheduleStats is the part of a calculated schedule that feeds metrics.
type ScheduleStats struct {
	BarGroups        int
	Splices          int
	WeightByDiameter map[int]float64
}

// RecordScheduleCalculation records metrics for one schedule calculation.
// status is "success", "cached" or an error class.
func RecordScheduleCalculation(duration time.Duration, status string, stats ScheduleStats) {
	ScheduleCalculationsTotal.WithLabelValues(status).Inc()
	if status != "success" {
		return
	}
	ScheduleCalculationDuration.Observe(duration.Seconds())
	BarGroupsPerSchedule.Observe(float64(stats.BarGroups))
	SplicesTotal.Add(float64(stats.Splices))
	for d, kg := range stats.WeightByDiameter {
		SteelWeightKgTotal.WithLabelValues(strconv.Itoa(d)).Add(kg)
	}
}

// RecordImportRows records imported rows for a file format.
func RecordImportRows(format, status string, rows int) {
	ImportRowsTotal.WithLabelValues(format, status).Add(float64(rows))
}

// RecordExport records one schedule export.
func RecordExport(format string) {
	ExportsTotal.WithLabelValues(format).Inc()
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateCacheMetrics updates cache size and capacity metrics.
func UpdateCacheMetrics(size, capacity int) {
	CacheSize.Set(float64(size))
	CacheCapacity.Set(float64(capacity))
}

// SetCircuitBreakerState publishes the numeric state of a named circuit breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
