package router

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pennywise-app/backend/internal/models"
	"github.com/prometheus/client_golang/prometheus"
)

// UserHeader is the header under which the session layer passes the
// authenticated user for every request.
const UserHeader = "X-User-ID"

type authError struct {
	Error string `json:"error" example:"the X-User-ID header must be set to a valid UUID"`
}

// AuthenticatedUser requires the user header to be set to a valid UUID
// and stores it in the request context.
//
// The backend trusts the header, verifying the session is the job of
// the identity layer in front of it. Whether the user actually exists
// is checked by the ownership scoping of every database query.
func AuthenticatedUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.GetHeader(UserHeader))
		if err != nil || id == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, authError{
				Error: "the " + UserHeader + " header must be set to a valid UUID",
			})
			return
		}

		c.Set(string(models.ContextUserID), id.String())
		c.Next()
	}
}

var requestCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "requests_total",
		Help: "Number of processed HTTP requests, partitioned by status code, method and path.",
	},
	[]string{"code", "method", "path"},
)

var requestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "request_duration_seconds",
		Help: "HTTP request latency in seconds.",
	},
	[]string{"code", "method", "path"},
)

var metrics = []prometheus.Collector{
	requestCount,
	requestDuration,
}

// RegisterPrometheusMetrics registers all collectors with the default
// registry.
func RegisterPrometheusMetrics() error {
	for _, collector := range metrics {
		if err := prometheus.Register(collector); err != nil {
			return fmt.Errorf("could not register prometheus collector: %w", err)
		}
	}

	return nil
}

// UnregisterPrometheusMetrics unregisters all collectors again. Tests
// use the pair to get a clean registry per run.
func UnregisterPrometheusMetrics() bool {
	for _, collector := range metrics {
		if ok := prometheus.Unregister(collector); !ok {
			return false
		}
	}

	return true
}

// MetricsMiddleware records count and duration of every request.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())

		// Parameter values are replaced with the parameter name to keep
		// the label cardinality bounded
		path := c.Request.URL.Path
		for _, p := range c.Params {
			path = strings.Replace(path, p.Value, ":"+p.Key, 1)
		}

		requestCount.WithLabelValues(status, c.Request.Method, path).Inc()
		requestDuration.WithLabelValues(status, c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
