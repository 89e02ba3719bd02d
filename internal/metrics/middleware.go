package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// GinMiddleware records request count and duration per route pattern. The
// route pattern is used instead of the raw path so IDs and slugs do not blow
// up label cardinality.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		pathPattern := ctx.FullPath()
		if pathPattern == "" {
			pathPattern = "unmatched"
		}

		m.HTTPRequestsTotal.WithLabelValues(
			ctx.Request.Method,
			pathPattern,
			strconv.Itoa(ctx.Writer.Status()),
		).Inc()

		m.HTTPRequestDuration.WithLabelValues(
			ctx.Request.Method,
			pathPattern,
		).Observe(time.Since(start).Seconds())
	}
}

// ExpositionHandler serves the Prometheus text exposition format.
func (m *Metrics) ExpositionHandler() gin.HandlerFunc {
	handler := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})

	return func(ctx *gin.Context) {
		handler.ServeHTTP(ctx.Writer, ctx.Request)
	}
}
