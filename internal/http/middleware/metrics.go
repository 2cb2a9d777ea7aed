// README: Prometheus instrumentation for gin routes.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"sharestuff/internal/obs"
)

func Metrics(m *obs.HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.ReqTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		m.ReqDur.WithLabelValues(c.Request.Method, route).Observe(obs.DurationMillis(time.Since(start)))
	}
}
