package metrics

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// GinMiddleware records per-request counters. Uses the route template rather
// than the raw URL so path cardinality stays bounded.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}
