package middleware

import (
	"time"

	"beauty-solutions-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records count and latency per route template
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveHTTP(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
