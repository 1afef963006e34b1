package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"lucopay/internal/metrics"
)

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.IncRequest(route, c.Request.Method, strconv.Itoa(c.Writer.Status()/100)+"xx")
		metrics.ObserveDuration(route, c.Request.Method, time.Since(start).Seconds())
	}
}
