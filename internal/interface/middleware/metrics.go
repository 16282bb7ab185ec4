package middleware

import (
	"expvar"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	requestsByStatus = expvar.NewMap("http_requests_by_status")
	requestsByRoute  = expvar.NewMap("http_requests_by_route")
	latencyMicros    = expvar.NewInt("http_latency_micros_total")
)

// Metrics counts requests per status and route for /admin/debug/vars.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		requestsByStatus.Add(strconv.Itoa(c.Writer.Status()), 1)
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestsByRoute.Add(c.Request.Method+" "+route, 1)
		latencyMicros.Add(time.Since(start).Microseconds())
	}
}
