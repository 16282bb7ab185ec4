package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

// AllowFunc returns true for requests that bypass the limiter.
type AllowFunc func(*gin.Context) bool

// AllowLoopback lets local tooling (seed scripts, health probes) through.
func AllowLoopback() AllowFunc {
	return func(c *gin.Context) bool {
		ip := net.ParseIP(ipFromCtx(c))
		return ip != nil && ip.IsLoopback()
	}
}
