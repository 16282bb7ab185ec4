package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tpremraj1312/ledger-admin/pkg/response"
)

// Healthz GET /healthz reports whether the record store answers a ping.
func Healthz(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				response.Message(c, http.StatusServiceUnavailable, "Store unavailable")
				return
			}
		}
		response.JSON(c, http.StatusOK, gin.H{"status": "ok"})
	}
}
