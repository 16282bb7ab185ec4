package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tpremraj1312/ledger-admin/internal/application"
	"github.com/tpremraj1312/ledger-admin/internal/domain/apperr"
	"github.com/tpremraj1312/ledger-admin/pkg/response"
)

const (
	CtxAdminIDKey    = "admin_id"
	CtxAdminEmailKey = "admin_email"
)

// TokenVerifier is satisfied by *application.AuthService.
type TokenVerifier interface {
	Verify(token string) (application.Principal, error)
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
func bearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Auth rejects requests without a valid bearer token and stores the admin
// identity in the Gin context.
func Auth(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Abort(c, apperr.New(apperr.KindAuthInvalidToken, "No token provided", nil))
			return
		}
		p, err := v.Verify(token)
		if err != nil {
			response.Abort(c, err)
			return
		}
		c.Set(CtxAdminIDKey, p.AdminID)
		c.Set(CtxAdminEmailKey, p.Email)
		c.Next()
	}
}

// ActorFrom returns the authenticated admin recorded by Auth.
func ActorFrom(c *gin.Context) application.Actor {
	return application.Actor{
		AdminID:   c.GetString(CtxAdminIDKey),
		Email:     c.GetString(CtxAdminEmailKey),
		RequestID: c.GetString(CtxRequestIDKey),
	}
}
