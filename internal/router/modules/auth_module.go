package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/tpremraj1312/ledger-admin/internal/interface/http"
)

// AuthModule exposes the public admin login and registration routes.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Limiter gin.HandlerFunc
}

func NewAuthModule(h *handlers.AuthHandler, limiter gin.HandlerFunc) *AuthModule {
	return &AuthModule{Handler: h, Limiter: limiter}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/login", m.Limiter, m.Handler.Login)
	rg.POST("/register", m.Limiter, m.Handler.Register)
}
