package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"
)

// DebugModule serves expvar counters to authenticated admins.
type DebugModule struct {
	Auth gin.HandlerFunc
}

func NewDebugModule(auth gin.HandlerFunc) *DebugModule { return &DebugModule{Auth: auth} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/debug/vars", m.Auth, gin.WrapH(expvar.Handler()))
}
