package router

import "github.com/gin-gonic/gin"

// Module registers one feature's routes on the /admin group.
type Module interface {
	Register(admin *gin.RouterGroup)
}
