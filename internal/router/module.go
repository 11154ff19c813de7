package router

import "github.com/gin-gonic/gin"

// Module is a feature area that mounts its own routes on the shared group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
