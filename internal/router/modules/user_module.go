package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/sakilait22310750/skillsync/internal/interface/http"
	"github.com/sakilait22310750/skillsync/internal/interface/middleware"
	"github.com/sakilait22310750/skillsync/pkg/helpers"
)

// UserModule registers the authenticated profile routes.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/users/me", m.Handler.Me)
		auth.PUT("/users/me", m.Handler.UpdateMe)
	}
}
