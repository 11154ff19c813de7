package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/sakilait22310750/skillsync/internal/interface/http"
	"github.com/sakilait22310750/skillsync/internal/interface/middleware"
	"github.com/sakilait22310750/skillsync/pkg/helpers"
)

// PostModule wires the post feed, media and engagement routes.
// Public: listings, single post, per-user posts, media, search.
// Protected: create, edit, delete, like, unlike, comment, own posts.
type PostModule struct {
	Handler *handlers.PostHandler
	JWT     *helpers.JWTManager
}

func NewPostModule(h *handlers.PostHandler, jwt *helpers.JWTManager) *PostModule {
	return &PostModule{Handler: h, JWT: jwt}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	rg.GET("/posts", m.Handler.List)
	rg.GET("/posts/search", m.Handler.Search)
	rg.GET("/posts/media/:blobId", m.Handler.Media)
	rg.GET("/posts/user/:userId", m.Handler.ByUser)
	rg.GET("/posts/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/posts/me", m.Handler.Mine)
		auth.POST("/posts", m.Handler.Create)
		auth.PUT("/posts/:id", m.Handler.Update)
		auth.DELETE("/posts/:id", m.Handler.Delete)
		auth.POST("/posts/:id/like", m.Handler.Like)
		auth.POST("/posts/:id/unlike", m.Handler.Unlike)
		auth.POST("/posts/:id/comment", m.Handler.Comment)
	}
}
