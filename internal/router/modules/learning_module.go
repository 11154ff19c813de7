package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/sakilait22310750/skillsync/internal/interface/http"
	"github.com/sakilait22310750/skillsync/internal/interface/middleware"
	"github.com/sakilait22310750/skillsync/pkg/helpers"
)

// LearningModule wires learning plan and progress routes.
// Plans are publicly readable; everything else requires a session.
type LearningModule struct {
	Handler *handlers.LearningHandler
	JWT     *helpers.JWTManager
}

func NewLearningModule(h *handlers.LearningHandler, jwt *helpers.JWTManager) *LearningModule {
	return &LearningModule{Handler: h, JWT: jwt}
}

func (m *LearningModule) Register(rg *gin.RouterGroup) {
	rg.GET("/learningplans", m.Handler.ListPlans)
	rg.GET("/learningplans/:id", m.Handler.GetPlan)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/learningplans/me", m.Handler.MyPlans)
		auth.POST("/learningplans", m.Handler.CreatePlan)
		auth.PUT("/learningplans/:id", m.Handler.UpdatePlan)
		auth.DELETE("/learningplans/:id", m.Handler.DeletePlan)

		auth.GET("/learningprogress", m.Handler.MyProgress)
		auth.POST("/learningprogress", m.Handler.StartProgress)
		auth.PUT("/learningprogress/:id", m.Handler.UpdateProgress)
		auth.DELETE("/learningprogress/:id", m.Handler.DeleteProgress)
	}
}
