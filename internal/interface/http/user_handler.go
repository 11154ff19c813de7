package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sakilait22310750/skillsync/internal/application"
	"github.com/sakilait22310750/skillsync/internal/interface/middleware"
	"github.com/sakilait22310750/skillsync/pkg/response"
	"github.com/sakilait22310750/skillsync/pkg/validation"
)

type UserHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.AuthService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	PhotoURL string `json:"photoUrl" binding:"omitempty,url"`
}

func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.Svc.Profile(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, viewUser(u), "profile", nil)
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), middleware.Identity(c), req.Name, req.Bio, req.PhotoURL)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, viewUser(u), "profile updated", nil)
}
