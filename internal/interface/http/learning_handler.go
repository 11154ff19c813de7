package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sakilait22310750/skillsync/internal/application"
	"github.com/sakilait22310750/skillsync/internal/domain/entity"
	"github.com/sakilait22310750/skillsync/internal/interface/middleware"
	"github.com/sakilait22310750/skillsync/pkg/response"
	"github.com/sakilait22310750/skillsync/pkg/validation"
)

type LearningHandler struct {
	Svc    *application.LearningService
	Logger *logrus.Logger
}

func NewLearningHandler(svc *application.LearningService, logger *logrus.Logger) *LearningHandler {
	return &LearningHandler{Svc: svc, Logger: logger}
}

type planRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Topics      []string `json:"topics"`
	Resources   []string `json:"resources"`
}

type progressTopicRequest struct {
	Name      string `json:"name" binding:"required"`
	Completed bool   `json:"completed"`
}

type progressRequest struct {
	Name        string                 `json:"name" binding:"required"`
	Description string                 `json:"description"`
	Topics      []progressTopicRequest `json:"topics"`
	Resources   []string               `json:"resources"`
}

func (r *planRequest) toEntity() *entity.LearningPlan {
	return &entity.LearningPlan{
		Name:        r.Name,
		Description: r.Description,
		Topics:      r.Topics,
		Resources:   r.Resources,
	}
}

func (r *progressRequest) toEntity() *entity.LearningProgress {
	p := &entity.LearningProgress{
		Name:        r.Name,
		Description: r.Description,
		Resources:   r.Resources,
	}
	for _, t := range r.Topics {
		p.Topics = append(p.Topics, entity.ProgressTopic{Name: t.Name, Completed: t.Completed})
	}
	return p
}

func (h *LearningHandler) CreatePlan(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	plan, err := h.Svc.CreatePlan(c.Request.Context(), middleware.Identity(c), req.toEntity())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, plan, "plan created", nil)
}

func (h *LearningHandler) ListPlans(c *gin.Context) {
	plans, err := h.Svc.ListPlans(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, plans, "plans", gin.H{"count": len(plans)})
}

func (h *LearningHandler) MyPlans(c *gin.Context) {
	plans, err := h.Svc.ListMyPlans(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, plans, "plans", gin.H{"count": len(plans)})
}

func (h *LearningHandler) GetPlan(c *gin.Context) {
	plan, err := h.Svc.GetPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, plan, "plan", nil)
}

func (h *LearningHandler) UpdatePlan(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	plan, err := h.Svc.UpdatePlan(c.Request.Context(), middleware.Identity(c), c.Param("id"), req.toEntity())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, plan, "plan updated", nil)
}

func (h *LearningHandler) DeletePlan(c *gin.Context) {
	if err := h.Svc.DeletePlan(c.Request.Context(), middleware.Identity(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LearningHandler) StartProgress(c *gin.Context) {
	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.StartProgress(c.Request.Context(), middleware.Identity(c), req.toEntity())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "progress created", nil)
}

func (h *LearningHandler) MyProgress(c *gin.Context) {
	items, err := h.Svc.ListMyProgress(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, "progress", gin.H{"count": len(items)})
}

func (h *LearningHandler) UpdateProgress(c *gin.Context) {
	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.UpdateProgress(c.Request.Context(), middleware.Identity(c), c.Param("id"), req.toEntity())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "progress updated", nil)
}

func (h *LearningHandler) DeleteProgress(c *gin.Context) {
	if err := h.Svc.DeleteProgress(c.Request.Context(), middleware.Identity(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
