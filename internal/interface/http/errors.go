package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sakilait22310750/skillsync/internal/application"
	repo "github.com/sakilait22310750/skillsync/internal/domain/repository"
	"github.com/sakilait22310750/skillsync/pkg/response"
)

// writeError maps service errors onto the HTTP error taxonomy. Anything
// unrecognized is a 500 with a generic message so internals never leak.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repo.ErrConflictingMedia),
		errors.Is(err, repo.ErrTooManyImages):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, repo.ErrForbidden):
		response.Error(c, http.StatusForbidden, "forbidden", nil)
	case errors.Is(err, repo.ErrUserNotFound),
		errors.Is(err, repo.ErrPostNotFound),
		errors.Is(err, repo.ErrBlobNotFound),
		errors.Is(err, repo.ErrPlanNotFound),
		errors.Is(err, repo.ErrProgressNotFound):
		response.Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, repo.ErrEmailTaken):
		response.Error(c, http.StatusConflict, err.Error(), nil)
	default:
		response.Error(c, http.StatusInternalServerError, "internal server error", nil)
	}
}
