package controllers

import (
	"LearnForge/internal/app_errors"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondError maps core error kinds onto status codes: missing entities
// to 404, slug collisions to 409, validation failures to 422, everything
// else to 500. Internal errors are attached to the gin context so the
// logging middleware records them, and the client gets a generic message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app_errors.ErrCourseNotFound),
		errors.Is(err, app_errors.ErrLessonNotFound),
		errors.Is(err, app_errors.ErrQuizNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrSlugTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrEmptySlug),
		errors.Is(err, app_errors.ErrInvalidContentType),
		errors.Is(err, app_errors.ErrMissingContent),
		errors.Is(err, app_errors.ErrContentConflict),
		errors.Is(err, app_errors.ErrInvalidPoints),
		errors.Is(err, app_errors.ErrEmptyQuestionText):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
