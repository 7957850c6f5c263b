package controllers

import (
	"LearnForge/internal/models"
	"LearnForge/internal/service/course"
	"LearnForge/pkg/logger"
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const defaultSearchSize = 20

type CourseService interface {
	CreateCourse(ctx context.Context, input course.NewCourseInput) (*models.Course, error)
	GetCourse(ctx context.Context, ref string) (*models.Course, error)
	ListCourses(ctx context.Context) ([]models.Course, error)
	UpdateCourse(ctx context.Context, id int64, update models.CourseUpdate) (*models.Course, error)
	DeleteCourse(ctx context.Context, id int64) error
	SearchCourses(ctx context.Context, query string, size int) ([]models.Course, error)
}

type CourseHandler struct {
	log     logger.Log
	service CourseService
}

func NewCourseHandler(log logger.Log, service CourseService) *CourseHandler {
	return &CourseHandler{log: log, service: service}
}

type newCourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Level       string `json:"level"`
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req newCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateCourse(c.Request.Context(), course.NewCourseInput{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Category:    req.Category,
		Level:       req.Level,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.service.ListCourses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}
	c.JSON(http.StatusOK, courses)
}

// GetCourse accepts either a numeric id or a slug.
func (h *CourseHandler) GetCourse(c *gin.Context) {
	found, err := h.service.GetCourse(c.Request.Context(), c.Param("course_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("course_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	var update models.CourseUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.UpdateCourse(c.Request.Context(), id, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("course_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	if err := h.service.DeleteCourse(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CourseHandler) SearchCourses(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	size := defaultSearchSize
	if raw := c.Query("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid size"})
			return
		}
		size = parsed
	}

	courses, err := h.service.SearchCourses(c.Request.Context(), query, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}
