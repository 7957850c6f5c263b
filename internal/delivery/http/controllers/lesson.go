package controllers

import (
	"LearnForge/internal/models"
	"LearnForge/internal/service/lesson"
	"LearnForge/pkg/logger"
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type LessonService interface {
	CreateLesson(ctx context.Context, input lesson.CreateLessonInput) (*models.Lesson, error)
	GetLesson(ctx context.Context, id int64) (models.Lesson, error)
	ListLessons(ctx context.Context, courseID int64) ([]models.Lesson, error)
	UpdateLesson(ctx context.Context, id int64, update models.LessonUpdate) (models.Lesson, error)
	DeleteLesson(ctx context.Context, id int64) error
	LessonContent(ctx context.Context, id int64) (models.LessonContent, error)
}

type LessonHandler struct {
	log     logger.Log
	service LessonService
}

func NewLessonHandler(log logger.Log, service LessonService) *LessonHandler {
	return &LessonHandler{log: log, service: service}
}

type createLessonRequest struct {
	Title       string  `json:"title" binding:"required"`
	ContentType string  `json:"content_type"`
	Text        *string `json:"text"`
	ContentURL  *string `json:"content_url"`
	Duration    string  `json:"duration"`
	SortOrder   int     `json:"sort_order"`
}

// CreateLesson accepts JSON for text and link lessons, or a multipart form
// with a file payload for uploaded material.
func (h *LessonHandler) CreateLesson(c *gin.Context) {
	courseID, err := strconv.ParseInt(c.Param("course_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	var input lesson.CreateLessonInput
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		var closeFile func() error
		input, closeFile, err = h.multipartInput(c, courseID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if closeFile != nil {
			defer closeFile()
		}
	} else {
		var req createLessonRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		input = lesson.CreateLessonInput{
			CourseID:  courseID,
			Title:     req.Title,
			Hint:      models.ContentType(req.ContentType),
			Text:      req.Text,
			URL:       req.ContentURL,
			Duration:  req.Duration,
			SortOrder: req.SortOrder,
		}
	}

	created, err := h.service.CreateLesson(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *LessonHandler) multipartInput(c *gin.Context, courseID int64) (lesson.CreateLessonInput, func() error, error) {
	input := lesson.CreateLessonInput{
		CourseID: courseID,
		Title:    c.PostForm("title"),
		Hint:     models.ContentType(c.PostForm("content_type")),
		Duration: c.PostForm("duration"),
	}
	if raw := c.PostForm("sort_order"); raw != "" {
		order, err := strconv.Atoi(raw)
		if err != nil {
			return lesson.CreateLessonInput{}, nil, err
		}
		input.SortOrder = order
	}
	if text := c.PostForm("text"); text != "" {
		input.Text = &text
	}
	if contentURL := c.PostForm("content_url"); contentURL != "" {
		input.URL = &contentURL
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return input, nil, nil
	}
	file, err := fileHeader.Open()
	if err != nil {
		return lesson.CreateLessonInput{}, nil, err
	}
	input.File = &lesson.FileUpload{
		Filename: fileHeader.Filename,
		Reader:   file,
		Size:     fileHeader.Size,
		MIMEType: fileHeader.Header.Get("Content-Type"),
	}
	return input, file.Close, nil
}

func (h *LessonHandler) ListLessons(c *gin.Context) {
	courseID, err := strconv.ParseInt(c.Param("course_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	lessons, err := h.service.ListLessons(c.Request.Context(), courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	if lessons == nil {
		lessons = []models.Lesson{}
	}
	c.JSON(http.StatusOK, lessons)
}

func (h *LessonHandler) GetLesson(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("lesson_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson_id"})
		return
	}

	found, err := h.service.GetLesson(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *LessonHandler) UpdateLesson(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("lesson_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson_id"})
		return
	}

	var update models.LessonUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.UpdateLesson(c.Request.Context(), id, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *LessonHandler) DeleteLesson(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("lesson_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson_id"})
		return
	}

	if err := h.service.DeleteLesson(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LessonHandler) GetLessonContent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("lesson_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson_id"})
		return
	}

	content, err := h.service.LessonContent(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, content)
}
