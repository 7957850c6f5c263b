package controllers

import (
	"LearnForge/internal/models"
	"LearnForge/internal/service/quiz"
	"LearnForge/pkg/logger"
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type QuizService interface {
	CreateQuiz(ctx context.Context, courseID int64, input quiz.QuizInput) (*models.Quiz, error)
	ReplaceQuiz(ctx context.Context, courseID int64, input quiz.QuizInput) (*models.Quiz, error)
	QuizForLearner(ctx context.Context, courseID int64) (models.QuizView, error)
	QuizForEditor(ctx context.Context, courseID int64) (*models.Quiz, error)
	Grade(ctx context.Context, quizID int64, answers []models.Answer) (models.GradeResult, error)
}

type QuizHandler struct {
	log     logger.Log
	service QuizService
}

func NewQuizHandler(log logger.Log, service QuizService) *QuizHandler {
	return &QuizHandler{log: log, service: service}
}

func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	courseID, err := strconv.ParseInt(c.Param("course_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	var input quiz.QuizInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateQuiz(c.Request.Context(), courseID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ReplaceQuiz is a destructive overwrite of the course's quiz tree.
func (h *QuizHandler) ReplaceQuiz(c *gin.Context) {
	courseID, err := strconv.ParseInt(c.Param("course_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	var input quiz.QuizInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	replaced, err := h.service.ReplaceQuiz(c.Request.Context(), courseID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, replaced)
}

// GetQuiz serves the learner view, which never carries is_correct.
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	courseID, err := strconv.ParseInt(c.Param("course_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	view, err := h.service.QuizForLearner(c.Request.Context(), courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *QuizHandler) GetQuizForEditor(c *gin.Context) {
	courseID, err := strconv.ParseInt(c.Param("course_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	full, err := h.service.QuizForEditor(c.Request.Context(), courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, full)
}

type submissionRequest struct {
	Answers []models.Answer `json:"answers"`
}

func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	quizID, err := strconv.ParseInt(c.Param("quiz_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quiz_id"})
		return
	}

	var req submissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Grade(c.Request.Context(), quizID, req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
