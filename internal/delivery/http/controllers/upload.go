package controllers

import (
	"LearnForge/internal/models"
	"LearnForge/internal/service/lesson"
	"LearnForge/pkg/logger"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type UploadService interface {
	StoreUpload(ctx context.Context, file lesson.FileUpload) (string, models.ContentType, error)
}

type UploadHandler struct {
	log     logger.Log
	service UploadService
}

func NewUploadHandler(log logger.Log, service UploadService) *UploadHandler {
	return &UploadHandler{log: log, service: service}
}

// Upload stores a standalone file and returns the minted blob key; the
// key can then be referenced from lesson payloads.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot open uploaded file"})
		return
	}
	defer file.Close()

	key, contentType, err := h.service.StoreUpload(c.Request.Context(), lesson.FileUpload{
		Filename: fileHeader.Filename,
		Reader:   file,
		Size:     fileHeader.Size,
		MIMEType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"key":           key,
		"content_type":  contentType,
		"original_name": fileHeader.Filename,
	})
}
