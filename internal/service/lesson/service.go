package lesson

import (
	"LearnForge/internal/app_errors"
	"LearnForge/internal/models"
	"LearnForge/pkg/logger"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type courseRepo interface {
	CourseByID(ctx context.Context, id int64) (*models.Course, error)
}

type lessonRepo interface {
	CreateLesson(ctx context.Context, lesson models.Lesson) (*models.Lesson, error)
	LessonByID(ctx context.Context, id int64) (models.Lesson, error)
	LessonsByCourse(ctx context.Context, courseID int64) ([]models.Lesson, error)
	UpdateLesson(ctx context.Context, lesson models.Lesson) error
	DeleteLesson(ctx context.Context, id int64) error
}

type contentStorage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	SignedURL(ctx context.Context, key string) (string, error)
}

type LessonService struct {
	log        logger.Log
	courseRepo courseRepo
	lessonRepo lessonRepo
	storage    contentStorage
}

func NewLessonService(log logger.Log, c courseRepo, l lessonRepo, storage contentStorage) *LessonService {
	return &LessonService{
		log:        log,
		courseRepo: c,
		lessonRepo: l,
		storage:    storage,
	}
}

// FileUpload is an inbound file payload.
type FileUpload struct {
	Filename string
	Reader   io.Reader
	Size     int64
	MIMEType string
}

type CreateLessonInput struct {
	CourseID  int64
	Title     string
	Hint      models.ContentType
	File      *FileUpload
	Text      *string
	URL       *string
	Duration  string
	SortOrder int
}

// CreateLesson validates the content combination, classifies and stores an
// uploaded file when present, and records exactly one of locator or inline
// text. An upload failure aborts the whole create.
func (s *LessonService) CreateLesson(ctx context.Context, input CreateLessonInput) (*models.Lesson, error) {
	if _, err := s.courseRepo.CourseByID(ctx, input.CourseID); err != nil {
		return nil, err
	}

	lesson := models.Lesson{
		CourseID:  input.CourseID,
		Title:     input.Title,
		Duration:  input.Duration,
		SortOrder: input.SortOrder,
	}

	switch {
	case input.File != nil:
		if input.Text != nil {
			return nil, app_errors.ErrContentConflict
		}
		lesson.ContentType = models.ClassifyContent(input.File.Filename, input.Hint)
		key := NewObjectKey(input.File.Filename)
		if _, err := s.storage.Upload(ctx, key, input.File.Reader, input.File.Size, input.File.MIMEType); err != nil {
			return nil, fmt.Errorf("%w: %v", app_errors.ErrStorageUpload, err)
		}
		lesson.ContentLocator = &key

	case input.URL != nil:
		// An external URL never touches blob storage. A declared
		// document/video/word type may point at one; without a
		// declared type the lesson is a plain link.
		if input.Text != nil {
			return nil, app_errors.ErrContentConflict
		}
		contentType := input.Hint
		if contentType == "" {
			contentType = models.ContentTypeLink
		}
		if !contentType.Valid() {
			return nil, app_errors.ErrInvalidContentType
		}
		if contentType == models.ContentTypeText {
			return nil, app_errors.ErrContentConflict
		}
		lesson.ContentType = contentType
		lesson.ContentLocator = input.URL

	case input.Text != nil:
		contentType := input.Hint
		if contentType == "" {
			contentType = models.ContentTypeText
		}
		if !contentType.Valid() {
			return nil, app_errors.ErrInvalidContentType
		}
		if contentType != models.ContentTypeText {
			// document/video/word need a file or URL, link needs a URL.
			return nil, app_errors.ErrMissingContent
		}
		lesson.ContentType = contentType
		lesson.ContentText = input.Text

	default:
		return nil, app_errors.ErrMissingContent
	}

	return s.lessonRepo.CreateLesson(ctx, lesson)
}

func (s *LessonService) GetLesson(ctx context.Context, id int64) (models.Lesson, error) {
	return s.lessonRepo.LessonByID(ctx, id)
}

func (s *LessonService) ListLessons(ctx context.Context, courseID int64) ([]models.Lesson, error) {
	if _, err := s.courseRepo.CourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.lessonRepo.LessonsByCourse(ctx, courseID)
}

func (s *LessonService) UpdateLesson(ctx context.Context, id int64, update models.LessonUpdate) (models.Lesson, error) {
	lesson, err := s.lessonRepo.LessonByID(ctx, id)
	if err != nil {
		return models.Lesson{}, err
	}
	if update.Title != nil {
		lesson.Title = *update.Title
	}
	if update.Duration != nil {
		lesson.Duration = *update.Duration
	}
	if update.SortOrder != nil {
		lesson.SortOrder = *update.SortOrder
	}
	if err := s.lessonRepo.UpdateLesson(ctx, lesson); err != nil {
		return models.Lesson{}, err
	}
	return lesson, nil
}

// DeleteLesson removes the stored blob first, best-effort: a storage
// failure is logged and the row is deleted regardless.
func (s *LessonService) DeleteLesson(ctx context.Context, id int64) error {
	lesson, err := s.lessonRepo.LessonByID(ctx, id)
	if err != nil {
		return err
	}
	if lesson.ContentLocator != nil && !models.IsExternalLocator(*lesson.ContentLocator) {
		if err := s.storage.Delete(ctx, *lesson.ContentLocator); err != nil {
			s.log.ErrorErr("failed to delete lesson blob", err, "key", *lesson.ContentLocator)
		}
	}
	return s.lessonRepo.DeleteLesson(ctx, id)
}

// LessonContent builds the serving view. Internal keys get a freshly
// signed URL on every read; external URLs pass through untouched.
func (s *LessonService) LessonContent(ctx context.Context, id int64) (models.LessonContent, error) {
	lesson, err := s.lessonRepo.LessonByID(ctx, id)
	if err != nil {
		return models.LessonContent{}, err
	}

	content := models.LessonContent{
		LessonID:    lesson.ID,
		ContentType: lesson.ContentType,
		Text:        lesson.ContentText,
	}
	if lesson.ContentLocator != nil {
		if models.IsExternalLocator(*lesson.ContentLocator) {
			content.URL = lesson.ContentLocator
		} else {
			url, err := s.storage.SignedURL(ctx, *lesson.ContentLocator)
			if err != nil {
				return models.LessonContent{}, err
			}
			content.URL = &url
		}
	}
	return content, nil
}

// StoreUpload puts a standalone file into blob storage under a minted key
// and reports the classified content type.
func (s *LessonService) StoreUpload(ctx context.Context, file FileUpload) (string, models.ContentType, error) {
	key := NewObjectKey(file.Filename)
	if _, err := s.storage.Upload(ctx, key, file.Reader, file.Size, file.MIMEType); err != nil {
		return "", "", fmt.Errorf("%w: %v", app_errors.ErrStorageUpload, err)
	}
	return key, models.ClassifyContent(file.Filename, ""), nil
}

// NewObjectKey mints a globally unique blob key: random token plus the
// original extension, so stored objects keep a usable suffix.
func NewObjectKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return uuid.NewString() + ext
}
