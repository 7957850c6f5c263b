package lesson

import (
	"LearnForge/internal/app_errors"
	"LearnForge/internal/models"
	"LearnForge/pkg/logger"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCourseRepo struct {
	courses map[int64]*models.Course
}

func (f *fakeCourseRepo) CourseByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, app_errors.ErrCourseNotFound
	}
	return course, nil
}

type fakeLessonRepo struct {
	nextID  int64
	lessons map[int64]*models.Lesson
}

func newFakeLessonRepo() *fakeLessonRepo {
	return &fakeLessonRepo{nextID: 1, lessons: map[int64]*models.Lesson{}}
}

func (f *fakeLessonRepo) CreateLesson(_ context.Context, lesson models.Lesson) (*models.Lesson, error) {
	lesson.ID = f.nextID
	f.nextID++
	f.lessons[lesson.ID] = &lesson
	return &lesson, nil
}

func (f *fakeLessonRepo) LessonByID(_ context.Context, id int64) (models.Lesson, error) {
	lesson, ok := f.lessons[id]
	if !ok {
		return models.Lesson{}, app_errors.ErrLessonNotFound
	}
	return *lesson, nil
}

func (f *fakeLessonRepo) LessonsByCourse(_ context.Context, courseID int64) ([]models.Lesson, error) {
	var out []models.Lesson
	for _, lesson := range f.lessons {
		if lesson.CourseID == courseID {
			out = append(out, *lesson)
		}
	}
	return out, nil
}

func (f *fakeLessonRepo) UpdateLesson(_ context.Context, lesson models.Lesson) error {
	if _, ok := f.lessons[lesson.ID]; !ok {
		return app_errors.ErrLessonNotFound
	}
	f.lessons[lesson.ID] = &lesson
	return nil
}

func (f *fakeLessonRepo) DeleteLesson(_ context.Context, id int64) error {
	if _, ok := f.lessons[id]; !ok {
		return app_errors.ErrLessonNotFound
	}
	delete(f.lessons, id)
	return nil
}

type recordingStorage struct {
	uploaded   map[string]string
	deleted    []string
	uploadErr  error
	signErr    error
	signedBase string
}

func newRecordingStorage() *recordingStorage {
	return &recordingStorage{uploaded: map[string]string{}, signedBase: "https://minio.local/content/"}
}

func (r *recordingStorage) Upload(_ context.Context, key string, reader io.Reader, _ int64, _ string) (string, error) {
	if r.uploadErr != nil {
		return "", r.uploadErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	r.uploaded[key] = string(data)
	return key, nil
}

func (r *recordingStorage) Delete(_ context.Context, key string) error {
	r.deleted = append(r.deleted, key)
	return nil
}

func (r *recordingStorage) SignedURL(_ context.Context, key string) (string, error) {
	if r.signErr != nil {
		return "", r.signErr
	}
	return r.signedBase + key, nil
}

func newTestService(repo *fakeLessonRepo, storage *recordingStorage) *LessonService {
	courses := &fakeCourseRepo{courses: map[int64]*models.Course{
		1: {ID: 1, Slug: "go-basics", Title: "Go Basics"},
	}}
	return NewLessonService(logger.New("local"), courses, repo, storage)
}

func strPtr(s string) *string { return &s }

func TestCreateLessonWithFile(t *testing.T) {
	repo := newFakeLessonRepo()
	storage := newRecordingStorage()
	svc := newTestService(repo, storage)

	created, err := svc.CreateLesson(context.Background(), CreateLessonInput{
		CourseID: 1,
		Title:    "Week 1 slides",
		File: &FileUpload{
			Filename: "slides.pdf",
			Reader:   strings.NewReader("%PDF-1.7"),
			Size:     8,
			MIMEType: "application/pdf",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.ContentTypeDocument, created.ContentType)
	require.NotNil(t, created.ContentLocator)
	assert.True(t, strings.HasSuffix(*created.ContentLocator, ".pdf"))
	assert.Contains(t, storage.uploaded, *created.ContentLocator)
}

func TestCreateLessonClassification(t *testing.T) {
	cases := []struct {
		filename string
		want     models.ContentType
	}{
		{"clip.mp4", models.ContentTypeVideo},
		{"notes.docx", models.ContentTypeWord},
		{"outline.txt", models.ContentTypeText},
	}
	for _, tc := range cases {
		repo := newFakeLessonRepo()
		svc := newTestService(repo, newRecordingStorage())

		created, err := svc.CreateLesson(context.Background(), CreateLessonInput{
			CourseID: 1,
			Title:    tc.filename,
			File:     &FileUpload{Filename: tc.filename, Reader: strings.NewReader("x"), Size: 1},
		})
		require.NoError(t, err)
		assert.Equal(t, tc.want, created.ContentType, tc.filename)
	}
}

func TestCreateLessonUploadFailureIsFatal(t *testing.T) {
	repo := newFakeLessonRepo()
	storage := newRecordingStorage()
	storage.uploadErr = errors.New("bucket gone")
	svc := newTestService(repo, storage)

	_, err := svc.CreateLesson(context.Background(), CreateLessonInput{
		CourseID: 1,
		Title:    "Week 1 slides",
		File:     &FileUpload{Filename: "slides.pdf", Reader: strings.NewReader("x"), Size: 1},
	})
	assert.ErrorIs(t, err, app_errors.ErrStorageUpload)
	assert.Empty(t, repo.lessons, "no row may be created after a failed upload")
}

func TestCreateLessonWithURL(t *testing.T) {
	repo := newFakeLessonRepo()
	svc := newTestService(repo, newRecordingStorage())

	// Bare URL defaults to link.
	created, err := svc.CreateLesson(context.Background(), CreateLessonInput{
		CourseID: 1,
		Title:    "External reading",
		URL:      strPtr("https://example.com/article"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ContentTypeLink, created.ContentType)

	// A declared type may point at an external URL.
	created, err = svc.CreateLesson(context.Background(), CreateLessonInput{
		CourseID: 1,
		Title:    "Hosted video",
		Hint:     models.ContentTypeVideo,
		URL:      strPtr("https://cdn.example.com/intro.mp4"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ContentTypeVideo, created.ContentType)
}

func TestCreateLessonWithText(t *testing.T) {
	repo := newFakeLessonRepo()
	svc := newTestService(repo, newRecordingStorage())

	created, err := svc.CreateLesson(context.Background(), CreateLessonInput{
		CourseID: 1,
		Title:    "Syllabus",
		Text:     strPtr("Week 1: basics"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ContentTypeText, created.ContentType)
	require.NotNil(t, created.ContentText)
	assert.Nil(t, created.ContentLocator)
}

func TestCreateLessonValidation(t *testing.T) {
	svc := newTestService(newFakeLessonRepo(), newRecordingStorage())
	ctx := context.Background()

	_, err := svc.CreateLesson(ctx, CreateLessonInput{CourseID: 1, Title: "empty"})
	assert.ErrorIs(t, err, app_errors.ErrMissingContent)

	_, err = svc.CreateLesson(ctx, CreateLessonInput{
		CourseID: 1, Title: "both",
		Text: strPtr("inline"),
		URL:  strPtr("https://example.com"),
	})
	assert.ErrorIs(t, err, app_errors.ErrContentConflict)

	_, err = svc.CreateLesson(ctx, CreateLessonInput{
		CourseID: 1, Title: "text with wrong type",
		Hint: models.ContentTypeDocument,
		Text: strPtr("inline"),
	})
	assert.ErrorIs(t, err, app_errors.ErrMissingContent)

	_, err = svc.CreateLesson(ctx, CreateLessonInput{
		CourseID: 1, Title: "bad hint",
		Hint: models.ContentType("slideshow"),
		URL:  strPtr("https://example.com"),
	})
	assert.ErrorIs(t, err, app_errors.ErrInvalidContentType)

	_, err = svc.CreateLesson(ctx, CreateLessonInput{CourseID: 99, Title: "no course", Text: strPtr("x")})
	assert.ErrorIs(t, err, app_errors.ErrCourseNotFound)
}

func TestLessonContentSignsInternalKeys(t *testing.T) {
	repo := newFakeLessonRepo()
	storage := newRecordingStorage()
	svc := newTestService(repo, storage)

	created, err := svc.CreateLesson(context.Background(), CreateLessonInput{
		CourseID: 1,
		Title:    "Week 1 slides",
		File:     &FileUpload{Filename: "slides.pdf", Reader: strings.NewReader("x"), Size: 1},
	})
	require.NoError(t, err)

	content, err := svc.LessonContent(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, content.URL)
	assert.Equal(t, storage.signedBase+*created.ContentLocator, *content.URL)
}

func TestLessonContentExternalPassthrough(t *testing.T) {
	repo := newFakeLessonRepo()
	storage := newRecordingStorage()
	svc := newTestService(repo, storage)

	external := "https://example.com/article"
	created, err := svc.CreateLesson(context.Background(), CreateLessonInput{
		CourseID: 1,
		Title:    "External reading",
		URL:      &external,
	})
	require.NoError(t, err)

	content, err := svc.LessonContent(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, content.URL)
	assert.Equal(t, external, *content.URL)
}

func TestLessonContentSignFailure(t *testing.T) {
	repo := newFakeLessonRepo()
	storage := newRecordingStorage()
	svc := newTestService(repo, storage)

	created, err := svc.CreateLesson(context.Background(), CreateLessonInput{
		CourseID: 1,
		Title:    "Week 1 slides",
		File:     &FileUpload{Filename: "slides.pdf", Reader: strings.NewReader("x"), Size: 1},
	})
	require.NoError(t, err)

	storage.signErr = errors.New("clock skew")
	_, err = svc.LessonContent(context.Background(), created.ID)
	assert.Error(t, err)
}

func TestDeleteLessonRemovesBlob(t *testing.T) {
	repo := newFakeLessonRepo()
	storage := newRecordingStorage()
	svc := newTestService(repo, storage)

	created, err := svc.CreateLesson(context.Background(), CreateLessonInput{
		CourseID: 1,
		Title:    "Week 1 slides",
		File:     &FileUpload{Filename: "slides.pdf", Reader: strings.NewReader("x"), Size: 1},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteLesson(context.Background(), created.ID))
	assert.Equal(t, []string{*created.ContentLocator}, storage.deleted)

	_, err = svc.GetLesson(context.Background(), created.ID)
	assert.ErrorIs(t, err, app_errors.ErrLessonNotFound)
}

func TestDeleteLessonExternalLocatorSkipsStorage(t *testing.T) {
	repo := newFakeLessonRepo()
	storage := newRecordingStorage()
	svc := newTestService(repo, storage)

	created, err := svc.CreateLesson(context.Background(), CreateLessonInput{
		CourseID: 1,
		Title:    "External reading",
		URL:      strPtr("https://example.com/article"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteLesson(context.Background(), created.ID))
	assert.Empty(t, storage.deleted)
}

func TestStoreUpload(t *testing.T) {
	storage := newRecordingStorage()
	svc := newTestService(newFakeLessonRepo(), storage)

	key, contentType, err := svc.StoreUpload(context.Background(), FileUpload{
		Filename: "intro.mp4",
		Reader:   strings.NewReader("frames"),
		Size:     6,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ContentTypeVideo, contentType)
	assert.True(t, strings.HasSuffix(key, ".mp4"))
	assert.Contains(t, storage.uploaded, key)
}

func TestNewObjectKeyUnique(t *testing.T) {
	a := NewObjectKey("slides.PDF")
	b := NewObjectKey("slides.PDF")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, ".pdf"))
}
