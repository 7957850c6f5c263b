package course

import (
	"LearnForge/internal/app_errors"
	"LearnForge/internal/models"
	"LearnForge/pkg/logger"
	"LearnForge/pkg/slug"
	"context"
	"strconv"
)

type courseRepo interface {
	NewCourse(ctx context.Context, course *models.Course) (int64, error)
	CourseByID(ctx context.Context, id int64) (*models.Course, error)
	CourseBySlug(ctx context.Context, slug string) (*models.Course, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	ListCourses(ctx context.Context) ([]models.Course, error)
	UpdateCourse(ctx context.Context, course *models.Course) error
	DeleteCourseTree(ctx context.Context, courseID int64) error
}

type lessonRepo interface {
	LessonsByCourse(ctx context.Context, courseID int64) ([]models.Lesson, error)
}

type blobStorage interface {
	Delete(ctx context.Context, key string) error
}

type searchRepo interface {
	Index(ctx context.Context, course models.Course) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string, size int) ([]int64, error)
}

type CourseService struct {
	log         logger.Log
	courseRepo  courseRepo
	lessonRepo  lessonRepo
	blobStorage blobStorage
	searchRepo  searchRepo
}

func NewCourseService(log logger.Log, c courseRepo, l lessonRepo, b blobStorage, s searchRepo) *CourseService {
	return &CourseService{
		log:         log,
		courseRepo:  c,
		lessonRepo:  l,
		blobStorage: b,
		searchRepo:  s,
	}
}

type NewCourseInput struct {
	Title       string
	Slug        string
	Description string
	Category    string
	Level       string
}

// CreateCourse derives the slug from the title when none is supplied.
// A slug collision is a hard error; there is no auto-suffixing.
func (s *CourseService) CreateCourse(ctx context.Context, input NewCourseInput) (*models.Course, error) {
	courseSlug := input.Slug
	if courseSlug == "" {
		courseSlug = slug.Make(input.Title)
	}
	if courseSlug == "" {
		return nil, app_errors.ErrEmptySlug
	}

	taken, err := s.courseRepo.SlugExists(ctx, courseSlug, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, app_errors.ErrSlugTaken
	}

	course := &models.Course{
		Slug:        courseSlug,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Level:       input.Level,
	}
	if _, err := s.courseRepo.NewCourse(ctx, course); err != nil {
		return nil, err
	}

	if err := s.searchRepo.Index(ctx, *course); err != nil {
		s.log.ErrorErr("failed to index course", err)
	}
	return course, nil
}

// GetCourse resolves a reference in dual mode: an all-digit reference is
// treated as an id, anything else as a slug.
func (s *CourseService) GetCourse(ctx context.Context, ref string) (*models.Course, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return s.courseRepo.CourseByID(ctx, id)
	}
	return s.courseRepo.CourseBySlug(ctx, ref)
}

func (s *CourseService) ListCourses(ctx context.Context) ([]models.Course, error) {
	return s.courseRepo.ListCourses(ctx)
}

func (s *CourseService) UpdateCourse(ctx context.Context, id int64, update models.CourseUpdate) (*models.Course, error) {
	course, err := s.courseRepo.CourseByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Slug != nil {
		if *update.Slug == "" {
			return nil, app_errors.ErrEmptySlug
		}
		taken, err := s.courseRepo.SlugExists(ctx, *update.Slug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, app_errors.ErrSlugTaken
		}
		course.Slug = *update.Slug
	}
	if update.Title != nil {
		course.Title = *update.Title
	}
	if update.Description != nil {
		course.Description = *update.Description
	}
	if update.Category != nil {
		course.Category = *update.Category
	}
	if update.Level != nil {
		course.Level = *update.Level
	}

	if err := s.courseRepo.UpdateCourse(ctx, course); err != nil {
		return nil, err
	}

	if err := s.searchRepo.Index(ctx, *course); err != nil {
		s.log.ErrorErr("failed to re-index course", err)
	}
	return course, nil
}

// DeleteCourse removes the course subtree. Blob cleanup for every lesson
// with an internal locator runs first and is best-effort: a storage
// failure is logged, never allowed to block the row deletes.
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	if _, err := s.courseRepo.CourseByID(ctx, id); err != nil {
		return err
	}

	lessons, err := s.lessonRepo.LessonsByCourse(ctx, id)
	if err != nil {
		return err
	}
	for _, lesson := range lessons {
		if lesson.ContentLocator == nil || models.IsExternalLocator(*lesson.ContentLocator) {
			continue
		}
		if err := s.blobStorage.Delete(ctx, *lesson.ContentLocator); err != nil {
			s.log.ErrorErr("failed to delete lesson blob", err, "key", *lesson.ContentLocator)
		}
	}

	if err := s.courseRepo.DeleteCourseTree(ctx, id); err != nil {
		return err
	}

	if err := s.searchRepo.Delete(ctx, id); err != nil {
		s.log.ErrorErr("failed to remove course from search index", err)
	}
	return nil
}

// SearchCourses resolves index hits back to course rows; a hit whose row
// vanished between indexing and lookup is skipped.
func (s *CourseService) SearchCourses(ctx context.Context, query string, size int) ([]models.Course, error) {
	ids, err := s.searchRepo.Search(ctx, query, size)
	if err != nil {
		return nil, err
	}

	courses := make([]models.Course, 0, len(ids))
	for _, id := range ids {
		course, err := s.courseRepo.CourseByID(ctx, id)
		if err != nil {
			s.log.ErrorErr("search: failed to load course by id", err)
			continue
		}
		courses = append(courses, *course)
	}
	return courses, nil
}
