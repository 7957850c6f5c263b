package course

import (
	"LearnForge/internal/app_errors"
	"LearnForge/internal/models"
	"LearnForge/pkg/logger"
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCourseRepo struct {
	nextID  int64
	courses map[int64]*models.Course
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{nextID: 1, courses: map[int64]*models.Course{}}
}

func (f *fakeCourseRepo) NewCourse(_ context.Context, course *models.Course) (int64, error) {
	course.ID = f.nextID
	f.nextID++
	stored := *course
	f.courses[course.ID] = &stored
	return course.ID, nil
}

func (f *fakeCourseRepo) CourseByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, app_errors.ErrCourseNotFound
	}
	copied := *course
	return &copied, nil
}

func (f *fakeCourseRepo) CourseBySlug(_ context.Context, slug string) (*models.Course, error) {
	for _, course := range f.courses {
		if course.Slug == slug {
			copied := *course
			return &copied, nil
		}
	}
	return nil, app_errors.ErrCourseNotFound
}

func (f *fakeCourseRepo) SlugExists(_ context.Context, slug string, excludeID int64) (bool, error) {
	for _, course := range f.courses {
		if course.Slug == slug && course.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCourseRepo) ListCourses(_ context.Context) ([]models.Course, error) {
	out := make([]models.Course, 0, len(f.courses))
	for _, course := range f.courses {
		out = append(out, *course)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCourseRepo) UpdateCourse(_ context.Context, course *models.Course) error {
	if _, ok := f.courses[course.ID]; !ok {
		return app_errors.ErrCourseNotFound
	}
	stored := *course
	f.courses[course.ID] = &stored
	return nil
}

func (f *fakeCourseRepo) DeleteCourseTree(_ context.Context, courseID int64) error {
	if _, ok := f.courses[courseID]; !ok {
		return app_errors.ErrCourseNotFound
	}
	delete(f.courses, courseID)
	return nil
}

type fakeLessonRepo struct {
	lessons map[int64][]models.Lesson
}

func (f *fakeLessonRepo) LessonsByCourse(_ context.Context, courseID int64) ([]models.Lesson, error) {
	return f.lessons[courseID], nil
}

type recordingBlobStorage struct {
	deleted []string
	failOn  string
}

func (r *recordingBlobStorage) Delete(_ context.Context, key string) error {
	r.deleted = append(r.deleted, key)
	if key == r.failOn {
		return errors.New("connection reset")
	}
	return nil
}

type recordingSearchRepo struct {
	indexed []int64
	removed []int64
	hits    []int64
}

func (r *recordingSearchRepo) Index(_ context.Context, course models.Course) error {
	r.indexed = append(r.indexed, course.ID)
	return nil
}

func (r *recordingSearchRepo) Delete(_ context.Context, id int64) error {
	r.removed = append(r.removed, id)
	return nil
}

func (r *recordingSearchRepo) Search(_ context.Context, _ string, _ int) ([]int64, error) {
	return r.hits, nil
}

type fixture struct {
	svc     *CourseService
	courses *fakeCourseRepo
	lessons *fakeLessonRepo
	blobs   *recordingBlobStorage
	search  *recordingSearchRepo
}

func newFixture() *fixture {
	f := &fixture{
		courses: newFakeCourseRepo(),
		lessons: &fakeLessonRepo{lessons: map[int64][]models.Lesson{}},
		blobs:   &recordingBlobStorage{},
		search:  &recordingSearchRepo{},
	}
	f.svc = NewCourseService(logger.New("local"), f.courses, f.lessons, f.blobs, f.search)
	return f
}

func TestCreateCourseDerivesSlug(t *testing.T) {
	f := newFixture()

	created, err := f.svc.CreateCourse(context.Background(), NewCourseInput{Title: "Intro to Go!"})
	require.NoError(t, err)
	assert.Equal(t, "intro-to-go", created.Slug)
	assert.NotZero(t, created.ID)
	assert.Equal(t, []int64{created.ID}, f.search.indexed)
}

func TestCreateCourseExplicitSlug(t *testing.T) {
	f := newFixture()

	created, err := f.svc.CreateCourse(context.Background(), NewCourseInput{Title: "Intro to Go", Slug: "golang-101"})
	require.NoError(t, err)
	assert.Equal(t, "golang-101", created.Slug)
}

func TestCreateCourseDuplicateSlug(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateCourse(context.Background(), NewCourseInput{Title: "Intro to Go"})
	require.NoError(t, err)

	// Same derived slug, no auto-suffixing.
	_, err = f.svc.CreateCourse(context.Background(), NewCourseInput{Title: "INTRO TO GO"})
	assert.ErrorIs(t, err, app_errors.ErrSlugTaken)
}

func TestCreateCourseUnsluggableTitle(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateCourse(context.Background(), NewCourseInput{Title: "!!!"})
	assert.ErrorIs(t, err, app_errors.ErrEmptySlug)
}

func TestGetCourseDualMode(t *testing.T) {
	f := newFixture()

	created, err := f.svc.CreateCourse(context.Background(), NewCourseInput{Title: "Intro to Go"})
	require.NoError(t, err)

	byID, err := f.svc.GetCourse(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)

	bySlug, err := f.svc.GetCourse(context.Background(), "intro-to-go")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	_, err = f.svc.GetCourse(context.Background(), "no-such-course")
	assert.ErrorIs(t, err, app_errors.ErrCourseNotFound)
}

func TestUpdateCourseSlugCollision(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateCourse(context.Background(), NewCourseInput{Title: "First"})
	require.NoError(t, err)
	second, err := f.svc.CreateCourse(context.Background(), NewCourseInput{Title: "Second"})
	require.NoError(t, err)

	taken := "first"
	_, err = f.svc.UpdateCourse(context.Background(), second.ID, models.CourseUpdate{Slug: &taken})
	assert.ErrorIs(t, err, app_errors.ErrSlugTaken)

	// A course may keep its own slug on update.
	keep := "second"
	updated, err := f.svc.UpdateCourse(context.Background(), second.ID, models.CourseUpdate{Slug: &keep})
	require.NoError(t, err)
	assert.Equal(t, "second", updated.Slug)
}

func TestDeleteCourseCleansBlobs(t *testing.T) {
	f := newFixture()

	created, err := f.svc.CreateCourse(context.Background(), NewCourseInput{Title: "Intro to Go"})
	require.NoError(t, err)

	internalKey := "abc123.pdf"
	externalURL := "https://example.com/video"
	f.lessons.lessons[created.ID] = []models.Lesson{
		{ID: 1, CourseID: created.ID, ContentType: models.ContentTypeDocument, ContentLocator: &internalKey},
		{ID: 2, CourseID: created.ID, ContentType: models.ContentTypeLink, ContentLocator: &externalURL},
		{ID: 3, CourseID: created.ID, ContentType: models.ContentTypeText},
	}

	require.NoError(t, f.svc.DeleteCourse(context.Background(), created.ID))

	// Only the internally stored blob is touched.
	assert.Equal(t, []string{internalKey}, f.blobs.deleted)
	assert.Equal(t, []int64{created.ID}, f.search.removed)

	_, err = f.svc.GetCourse(context.Background(), "intro-to-go")
	assert.ErrorIs(t, err, app_errors.ErrCourseNotFound)
}

func TestDeleteCourseBlobFailureIsNotFatal(t *testing.T) {
	f := newFixture()

	created, err := f.svc.CreateCourse(context.Background(), NewCourseInput{Title: "Intro to Go"})
	require.NoError(t, err)

	key := "stuck.pdf"
	f.blobs.failOn = key
	f.lessons.lessons[created.ID] = []models.Lesson{
		{ID: 1, CourseID: created.ID, ContentType: models.ContentTypeDocument, ContentLocator: &key},
	}

	require.NoError(t, f.svc.DeleteCourse(context.Background(), created.ID))

	_, err = f.courses.CourseByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, app_errors.ErrCourseNotFound)
}

func TestDeleteCourseUnknown(t *testing.T) {
	f := newFixture()

	err := f.svc.DeleteCourse(context.Background(), 42)
	assert.ErrorIs(t, err, app_errors.ErrCourseNotFound)
}

func TestSearchCoursesSkipsVanishedRows(t *testing.T) {
	f := newFixture()

	created, err := f.svc.CreateCourse(context.Background(), NewCourseInput{Title: "Intro to Go"})
	require.NoError(t, err)

	f.search.hits = []int64{created.ID, 999}

	found, err := f.svc.SearchCourses(context.Background(), "go", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, created.ID, found[0].ID)
}
