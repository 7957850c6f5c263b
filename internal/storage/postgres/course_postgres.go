package postgres

import (
	"LearnForge/internal/app_errors"
	"LearnForge/internal/models"
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CoursePostgres struct {
	db *pgxpool.Pool
}

func NewCoursePostgres(db *pgxpool.Pool) *CoursePostgres {
	return &CoursePostgres{db: db}
}

func (r *CoursePostgres) NewCourse(ctx context.Context, course *models.Course) (int64, error) {
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now
	query := `
		INSERT INTO courses (slug, title, description, category, level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRow(
		ctx,
		query,
		course.Slug,
		course.Title,
		course.Description,
		course.Category,
		course.Level,
		course.CreatedAt,
		course.UpdatedAt,
	).Scan(&course.ID)
	if err != nil {
		if pgErr := UnwrapPgError(err); pgErr != nil && pgErr.Code == uniqueViolation {
			return 0, app_errors.ErrSlugTaken
		}
		return 0, err
	}
	return course.ID, nil
}

const courseColumns = `id, slug, title, description, category, level, created_at, updated_at`

func scanCourse(row pgx.Row) (*models.Course, error) {
	course := &models.Course{}
	err := row.Scan(
		&course.ID,
		&course.Slug,
		&course.Title,
		&course.Description,
		&course.Category,
		&course.Level,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (r *CoursePostgres) CourseByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	return scanCourse(r.db.QueryRow(ctx, query, id))
}

func (r *CoursePostgres) CourseBySlug(ctx context.Context, slug string) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE slug = $1`
	return scanCourse(r.db.QueryRow(ctx, query, slug))
}

// SlugExists reports whether another course already owns the slug.
// excludeID skips the course being updated; pass 0 on create.
func (r *CoursePostgres) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM courses WHERE slug = $1 AND id <> $2)`
	if err := r.db.QueryRow(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *CoursePostgres) ListCourses(ctx context.Context) ([]models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(
			&c.ID, &c.Slug, &c.Title, &c.Description, &c.Category, &c.Level,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (r *CoursePostgres) UpdateCourse(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE courses
		   SET slug = $2, title = $3, description = $4, category = $5, level = $6, updated_at = $7
		 WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query,
		course.ID, course.Slug, course.Title, course.Description,
		course.Category, course.Level, course.UpdatedAt,
	)
	if err != nil {
		if pgErr := UnwrapPgError(err); pgErr != nil && pgErr.Code == uniqueViolation {
			return app_errors.ErrSlugTaken
		}
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrCourseNotFound
	}
	return nil
}

// DeleteCourseTree removes a course and every descendant row in one
// transaction, deepest entities first so no orphan survives a partial
// failure. Blob cleanup happens before this call, in the service.
func (r *CoursePostgres) DeleteCourseTree(ctx context.Context, courseID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	deleteChoices := `
		DELETE FROM choices
		 WHERE question_id IN (
			SELECT q.id FROM questions q
			  JOIN quizzes z ON z.id = q.quiz_id
			 WHERE z.course_id = $1
		 )
	`
	if _, err = tx.Exec(ctx, deleteChoices, courseID); err != nil {
		return err
	}

	deleteQuestions := `
		DELETE FROM questions
		 WHERE quiz_id IN (SELECT id FROM quizzes WHERE course_id = $1)
	`
	if _, err = tx.Exec(ctx, deleteQuestions, courseID); err != nil {
		return err
	}

	if _, err = tx.Exec(ctx, `DELETE FROM quizzes WHERE course_id = $1`, courseID); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, `DELETE FROM lessons WHERE course_id = $1`, courseID); err != nil {
		return err
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM courses WHERE id = $1`, courseID)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrCourseNotFound
	}

	return tx.Commit(ctx)
}
