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

type LessonPostgres struct {
	db *pgxpool.Pool
}

func NewLessonPostgres(db *pgxpool.Pool) *LessonPostgres {
	return &LessonPostgres{db: db}
}

func (r *LessonPostgres) CreateLesson(ctx context.Context, lesson models.Lesson) (*models.Lesson, error) {
	now := time.Now().UTC()
	lesson.CreatedAt = now
	lesson.UpdatedAt = now

	query := `
		INSERT INTO lessons (
			course_id, title, content_type, content_locator, content_text,
			duration, sort_order, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		lesson.CourseID, lesson.Title, lesson.ContentType,
		lesson.ContentLocator, lesson.ContentText,
		lesson.Duration, lesson.SortOrder, lesson.CreatedAt, lesson.UpdatedAt,
	).Scan(&lesson.ID)
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

const lessonColumns = `id, course_id, title, content_type, content_locator, content_text, duration, sort_order, created_at, updated_at`

func scanLesson(row pgx.Row) (models.Lesson, error) {
	var l models.Lesson
	err := row.Scan(
		&l.ID, &l.CourseID, &l.Title, &l.ContentType,
		&l.ContentLocator, &l.ContentText,
		&l.Duration, &l.SortOrder, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Lesson{}, app_errors.ErrLessonNotFound
		}
		return models.Lesson{}, err
	}
	return l, nil
}

func (r *LessonPostgres) LessonByID(ctx context.Context, id int64) (models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1`
	return scanLesson(r.db.QueryRow(ctx, query, id))
}

// LessonsByCourse returns lessons in display order; sort_order ties are
// broken by id.
func (r *LessonPostgres) LessonsByCourse(ctx context.Context, courseID int64) ([]models.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		  FROM lessons
		 WHERE course_id = $1
		 ORDER BY sort_order, id
	`
	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		var l models.Lesson
		if err := rows.Scan(
			&l.ID, &l.CourseID, &l.Title, &l.ContentType,
			&l.ContentLocator, &l.ContentText,
			&l.Duration, &l.SortOrder, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

func (r *LessonPostgres) UpdateLesson(ctx context.Context, lesson models.Lesson) error {
	lesson.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE lessons
		   SET title = $2, content_type = $3, content_locator = $4, content_text = $5,
		       duration = $6, sort_order = $7, updated_at = $8
		 WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query,
		lesson.ID, lesson.Title, lesson.ContentType,
		lesson.ContentLocator, lesson.ContentText,
		lesson.Duration, lesson.SortOrder, lesson.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrLessonNotFound
	}
	return nil
}

func (r *LessonPostgres) DeleteLesson(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrLessonNotFound
	}
	return nil
}
