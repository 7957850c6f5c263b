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

type QuizPostgres struct {
	db *pgxpool.Pool
}

func NewQuizPostgres(db *pgxpool.Pool) *QuizPostgres {
	return &QuizPostgres{db: db}
}

// CreateQuizTree inserts the quiz with all its questions and choices in a
// single transaction, so a failed insert leaves no partial quiz behind.
func (r *QuizPostgres) CreateQuizTree(ctx context.Context, quiz models.Quiz) (*models.Quiz, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	built, err := insertQuizTree(ctx, tx, quiz)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return built, nil
}

// ReplaceQuizTree deletes every quiz the course owns and builds the new
// tree inside the same transaction. The result is a full overwrite: old
// question and choice rows are gone once this commits.
func (r *QuizPostgres) ReplaceQuizTree(ctx context.Context, quiz models.Quiz) (*models.Quiz, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := deleteQuizzesByCourse(ctx, tx, quiz.CourseID); err != nil {
		return nil, err
	}

	built, err := insertQuizTree(ctx, tx, quiz)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return built, nil
}

func insertQuizTree(ctx context.Context, tx pgx.Tx, quiz models.Quiz) (*models.Quiz, error) {
	now := time.Now().UTC()
	quiz.CreatedAt = now
	quiz.UpdatedAt = now

	quizQuery := `
		INSERT INTO quizzes (course_id, title, description, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := tx.QueryRow(ctx, quizQuery,
		quiz.CourseID, quiz.Title, quiz.Description, quiz.SortOrder,
		quiz.CreatedAt, quiz.UpdatedAt,
	).Scan(&quiz.ID)
	if err != nil {
		return nil, err
	}

	questionQuery := `INSERT INTO questions (quiz_id, text, points) VALUES ($1, $2, $3) RETURNING id`
	choiceQuery := `INSERT INTO choices (question_id, text, is_correct) VALUES ($1, $2, $3) RETURNING id`

	for qi := range quiz.Questions {
		question := &quiz.Questions[qi]
		question.QuizID = quiz.ID
		if err := tx.QueryRow(ctx, questionQuery, quiz.ID, question.Text, question.Points).Scan(&question.ID); err != nil {
			return nil, err
		}
		for ci := range question.Choices {
			choice := &question.Choices[ci]
			choice.QuestionID = question.ID
			if err := tx.QueryRow(ctx, choiceQuery, question.ID, choice.Text, choice.IsCorrect).Scan(&choice.ID); err != nil {
				return nil, err
			}
		}
	}
	return &quiz, nil
}

func deleteQuizzesByCourse(ctx context.Context, tx pgx.Tx, courseID int64) error {
	deleteChoices := `
		DELETE FROM choices
		 WHERE question_id IN (
			SELECT q.id FROM questions q
			  JOIN quizzes z ON z.id = q.quiz_id
			 WHERE z.course_id = $1
		 )
	`
	if _, err := tx.Exec(ctx, deleteChoices, courseID); err != nil {
		return err
	}
	deleteQuestions := `
		DELETE FROM questions
		 WHERE quiz_id IN (SELECT id FROM quizzes WHERE course_id = $1)
	`
	if _, err := tx.Exec(ctx, deleteQuestions, courseID); err != nil {
		return err
	}
	_, err := tx.Exec(ctx, `DELETE FROM quizzes WHERE course_id = $1`, courseID)
	return err
}

const quizColumns = `id, course_id, title, description, sort_order, created_at, updated_at`

func (r *QuizPostgres) QuizByID(ctx context.Context, quizID int64) (*models.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE id = $1`
	return r.loadQuiz(ctx, r.db.QueryRow(ctx, query, quizID))
}

// QuizByCourse returns the course's active quiz. With replace semantics a
// course holds at most one, but ordering keeps the result stable either way.
func (r *QuizPostgres) QuizByCourse(ctx context.Context, courseID int64) (*models.Quiz, error) {
	query := `
		SELECT ` + quizColumns + `
		  FROM quizzes
		 WHERE course_id = $1
		 ORDER BY sort_order, id
		 LIMIT 1
	`
	return r.loadQuiz(ctx, r.db.QueryRow(ctx, query, courseID))
}

func (r *QuizPostgres) loadQuiz(ctx context.Context, row pgx.Row) (*models.Quiz, error) {
	quiz := &models.Quiz{}
	err := row.Scan(
		&quiz.ID, &quiz.CourseID, &quiz.Title, &quiz.Description,
		&quiz.SortOrder, &quiz.CreatedAt, &quiz.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrQuizNotFound
		}
		return nil, err
	}

	questionsQuery := `SELECT id, quiz_id, text, points FROM questions WHERE quiz_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, questionsQuery, quiz.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[int64]*models.Question)
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Text, &q.Points); err != nil {
			return nil, err
		}
		quiz.Questions = append(quiz.Questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range quiz.Questions {
		byID[quiz.Questions[i].ID] = &quiz.Questions[i]
	}

	choicesQuery := `
		SELECT c.id, c.question_id, c.text, c.is_correct
		  FROM choices c
		  JOIN questions q ON q.id = c.question_id
		 WHERE q.quiz_id = $1
		 ORDER BY c.id
	`
	choiceRows, err := r.db.Query(ctx, choicesQuery, quiz.ID)
	if err != nil {
		return nil, err
	}
	defer choiceRows.Close()

	for choiceRows.Next() {
		var c models.Choice
		if err := choiceRows.Scan(&c.ID, &c.QuestionID, &c.Text, &c.IsCorrect); err != nil {
			return nil, err
		}
		if q, ok := byID[c.QuestionID]; ok {
			q.Choices = append(q.Choices, c)
		}
	}
	return quiz, choiceRows.Err()
}
