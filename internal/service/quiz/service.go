package quiz

import (
	"LearnForge/internal/app_errors"
	"LearnForge/internal/models"
	"LearnForge/pkg/logger"
	"context"
)

type courseRepo interface {
	CourseByID(ctx context.Context, id int64) (*models.Course, error)
}

type quizRepo interface {
	CreateQuizTree(ctx context.Context, quiz models.Quiz) (*models.Quiz, error)
	ReplaceQuizTree(ctx context.Context, quiz models.Quiz) (*models.Quiz, error)
	QuizByID(ctx context.Context, quizID int64) (*models.Quiz, error)
	QuizByCourse(ctx context.Context, courseID int64) (*models.Quiz, error)
}

type QuizService struct {
	log        logger.Log
	courseRepo courseRepo
	quizRepo   quizRepo
}

func NewQuizService(log logger.Log, c courseRepo, q quizRepo) *QuizService {
	return &QuizService{
		log:        log,
		courseRepo: c,
		quizRepo:   q,
	}
}

type ChoiceInput struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type QuestionInput struct {
	Text    string        `json:"text"`
	Points  int           `json:"points"`
	Choices []ChoiceInput `json:"choices"`
}

type QuizInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	SortOrder   int             `json:"sort_order"`
	Questions   []QuestionInput `json:"questions"`
}

// CreateQuiz builds the whole quiz tree in authored order as one atomic
// unit; nothing persists if any insert fails.
func (s *QuizService) CreateQuiz(ctx context.Context, courseID int64, input QuizInput) (*models.Quiz, error) {
	quiz, err := s.buildTree(ctx, courseID, input)
	if err != nil {
		return nil, err
	}
	return s.quizRepo.CreateQuizTree(ctx, *quiz)
}

// ReplaceQuiz overwrites the course's quiz wholesale: every existing quiz
// under the course, with its questions and choices, is dropped and the new
// tree built in the same transaction. Never a partial merge.
func (s *QuizService) ReplaceQuiz(ctx context.Context, courseID int64, input QuizInput) (*models.Quiz, error) {
	quiz, err := s.buildTree(ctx, courseID, input)
	if err != nil {
		return nil, err
	}
	return s.quizRepo.ReplaceQuizTree(ctx, *quiz)
}

func (s *QuizService) buildTree(ctx context.Context, courseID int64, input QuizInput) (*models.Quiz, error) {
	if _, err := s.courseRepo.CourseByID(ctx, courseID); err != nil {
		return nil, err
	}

	quiz := &models.Quiz{
		CourseID:    courseID,
		Title:       input.Title,
		Description: input.Description,
		SortOrder:   input.SortOrder,
		Questions:   make([]models.Question, 0, len(input.Questions)),
	}
	for _, q := range input.Questions {
		if q.Text == "" {
			return nil, app_errors.ErrEmptyQuestionText
		}
		if q.Points < 1 {
			return nil, app_errors.ErrInvalidPoints
		}
		question := models.Question{
			Text:    q.Text,
			Points:  q.Points,
			Choices: make([]models.Choice, 0, len(q.Choices)),
		}
		for _, c := range q.Choices {
			question.Choices = append(question.Choices, models.Choice{
				Text:      c.Text,
				IsCorrect: c.IsCorrect,
			})
		}
		quiz.Questions = append(quiz.Questions, question)
	}
	return quiz, nil
}

// QuizForLearner returns the course's quiz stripped of correctness flags.
func (s *QuizService) QuizForLearner(ctx context.Context, courseID int64) (models.QuizView, error) {
	if _, err := s.courseRepo.CourseByID(ctx, courseID); err != nil {
		return models.QuizView{}, err
	}
	quiz, err := s.quizRepo.QuizByCourse(ctx, courseID)
	if err != nil {
		return models.QuizView{}, err
	}
	return quiz.View(), nil
}

// QuizForEditor returns the full quiz tree, is_correct included.
func (s *QuizService) QuizForEditor(ctx context.Context, courseID int64) (*models.Quiz, error) {
	if _, err := s.courseRepo.CourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.quizRepo.QuizByCourse(ctx, courseID)
}
