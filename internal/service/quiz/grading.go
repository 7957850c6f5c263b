package quiz

import (
	"LearnForge/internal/models"
	"context"
)

const passThreshold = 0.5

// Grade scores a submission against the quiz tree. Answers referencing
// questions outside the quiz are ignored. When a question is answered more
// than once, only the first answer counts; later duplicates are dropped
// rather than scored additively. Grading never mutates the quiz.
func (s *QuizService) Grade(ctx context.Context, quizID int64, answers []models.Answer) (models.GradeResult, error) {
	quiz, err := s.quizRepo.QuizByID(ctx, quizID)
	if err != nil {
		return models.GradeResult{}, err
	}

	questions := make(map[int64]*models.Question, len(quiz.Questions))
	totalPoints := 0
	for i := range quiz.Questions {
		questions[quiz.Questions[i].ID] = &quiz.Questions[i]
		totalPoints += quiz.Questions[i].Points
	}

	result := models.GradeResult{
		TotalPoints: totalPoints,
		Details:     make([]models.AnswerDetail, 0, len(answers)),
	}

	answered := make(map[int64]bool, len(answers))
	for _, answer := range answers {
		question, ok := questions[answer.QuestionID]
		if !ok {
			continue
		}
		if answered[answer.QuestionID] {
			continue
		}
		answered[answer.QuestionID] = true

		correct := false
		for _, choice := range question.Choices {
			if choice.ID == answer.ChoiceID {
				correct = choice.IsCorrect
				break
			}
		}
		if correct {
			result.Score += question.Points
		}
		result.Details = append(result.Details, models.AnswerDetail{
			QuestionID: answer.QuestionID,
			IsCorrect:  correct,
		})
	}

	if totalPoints > 0 {
		result.Passed = float64(result.Score)/float64(totalPoints) >= passThreshold
	}
	return result, nil
}
