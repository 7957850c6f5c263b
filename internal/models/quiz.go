package models

import "time"

type Quiz struct {
	ID          int64      `json:"id"`
	CourseID    int64      `json:"course_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	SortOrder   int        `json:"sort_order"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Questions   []Question `json:"questions"`
}

type Question struct {
	ID      int64    `json:"id"`
	QuizID  int64    `json:"quiz_id"`
	Text    string   `json:"text"`
	Points  int      `json:"points"`
	Choices []Choice `json:"choices"`
}

type Choice struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question_id"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"is_correct"`
}

// QuizView is the learner-facing projection of a quiz. It deliberately
// carries no correctness flags; the full Quiz is reserved for editors.
type QuizView struct {
	ID          int64          `json:"id"`
	CourseID    int64          `json:"course_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Questions   []QuestionView `json:"questions"`
}

type QuestionView struct {
	ID      int64        `json:"id"`
	Text    string       `json:"text"`
	Points  int          `json:"points"`
	Choices []ChoiceView `json:"choices"`
}

type ChoiceView struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

func (q Quiz) View() QuizView {
	view := QuizView{
		ID:          q.ID,
		CourseID:    q.CourseID,
		Title:       q.Title,
		Description: q.Description,
		Questions:   make([]QuestionView, 0, len(q.Questions)),
	}
	for _, question := range q.Questions {
		qv := QuestionView{
			ID:      question.ID,
			Text:    question.Text,
			Points:  question.Points,
			Choices: make([]ChoiceView, 0, len(question.Choices)),
		}
		for _, choice := range question.Choices {
			qv.Choices = append(qv.Choices, ChoiceView{ID: choice.ID, Text: choice.Text})
		}
		view.Questions = append(view.Questions, qv)
	}
	return view
}

// Answer is one submitted (question, choice) pair.
type Answer struct {
	QuestionID int64 `json:"question_id"`
	ChoiceID   int64 `json:"choice_id"`
}

type AnswerDetail struct {
	QuestionID int64 `json:"question_id"`
	IsCorrect  bool  `json:"is_correct"`
}

type GradeResult struct {
	Score       int            `json:"score"`
	TotalPoints int            `json:"total_points"`
	Passed      bool           `json:"passed"`
	Details     []AnswerDetail `json:"details"`
}
