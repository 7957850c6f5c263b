package service

import (
	"LearnForge/internal/service/course"
	"LearnForge/internal/service/lesson"
	"LearnForge/internal/service/quiz"
)

type Collection struct {
	*course.CourseService
	*lesson.LessonService
	*quiz.QuizService
}
