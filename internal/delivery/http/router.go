package http

import (
	"LearnForge/internal/delivery/http/controllers"
	"LearnForge/internal/service"
	"LearnForge/pkg/logger"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitRoutes(l logger.Log, u service.Collection) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	config := cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	r.Use(cors.New(config))

	statusController := controllers.NewStatusHandler()
	courseController := controllers.NewCourseHandler(l, u.CourseService)
	lessonController := controllers.NewLessonHandler(l, u.LessonService)
	quizController := controllers.NewQuizHandler(l, u.QuizService)
	uploadController := controllers.NewUploadHandler(l, u.LessonService)

	v1 := r.Group("/v1", controllers.LoggingMiddleware(l))
	{
		v1.GET("/status", statusController.Status)

		v1.POST("/uploads", uploadController.Upload)

		courses := v1.Group("/courses")
		{
			courses.GET("", courseController.ListCourses)
			courses.POST("", courseController.CreateCourse)
			courses.GET("/search", courseController.SearchCourses)

			courses.GET("/:course_id", courseController.GetCourse)
			courses.PATCH("/:course_id", courseController.UpdateCourse)
			courses.DELETE("/:course_id", courseController.DeleteCourse)

			courses.GET("/:course_id/lessons", lessonController.ListLessons)
			courses.POST("/:course_id/lessons", lessonController.CreateLesson)

			courses.GET("/:course_id/quiz", quizController.GetQuiz)
			courses.GET("/:course_id/quiz/editor", quizController.GetQuizForEditor)
			courses.POST("/:course_id/quiz", quizController.CreateQuiz)
			courses.PUT("/:course_id/quiz", quizController.ReplaceQuiz)
		}

		lessons := v1.Group("/lessons")
		{
			lessons.GET("/:lesson_id", lessonController.GetLesson)
			lessons.PATCH("/:lesson_id", lessonController.UpdateLesson)
			lessons.DELETE("/:lesson_id", lessonController.DeleteLesson)
			lessons.GET("/:lesson_id/content", lessonController.GetLessonContent)
		}

		quizzes := v1.Group("/quizzes")
		{
			quizzes.POST("/:quiz_id/submissions", quizController.SubmitQuiz)
		}
	}
	return r
}
