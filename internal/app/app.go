package app

import (
	"LearnForge/internal/app/server"
	"LearnForge/internal/config"
	"LearnForge/internal/delivery/http"
	"LearnForge/internal/service"
	"LearnForge/internal/service/course"
	"LearnForge/internal/service/lesson"
	"LearnForge/internal/service/quiz"
	"LearnForge/internal/storage/elastic"
	"LearnForge/internal/storage/minio_storage"
	"LearnForge/internal/storage/postgres"
	"LearnForge/pkg/logger"
	"context"
	"os"
	"os/signal"
	"syscall"
)

func Run(cfg *config.Config) {

	log := logger.New(cfg.Env)
	log.Info("Starting with Env: " + cfg.Env)

	pg, err := postgres.NewPostgresPool(cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
	if err != nil {
		log.FatalErr("error connecting to database", err)
	}
	defer pg.Close()

	minioClient, err := minio_storage.NewMinioStorage(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
	if err != nil {
		log.FatalErr("error connecting to minio", err)
	}
	contentStorage, err := minio_storage.NewContentStorage(minioClient, cfg.Minio.Bucket, cfg.Minio.PresignTTL)
	if err != nil {
		log.FatalErr("error preparing content bucket", err)
	}

	esClient, err := elastic.NewElasticClient(cfg.ES.Password, cfg.ES.Hosts)
	if err != nil {
		log.FatalErr("error connecting to elasticsearch", err)
	}
	searchRepo := elastic.NewCourseSearchRepository(esClient, cfg.ES.Index)
	if err := searchRepo.CreateIndexIfNotExist(context.Background()); err != nil {
		log.FatalErr("error creating search index", err)
	}

	courseRepo := postgres.NewCoursePostgres(pg.Pool)
	lessonRepo := postgres.NewLessonPostgres(pg.Pool)
	quizRepo := postgres.NewQuizPostgres(pg.Pool)

	u := service.Collection{
		CourseService: course.NewCourseService(log, courseRepo, lessonRepo, contentStorage, searchRepo),
		LessonService: lesson.NewLessonService(log, courseRepo, lessonRepo, contentStorage),
		QuizService:   quiz.NewQuizService(log, courseRepo, quizRepo),
	}

	r := http.InitRoutes(log, u)

	srv := server.New(cfg.HTTPServer.Address, cfg.HTTPServer.Timeout, cfg.HTTPServer.IdleTimeout, r)
	srv.Start()
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app signal: " + s.String())
	case err := <-srv.Notify():
		log.ErrorErr("server error", err)
	}
	if err := srv.Shutdown(); err != nil {
		log.ErrorErr("shutdown error", err)
	}
}
