package main

import (
	"context"
	"net/http"
	"time"

	"github.com/SalahElkadim/sabrlinguaa-sub000/config"
	"github.com/SalahElkadim/sabrlinguaa-sub000/database"
	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/controller"
	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/logger"
	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/model"
	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/repository"
	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Sabrlinguaa Placement API
// @version 1.0
// @description English placement-test backend: MCQ grading across five skills, AI-graded writing with deterministic fallback, level derivation, lesson catalogue and IELTS practice feedback.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewPlacementTestRepository,
			repository.NewQuestionRepository,
			repository.NewAttemptRepository,
			repository.NewAnswerRepository,
			repository.NewLessonRepository,
			repository.NewIeltsTaskRepository,
		),

		fx.Provide(
			service.NewGeminiLLMService,
			service.NewLevelService,
			service.NewExamSubmissionService,
			service.NewLessonService,
			service.NewIeltsService,
		),

		fx.Provide(
			controller.NewExamController,
			controller.NewLessonController,
			controller.NewIeltsController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	examCtrl *controller.ExamController,
	lessonCtrl *controller.LessonController,
	ieltsCtrl *controller.IeltsController,
) {
	api := router.Group("/api/v1")
	{
		api.POST("/tests/:test_id/attempts", examCtrl.StartExam)
		api.POST("/attempts/:attempt_id/submit", examCtrl.SubmitExam)
		api.GET("/attempts/:attempt_id/result", examCtrl.GetExamResult)
		api.GET("/users/:user_id/level", examCtrl.GetUserLevel)

		api.GET("/lessons", lessonCtrl.GetLessons)
		api.GET("/lessons/:lesson_id", lessonCtrl.GetLesson)

		api.GET("/ielts/tasks", ieltsCtrl.GetTasks)
		api.POST("/ielts/tasks/:task_id/feedback", ieltsCtrl.GetFeedback)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Placement API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.PlacementTest{},
		&model.VocabularyQuestion{},
		&model.GrammarQuestion{},
		&model.ReadingQuestion{},
		&model.ListeningQuestion{},
		&model.SpeakingQuestion{},
		&model.WritingQuestion{},
		&model.Attempt{},
		&model.Answer{},
		&model.Lesson{},
		&model.IeltsTask{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
