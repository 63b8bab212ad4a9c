package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/minhlq/skillsession/config"
	"github.com/minhlq/skillsession/database"
	_ "github.com/minhlq/skillsession/docs" // Swagger docs
	adminctrl "github.com/minhlq/skillsession/internal/controller/admin"
	userctrl "github.com/minhlq/skillsession/internal/controller/user"
	"github.com/minhlq/skillsession/internal/logger"
	"github.com/minhlq/skillsession/internal/model"
	"github.com/minhlq/skillsession/internal/repository"
	"github.com/minhlq/skillsession/internal/response"
	"github.com/minhlq/skillsession/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Assessment Session API
// @version 1.0
// @description Timed test-taking sessions with fixed question order and deferred scoring for free-text answers.
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

		// Repositories
		fx.Provide(
			repository.NewSessionRepository,
			repository.NewQuestionRepository,
			repository.NewSessionQuestionRepository,
			repository.NewResponseRepository,
			repository.NewEventRepository,
			repository.NewDomainRepository,
			repository.NewUserRepository,
		),

		// Services
		fx.Provide(
			NewEvaluator,
			service.NewEvaluationDispatcher,
			service.NewSessionService,
			service.NewResultService,
			service.NewAdminService,
			service.NewUserService,
		),

		// Controllers
		fx.Provide(
			userctrl.NewSessionController,
			userctrl.NewUserController,
			adminctrl.NewAdminController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(StartEvaluationDispatcher),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

// NewEvaluator picks the descriptive-answer evaluator: the remote delegate
// when a base URL is configured, Gemini as the fallback, otherwise a disabled
// stub that fails every evaluation.
func NewEvaluator(cfg *config.Config) (service.EvaluatorService, error) {
	if cfg.Evaluator.BaseURL != "" {
		log.Info().Str("baseURL", cfg.Evaluator.BaseURL).Msg("Using remote evaluation delegate")
		return service.NewHTTPEvaluator(cfg.Evaluator.BaseURL), nil
	}
	if cfg.GeminiApiKey != "" {
		log.Info().Msg("Using Gemini evaluator")
		return service.NewGeminiEvaluator(cfg.GeminiApiKey)
	}
	return service.NewDisabledEvaluator(), nil
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
	r.Use(response.RequestIDMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// StartEvaluationDispatcher ties the deferred-scoring workers to the app
// lifecycle. Stop drains in-flight evaluations before shutdown.
func StartEvaluationDispatcher(lc fx.Lifecycle, dispatcher service.EvaluationDispatcher) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			dispatcher.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			dispatcher.Stop()
			return nil
		},
	})
}

// RegisterRoutesAndStartServer configures API routes and manages the HTTP
// server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	sessionCtrl *userctrl.SessionController,
	userCtrl *userctrl.UserController,
	adminCtrl *adminctrl.AdminController,
) {
	api := router.Group("/api/v1")
	{
		sessionGroup := api.Group("/session")
		sessionGroup.POST("/start", sessionCtrl.StartSession)
		sessionGroup.GET("/:session_id/question", sessionCtrl.GetCurrentQuestion)
		sessionGroup.POST("/answer", sessionCtrl.SubmitAnswer)
		sessionGroup.GET("/:session_id/result", sessionCtrl.GetSessionResult)
		sessionGroup.GET("/user/:user_id/sessions", sessionCtrl.GetUserSessions)

		usersGroup := api.Group("/users")
		usersGroup.POST("", userCtrl.CreateUser)
		usersGroup.GET("/:user_id", userCtrl.GetUser)

		adminGroup := api.Group("/admin")
		adminGroup.POST("/domains", adminCtrl.CreateDomain)
		adminGroup.GET("/domains", adminCtrl.ListDomains)
		adminGroup.POST("/questions", adminCtrl.CreateQuestion)
		adminGroup.GET("/questions", adminCtrl.ListQuestions)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Assessment session API starting on port %s", cfg.Server.Port)
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
		&model.User{},
		&model.Domain{},
		&model.Question{},
		&model.Session{},
		&model.SessionQuestion{},
		&model.Response{},
		&model.SessionEvent{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed")
	return nil
}
