package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ptmai/recallify/config"
	"github.com/ptmai/recallify/database"
	"github.com/ptmai/recallify/internal/controller"
	"github.com/ptmai/recallify/internal/logger"
	"github.com/ptmai/recallify/internal/model"
	"github.com/ptmai/recallify/internal/pdf"
	"github.com/ptmai/recallify/internal/repository"
	"github.com/ptmai/recallify/internal/service"
	"github.com/ptmai/recallify/internal/store"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Recallify API
// @version 1.0
// @description Active recall API: upload PDF documents, generate study questions with AI, answer them and get graded.
// @contact.name API Support
// @contact.email support@example.com
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewDocumentRepository,
			repository.NewQuestionRepository,
			repository.NewAnswerRepository,
		),

		// Extraction and Persistence Layer
		fx.Provide(
			func() service.ContentExtractor { return pdf.NewExtractor() },
			store.New, // Provides store.Store, backend chosen by config
		),

		// Services Layer
		fx.Provide(
			service.NewGeminiLLMService,
			service.NewRecallService,
			service.NewDocumentService,
			service.NewQuestionService,
			service.NewAnswerService,
		),

		// API Controllers Layer
		fx.Provide(
			controller.NewDocumentController,
			controller.NewQuestionController,
			controller.NewAnswerController,
		),

		// Invokers - Functions that are executed by Fx
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
	gin.SetMode(gin.DebugMode)

	r := gin.New()

	// Request logging through the global zerolog instance
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	// CORS Configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI
	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	documentCtrl *controller.DocumentController,
	questionCtrl *controller.QuestionController,
	answerCtrl *controller.AnswerController,
) {
	api := router.Group("/api")
	{
		documents := api.Group("/documents")
		documents.POST("/upload", documentCtrl.UploadDocument)
		documents.GET("", documentCtrl.GetDocuments)
		documents.GET("/:document_id", documentCtrl.GetDocument)
		documents.GET("/:document_id/questions", questionCtrl.GetQuestions)

		questions := api.Group("/questions")
		questions.GET("/:question_id", questionCtrl.GetQuestion)
		questions.POST("/:question_id/answer", questionCtrl.SubmitAnswer)

		answers := api.Group("/answers")
		answers.GET("/:answer_id", answerCtrl.GetAnswer)
	}

	// HTTP Server Setup and Lifecycle
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Recallify API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
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
		&model.Document{},
		&model.Question{},
		&model.UserAnswer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
