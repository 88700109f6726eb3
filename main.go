package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"main/config"
	"main/handler"
	"main/middleware"
	"main/repository"
	"main/usecase"
	"main/utils"
)

func init() {
	// Load environment variables from .env file when present
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Debug().Msg("no .env file found, using process environment")
	}

	utils.InitValidator()
}

func setupRouter(cfg config.ServerConfig, notesRepo *repository.NotesRepo) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestSizeLimiter(cfg.MaxBodyBytes))

	notesService := &usecase.NotesService{
		NotesRepo:     notesRepo,
		MaxTextLength: cfg.NoteMaxLength,
	}
	statsHandler := handler.NewStatsHandler(notesRepo)
	limiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)

	router.GET("/health", handler.HealthCheckHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	notes := router.Group("/notes")
	notes.Use(limiter.Middleware())
	{
		notes.GET("", func(c *gin.Context) {
			handler.GetNotesHandler(c, notesService)
		})
		notes.GET("/stats", statsHandler.GetNoteStats)
		notes.GET("/export/json", func(c *gin.Context) {
			handler.ExportNotesHandler(c, notesService)
		})
		notes.GET("/:id", func(c *gin.Context) {
			handler.GetNoteHandler(c, notesService)
		})
		notes.POST("", func(c *gin.Context) {
			handler.CreateNoteHandler(c, notesService)
		})
		notes.PUT("/:id", func(c *gin.Context) {
			handler.UpdateNoteHandler(c, notesService)
		})
		notes.DELETE("/:id", func(c *gin.Context) {
			handler.DeleteNoteHandler(c, notesService)
		})
		notes.PUT("/:id/pin", func(c *gin.Context) {
			handler.TogglePinHandler(c, notesService)
		})
	}

	router.NoRoute(func(c *gin.Context) {
		utils.NotFound(c)
	})

	return router
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out: os.Stderr, TimeFormat: time.RFC3339,
	})

	cfg := config.LoadServerConfig()

	db, err := repository.OpenDatabase(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	notesRepo := repository.GetNotesRepo(db)
	if err := notesRepo.Init(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize schema")
	}

	router := setupRouter(cfg, notesRepo)

	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	log.Info().Str("addr", serverAddr).Str("db", cfg.DBPath).Msg("server starting")
	if err := router.Run(serverAddr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
