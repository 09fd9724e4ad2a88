package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"learnbyte/internal/adapter"
	"learnbyte/internal/adapter/llmclient"
	"learnbyte/internal/cache"
	"learnbyte/internal/config"
	"learnbyte/internal/database"
	"learnbyte/internal/domain"
	"learnbyte/internal/handler"
	"learnbyte/internal/logger"
	"learnbyte/internal/middleware"
	"learnbyte/internal/repository"
	"learnbyte/internal/service"
	"learnbyte/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Initialize LLM client. An empty API key is not fatal; the
	// pipelines degrade to heuristic fallbacks without a provider.
	llmClient, err := llmclient.NewOpenAIClient(cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}
	if cfg.LLM.APIKey == "" {
		appLogger.Warn("LLM API key is not configured; serving fallback content only")
	}

	// Initialize Redis. Summary caching is optional, so a missing
	// Redis is a warning rather than a fatal error.
	var summaryCache domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Warn("Failed to connect to Redis; summary caching disabled", zap.Error(err))
		} else {
			appLogger.Info("Successfully connected to Redis")
			summaryCache = adapter.NewRedisCacheAdapter(redisClient)
		}
	}

	// Connect to database. Score persistence is optional as well.
	var scoreRepository repository.ScoreRepository
	if cfg.DB.Host != "" {
		db, err := database.NewSQLXOracleDB(cfg.GetDSN())
		if err != nil {
			appLogger.Warn("Failed to connect to database; score persistence disabled", zap.Error(err))
		} else {
			scoreRepository = repository.NewScoreDatabaseAdapter(db)
			appLogger.Info("ScoreDatabaseAdapter initialized")
		}
	}

	// Initialize services
	mcqValidator := service.NewMCQValidator()
	synthesizer := service.NewFallbackSynthesizer(nil)
	assessmentService := service.NewAssessmentService(llmClient, mcqValidator, synthesizer)
	summaryService := service.NewSummaryService(llmClient, summaryCache, cfg.CacheTTLs.Summary)
	masteryService := service.NewMasteryService()
	gradingService := service.NewGradingService(masteryService, scoreRepository)

	// Initialize handlers
	requestValidator := validation.NewValidator()
	assessmentHandler := handler.NewAssessmentHandler(assessmentService, requestValidator)
	summaryHandler := handler.NewSummaryHandler(summaryService, requestValidator)
	gradingHandler := handler.NewGradingHandler(gradingService, requestValidator)
	analyticsHandler := handler.NewAnalyticsHandler(masteryService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// API group
	apiGroup := app.Group("/api")
	apiGroup.Post("/quiz", assessmentHandler.GenerateQuiz)
	apiGroup.Post("/quiz/submit", gradingHandler.SubmitQuiz)
	apiGroup.Get("/quiz/scores", gradingHandler.GetScores)
	apiGroup.Post("/summaries", summaryHandler.SummarizeTranscript)

	analyticsGroup := apiGroup.Group("/analytics")
	analyticsGroup.Get("/overall", analyticsHandler.GetOverallStats)
	analyticsGroup.Get("/users/:session_id", analyticsHandler.GetUserStats)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
