package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"skillsage/internal/adapter"
	"skillsage/internal/adapter/quizgen"
	"skillsage/internal/cache"
	"skillsage/internal/config"
	"skillsage/internal/domain"
	"skillsage/internal/handler"
	"skillsage/internal/logger"
	"skillsage/internal/middleware"
	"skillsage/internal/repository"
	"skillsage/internal/service"
	"skillsage/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// LLM backend for question generation and mistake explanations.
	var llm llms.Model
	switch cfg.LLM.Provider {
	case "googleai":
		appLogger.Info("Initializing Google AI generator", zap.String("model", cfg.LLM.Model))
		llm, err = googleai.New(ctx,
			googleai.WithAPIKey(cfg.LLM.APIKey),
			googleai.WithDefaultModel(cfg.LLM.Model),
		)
		if err != nil {
			appLogger.Fatal("Failed to create Google AI client", zap.Error(err))
		}
	case "ollama":
		appLogger.Info("Initializing Ollama generator",
			zap.String("server_url", cfg.LLM.ServerURL),
			zap.String("model", cfg.LLM.Model))
		llm, err = ollama.New(
			ollama.WithServerURL(cfg.LLM.ServerURL),
			ollama.WithModel(cfg.LLM.Model),
		)
		if err != nil {
			appLogger.Fatal("Failed to create Ollama client", zap.Error(err))
		}
	default:
		appLogger.Fatal(fmt.Sprintf("Unsupported LLM provider: %s. Please check LLM_PROVIDER in config.", cfg.LLM.Provider))
	}
	generator := quizgen.NewLLMQuestionGenerator(llm, cfg.LLM.Timeout)

	// Question bank over Redis.
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	bank := adapter.NewRedisQuestionBank(redisClient, cfg.Redis.OpTimeout)

	// Optional sqlite archive of finished assessments.
	var archive domain.ResultArchive
	if cfg.Archive.Path != "" {
		sqlArchive, err := repository.NewSQLXResultArchive(cfg.Archive.Path)
		if err != nil {
			appLogger.Fatal("Failed to open result archive", zap.Error(err))
		}
		defer sqlArchive.Close()
		archive = sqlArchive
		appLogger.Info("Result archive enabled", zap.String("path", cfg.Archive.Path))
	}

	source := service.NewQuestionSource(bank, generator, service.NewSubstringSimilarity(), nil)
	store := service.NewMemorySessionStore()
	assessmentService := service.NewAssessmentService(store, source, generator, archive)

	validator := validation.NewValidator()
	assessmentHandler := handler.NewAssessmentHandler(assessmentService, validator)
	healthHandler := handler.NewHealthHandler(bank)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(middleware.RequestLogger())

	app.Get("/health", healthHandler.Health)

	api := app.Group("/api/assessment")
	api.Post("/start", assessmentHandler.StartTest)
	api.Post("/answer", assessmentHandler.SubmitAnswer)
	api.Post("/end", assessmentHandler.EndTest)
	api.Post("/explain", assessmentHandler.ExplainMistake)
	api.Get("/history/:user_id", assessmentHandler.History)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		appLogger.Info("Starting server", zap.String("addr", addr))
		return app.Listen(addr)
	})

	// Idle sessions never end themselves; sweep them periodically.
	g.Go(func() error {
		ticker := time.NewTicker(cfg.Session.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				store.SweepExpired(cfg.Session.MaxIdle)
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server")
		return app.ShutdownWithTimeout(10 * time.Second)
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Server exited with error", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
