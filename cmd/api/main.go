package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"resume-analyzer/internal/config"
	"resume-analyzer/internal/handlers"
	"resume-analyzer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize services
	extractor := services.NewExtractorService(cfg.Extractor)
	promptBuilder := services.NewPromptBuilder(cfg.LLM.PromptMaxChars)

	llm, err := buildLLMService(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize LLM service: %v", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := llm.Ping(pingCtx); err != nil {
		log.Printf("⚠️  Language model not reachable yet: %v\n", err)
	}
	cancel()
	log.Println("✅ Services initialized successfully")

	// Job providers are optional; each one activates with its credentials.
	var providers []services.JobProvider
	if cfg.JobSearch.RapidAPIKey != "" {
		providers = append(providers, services.NewJSearchProvider(cfg.JobSearch.RapidAPIKey))
	}
	if cfg.JobSearch.AdzunaAppID != "" && cfg.JobSearch.AdzunaAppKey != "" {
		providers = append(providers, services.NewAdzunaProvider(
			cfg.JobSearch.AdzunaAppID,
			cfg.JobSearch.AdzunaAppKey,
			cfg.JobSearch.AdzunaCountry,
		))
	}
	log.Printf("✅ %d job provider(s) configured\n", len(providers))

	analyzer := services.NewAnalyzerService(extractor, llm, promptBuilder, providers, cfg.JobSearch)
	analyzeHandler := handlers.NewAnalyzeHandler(analyzer, cfg.Storage.MaxFileSize)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Analyzer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 3 * time.Minute,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/analyze", analyzeHandler.HandleAnalyze)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Analyzer API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/analyze",
				"GET /api/v1/health",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func buildLLMService(cfg *config.Config) (services.LLMService, error) {
	switch cfg.LLM.Provider {
	case "gemini":
		if cfg.LLM.GeminiAPIKey == "" {
			return nil, fmt.Errorf("LLM_PROVIDER=gemini requires GEMINI_API_KEY")
		}
		return services.NewGeminiService(cfg.LLM.GeminiAPIKey)
	case "ollama", "":
		return services.NewOllamaService(cfg.LLM.OllamaURL, cfg.LLM.OllamaModel), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.LLM.Provider)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
