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

	"hrteam/hr-orchestrator/internal/config"
	"hrteam/hr-orchestrator/internal/handlers"
	"hrteam/hr-orchestrator/internal/repositories"
	"hrteam/hr-orchestrator/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Missing model credentials halt the application entirely
	if cfg.Gemini.APIKey == "" {
		log.Fatal("❌ Missing Gemini API key. Please set GEMINI_API_KEY in .env.")
	}

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	docRepo := repositories.NewDocumentRepository(db)
	screenRepo := repositories.NewScreeningRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	extractor := services.NewTextExtractor(nil)

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Qdrant is optional: policy answers fall back to the full policy file
	var policyStore services.PolicyStore
	if cfg.Qdrant.URL != "" {
		policyStore, err = services.NewQdrantPolicyStore(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}
		if err := policyStore.InitCollection(); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		log.Println("✅ Qdrant initialized successfully")
	} else {
		log.Println("⚠️ QDRANT_URL not set, policy answers will use the full policy file")
	}

	// SMTP is optional: onboarding endpoints report missing credentials
	var mailer services.Mailer
	if m, err := services.NewSMTPMailer(cfg.SMTP); err != nil {
		log.Printf("⚠️ SMTP not configured, onboarding emails disabled: %v\n", err)
	} else {
		mailer = m
		log.Println("✅ SMTP mailer initialized successfully")
	}

	evaluator := services.NewCandidateEvaluator(geminiService, cfg.Screening.MaxResumeChars)
	pipeline := services.NewScreeningPipeline(extractor, evaluator, cfg.Screening.MaxAttempts)
	screeningService := services.NewScreeningService(screenRepo, docRepo, pipeline)
	policyAgent := services.NewPolicyAgent(geminiService, policyStore, cfg.Policy.FilePath)
	exporter := services.NewResultExporter()
	logbook := services.NewOnboardingLog(cfg.Onboarding.LogFile)
	notifier := services.NewOnboardingNotifier(mailer, geminiService, logbook, cfg.Onboarding.EmailDomain)
	log.Println("✅ Services initialized successfully")

	// Initialize worker
	worker := services.NewWorker(screenRepo, screeningService, cfg.Worker.Concurrency)
	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize handlers
	queryHandler := handlers.NewQueryHandler()
	uploadHandler := handlers.NewUploadHandler(docRepo, storageService, cfg.Storage.MaxFileSize)
	screenHandler := handlers.NewScreenHandler(screenRepo, docRepo, worker)
	resultHandler := handlers.NewResultHandler(screenRepo, exporter)
	policyHandler := handlers.NewPolicyHandler(policyAgent)
	onboardHandler := handlers.NewOnboardHandler(notifier, exporter, logbook)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "HR Orchestrator API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
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
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/query", queryHandler.HandleQuery)
	api.Post("/upload", uploadHandler.HandleUpload)
	api.Post("/screenings", screenHandler.HandleScreen)
	api.Get("/screenings/:id", resultHandler.HandleGetResult)
	api.Get("/screenings/:id/export", resultHandler.HandleExport)
	api.Post("/policy/ask", policyHandler.HandleAsk)
	api.Post("/onboarding/manual", onboardHandler.HandleManual)
	api.Post("/onboarding/bulk", onboardHandler.HandleBulk)
	api.Get("/onboarding/log", onboardHandler.HandleGetLog)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "HR Orchestrator API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/query",
				"POST /api/v1/upload",
				"POST /api/v1/screenings",
				"GET /api/v1/screenings/:id",
				"GET /api/v1/screenings/:id/export",
				"POST /api/v1/policy/ask",
				"POST /api/v1/onboarding/manual",
				"POST /api/v1/onboarding/bulk",
				"GET /api/v1/onboarding/log",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
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
