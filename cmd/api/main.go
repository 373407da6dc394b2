package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/manojthapa/neuroarc/internal/config"
	"github.com/manojthapa/neuroarc/internal/handlers"
	"github.com/manojthapa/neuroarc/internal/logger"
	"github.com/manojthapa/neuroarc/internal/services"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.Server.Env)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()
	zlog.Info("config loaded", zap.String("env", cfg.Server.Env))

	// AI is optional at startup. A nil generator makes the oracle answer
	// every call with a not-configured error instead of crashing the API.
	generator, err := services.NewGeminiGenerator(cfg.AI.Token)
	if err != nil {
		zlog.Fatal("failed to initialize model client", zap.Error(err))
	}
	if generator == nil {
		zlog.Warn("GITHUB_TOKEN not set, AI endpoints will be unavailable")
	}

	oracle := services.NewOracleService(generator, cfg.AI.Models, cfg.AI.Timeout, zlog)

	ocr := services.NewOCRService(zlog)
	extractor := services.NewExtractorService(ocr, zlog)
	analyzer := services.NewAnalyzerService(extractor, zlog)
	store := services.NewStoreService(cfg.Storage.CVStoreTTL)
	scorer := services.NewScorerService(oracle, zlog)
	tailor := services.NewTailorService(oracle, zlog)
	renderer := services.NewRendererService()
	reviews := services.NewReviewService(cfg.Storage.DataDir)

	if cfg.Jobs.ReedAPIKey == "" {
		zlog.Warn("REED_API_KEY not set, job search will be unavailable")
	}
	jobs := services.NewJobService(cfg.Jobs.ReedAPIKey, zlog)

	cvHandler := handlers.NewCVHandler(analyzer, store, scorer, tailor, renderer, cfg.Storage.MaxFileSize, zlog)
	jobsHandler := handlers.NewJobsHandler(jobs, zlog)
	reviewsHandler := handlers.NewReviewsHandler(reviews, zlog)
	healthHandler := handlers.NewHealthHandler(generator != nil, cfg.Jobs.ReedAPIKey != "")

	app := fiber.New(fiber.Config{
		AppName:      "NeuroArc API",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1024*1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	corsOrigins := cfg.Server.CORSOrigins
	if corsOrigins == "" {
		corsOrigins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:  corsOrigins,
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders: "X-New-Score, X-Skills-Added, Content-Disposition",
	}))

	api := app.Group("/api/v1")

	api.Get("/health", healthHandler.HandleHealth)

	cv := api.Group("/cv")
	cv.Post("/upload", cvHandler.HandleUpload)
	cv.Get("/:id", cvHandler.HandleGet)
	cv.Post("/analyze", cvHandler.HandleAnalyze)
	cv.Post("/generate", cvHandler.HandleGenerate)
	cv.Post("/generate/pdf", cvHandler.HandleGeneratePDF)

	api.Get("/jobs/search", jobsHandler.HandleSearch)
	api.Get("/jobs/:id", jobsHandler.HandleDetails)

	api.Get("/reviews", reviewsHandler.HandleList)
	api.Post("/reviews", reviewsHandler.HandleCreate)
	api.Delete("/reviews/:id", reviewsHandler.HandleDelete)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "NeuroArc API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/cv/upload",
				"GET /api/v1/cv/:id",
				"POST /api/v1/cv/analyze",
				"POST /api/v1/cv/generate",
				"POST /api/v1/cv/generate/pdf",
				"GET /api/v1/jobs/search",
				"GET /api/v1/jobs/:id",
				"GET /api/v1/reviews",
				"POST /api/v1/reviews",
				"DELETE /api/v1/reviews/:id",
				"GET /api/v1/health",
			},
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			zlog.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
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
