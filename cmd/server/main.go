package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vidsum-backend/internal/analysis"
	"vidsum-backend/internal/config"
	"vidsum-backend/internal/database"
	"vidsum-backend/internal/handlers"
	"vidsum-backend/internal/pipeline"
	"vidsum-backend/internal/repository"
	"vidsum-backend/internal/router"
	"vidsum-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting Video Summarizer Backend...")

	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Record store ────
	var store pipeline.RecordStore
	switch cfg.StoreBackend {
	case "memory":
		store = repository.NewMemoryStore()
		log.Println("✓ In-memory record store (records do not survive restarts)")
	default:
		pool, err := database.NewPostgresPool(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("✗ PostgreSQL connection failed: %v", err)
		}
		defer pool.Close()
		log.Println("✓ PostgreSQL connected")

		if err := database.RunMigrations(pool, "migrations"); err != nil {
			log.Fatalf("✗ Database migration failed: %v", err)
		}
		log.Println("✓ Database migrations applied")

		store = repository.NewSummaryRepo(pool)
	}

	// ──── Transcript cache (optional) ────
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		log.Println("✓ Redis transcript cache connected")
	}

	// ──── AI provider ────
	var (
		summarizer  services.Summarizer
		transcriber services.Transcriber
	)
	switch cfg.AIProvider {
	case "openai":
		openaiService := services.NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		summarizer = openaiService
		transcriber = openaiService
		log.Println("✓ OpenAI client initialized")
	default:
		geminiService, err := services.NewGeminiService(cfg.GeminiAPIKey, cfg.AIConcurrentRequests)
		if err != nil {
			log.Fatalf("✗ Gemini client initialization failed: %v", err)
		}
		defer geminiService.Close()
		summarizer = geminiService
		transcriber = geminiService
		log.Println("✓ Gemini client initialized")
	}

	// ──── Pipeline ────
	mediaService := services.NewMediaService()
	if err := mediaService.CheckFFmpeg(); err != nil {
		log.Printf("⚠ %v — uploaded file summarization will fail", err)
	}

	acquirer := services.NewAcquirer(
		services.NewYouTubeService(),
		mediaService,
		transcriber,
		services.NewTranscriptCache(redisClient),
		cfg.TmpDir,
		services.AcquireTimeouts{
			Caption:    time.Duration(cfg.CaptionTimeout) * time.Second,
			Download:   time.Duration(cfg.DownloadTimeout) * time.Second,
			Transcribe: time.Duration(cfg.TranscribeTimeout) * time.Second,
		},
	)

	orchestrator := pipeline.NewOrchestrator(acquirer, summarizer, analysis.NewSentimentScorer(), store, pipeline.Options{
		SummarizeTimeout: time.Duration(cfg.SummarizeTimeout) * time.Second,
		SummarizeRetries: cfg.SummarizeRetries,
	})

	// ──── HTTP server ────
	summaryHandler := handlers.NewSummaryHandler(orchestrator, store, int64(cfg.MaxUploadMB))

	r := router.New(summaryHandler, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  5 * time.Minute,  // large multipart uploads
		WriteTimeout: 10 * time.Minute, // summarization requests are slow
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Video Summarizer Backend ready on http://localhost:%s", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
