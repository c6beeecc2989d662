package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"vidsum-backend/internal/handlers"
	"vidsum-backend/internal/middleware"
)

func New(summaryHandler *handlers.SummaryHandler, frontendURL string) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Summarization fans out into caption fetch, download, speech-to-text,
	// and an LLM call; keep it behind a per-IP limiter.
	summarizeLimiter := middleware.NewRateLimiter(10, time.Minute)

	r.Get("/health", summaryHandler.Health)

	r.Group(func(r chi.Router) {
		r.Use(summarizeLimiter.Middleware)
		r.Post("/summarize", summaryHandler.Summarize)
		r.Post("/summarize/upload", summaryHandler.SummarizeUpload)
	})

	r.Route("/summaries", func(r chi.Router) {
		r.Get("/", summaryHandler.List)
		r.Get("/{id}", summaryHandler.Get)
		r.Delete("/{id}", summaryHandler.Delete)
	})

	r.Get("/download/{id}", summaryHandler.Download)

	return r
}
