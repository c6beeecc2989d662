package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Storage
	StoreBackend string // "postgres" | "memory"
	DatabaseURL  string

	// Redis (transcript cache, optional)
	RedisURL string

	// AI provider
	AIProvider           string // "gemini" | "openai"
	GeminiAPIKey         string
	OpenAIAPIKey         string
	OpenAIModel          string
	AIConcurrentRequests int

	// Per-stage timeouts (seconds)
	CaptionTimeout    int
	DownloadTimeout   int
	TranscribeTimeout int
	SummarizeTimeout  int
	SummarizeRetries  int

	// Uploads
	MaxUploadMB int
	TmpDir      string

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:         getEnvOrDefault("PORT", "8000"),
		Env:          getEnvOrDefault("ENV", "development"),
		StoreBackend: getEnvOrDefault("STORE_BACKEND", "postgres"),
		RedisURL:     getEnvOrDefault("REDIS_URL", ""),

		AIProvider:           getEnvOrDefault("AI_PROVIDER", "gemini"),
		OpenAIModel:          getEnvOrDefault("OPENAI_MODEL", ""),
		AIConcurrentRequests: getEnvAsIntOrDefault("AI_CONCURRENT_REQUESTS", 5),

		CaptionTimeout:    getEnvAsIntOrDefault("CAPTION_TIMEOUT_SECONDS", 30),
		DownloadTimeout:   getEnvAsIntOrDefault("DOWNLOAD_TIMEOUT_SECONDS", 300),
		TranscribeTimeout: getEnvAsIntOrDefault("TRANSCRIBE_TIMEOUT_SECONDS", 300),
		SummarizeTimeout:  getEnvAsIntOrDefault("SUMMARIZE_TIMEOUT_SECONDS", 120),
		SummarizeRetries:  getEnvAsIntOrDefault("SUMMARIZE_RETRIES", 0),

		MaxUploadMB: getEnvAsIntOrDefault("MAX_UPLOAD_MB", 100),
		TmpDir:      getEnvOrDefault("TMP_DIR", os.TempDir()),

		FrontendURL: getEnvOrDefault("FRONTEND_URL", ""),
	}

	if cfg.StoreBackend == "postgres" {
		cfg.DatabaseURL = mustGetEnv("DATABASE_URL")
	}

	switch cfg.AIProvider {
	case "gemini":
		cfg.GeminiAPIKey = mustGetEnv("GEMINI_API_KEY")
	case "openai":
		cfg.OpenAIAPIKey = mustGetEnv("OPENAI_API_KEY")
	default:
		panic(fmt.Sprintf("unknown AI_PROVIDER %q (expected gemini or openai)", cfg.AIProvider))
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
