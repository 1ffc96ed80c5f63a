package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds pipeline configuration.
type Config struct {
	Env             string
	LLMProvider     string
	LLMModel        string
	OpenAIAPIKey    string
	UpstreamTimeout time.Duration
	MaxRetries      int
	CacheTTL        time.Duration

	// Estimate rates; see the estimation engine for how each applies.
	TaxRate           float64
	OverheadRate      float64
	ProfitRate        float64
	LaborHourlyRate   float64
	LaborOverheadRate float64
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	apiKey := os.Getenv("OPENAI_API_KEY")
	if env == "production" && apiKey == "" {
		log.Printf("OPENAI_API_KEY is required in production")
	}

	return Config{
		Env:             env,
		LLMProvider:     getEnv("LLM_PROVIDER", "openai"),
		LLMModel:        getEnv("LLM_MODEL", ""),
		OpenAIAPIKey:    apiKey,
		UpstreamTimeout: time.Duration(getInt("LLM_TIMEOUT_SECONDS", 60)) * time.Second,
		MaxRetries:      getInt("LLM_MAX_RETRIES", 2),
		CacheTTL:        time.Duration(getInt("CACHE_TTL_MINUTES", 60)) * time.Minute,

		TaxRate:           getFloat("ESTIMATE_TAX_RATE", 0.08),
		OverheadRate:      getFloat("ESTIMATE_OVERHEAD_RATE", 0.15),
		ProfitRate:        getFloat("ESTIMATE_PROFIT_RATE", 0.10),
		LaborHourlyRate:   getFloat("ESTIMATE_LABOR_RATE", 85),
		LaborOverheadRate: getFloat("ESTIMATE_LABOR_OVERHEAD_RATE", 0.15),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		log.Printf("invalid %s=%q, using default %d", key, raw, def)
		return def
	}
	return parsed
}

func getFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || parsed < 0 {
		log.Printf("invalid %s=%q, using default %g", key, raw, def)
		return def
	}
	return parsed
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	default:
		return "dev"
	}
}
