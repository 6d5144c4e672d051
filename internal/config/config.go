package config

import (
	"log"
	"os"
)

type LLMBackend string

const (
	LLMMock   LLMBackend = "mock"
	LLMGemini LLMBackend = "gemini"
	LLMOpenAI LLMBackend = "openai"
)

type Config struct {
	Port string

	LLMBackend   LLMBackend
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string

	StorageBackend string // "memory" or "firestore"
	GCPProjectID   string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

// Load reads all env vars and builds the config. A missing credential for the
// selected LLM backend is fatal at startup.
func Load() *Config {
	backend := LLMBackend(getEnv("CRISIS_LLM_BACKEND", string(LLMGemini)))
	if getBoolEnv("CRISIS_USE_MOCK_LLM", false) {
		backend = LLMMock
	}

	cfg := &Config{
		Port: getEnv("CRISIS_PORT", "8080"),

		LLMBackend:   backend,
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("CRISIS_GEMINI_MODEL", "gemini-1.5-pro"),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("CRISIS_OPENAI_MODEL", "gpt-4o-mini"),

		StorageBackend: getEnv("CRISIS_STORAGE_BACKEND", "memory"),
		GCPProjectID:   getEnv("CRISIS_GCP_PROJECT", ""),
	}

	switch cfg.LLMBackend {
	case LLMGemini:
		if cfg.GeminiAPIKey == "" {
			log.Fatal("GEMINI_API_KEY not found in environment")
		}
	case LLMOpenAI:
		if cfg.OpenAIAPIKey == "" {
			log.Fatal("OPENAI_API_KEY not found in environment")
		}
	}

	if cfg.StorageBackend == "firestore" && cfg.GCPProjectID == "" {
		log.Fatal("CRISIS_GCP_PROJECT must be set for the firestore backend")
	}

	return cfg
}
