package config

import (
	"os"
	"sync"
	"time"
)

type GeminiConfig struct {
	APIKey         string
	Model          string
	EmbeddingModel string
	MaxRetries     int
	Timeout        time.Duration
}

var (
	geminiConfig *GeminiConfig
	geminiOnce   sync.Once
)

func LoadGeminiConfig() *GeminiConfig {
	geminiOnce.Do(func() {
		geminiConfig = &GeminiConfig{
			APIKey:         os.Getenv("GEMINI_API_KEY"),
			Model:          getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			EmbeddingModel: getEnv("EMBEDDING_MODEL", "gemini-embedding-001"),
			MaxRetries:     getEnvInt("GEMINI_MAX_RETRIES", 0),
			Timeout:        getEnvDuration("GEMINI_TIMEOUT", 90*time.Second),
		}
	})
	return geminiConfig
}
