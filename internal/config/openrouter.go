package config

import (
	"os"
	"sync"
	"time"
)

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	URL     string
	Timeout time.Duration
}

var (
	openRouterConfig *OpenRouterConfig
	openRouterOnce   sync.Once
)

func LoadOpenRouterConfig() *OpenRouterConfig {
	openRouterOnce.Do(func() {
		openRouterConfig = &OpenRouterConfig{
			APIKey:  os.Getenv("OPENROUTER_API_KEY"),
			Model:   getEnv("OPENROUTER_MODEL", "openai/gpt-4o-mini"),
			URL:     getEnv("OPENROUTER_URL", "https://openrouter.ai/api/v1/chat/completions"),
			Timeout: getEnvDuration("OPENROUTER_TIMEOUT", 90*time.Second),
		}
	})
	return openRouterConfig
}
