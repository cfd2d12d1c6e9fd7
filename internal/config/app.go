package config

import (
	"log"
	"os"
	"sync"
)

type AppConfig struct {
	Name          string
	Env           string
	Port          string
	BaseURL       string
	UploadDir     string
	FrontendURL   string
	MaxUploadSize int64
	LogLevel      string
	LogFormat     string
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
			log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
		}
		logFormat := "json"
		if env != "production" {
			logFormat = "console"
		}
		appConfig = &AppConfig{
			Name:          getEnv("APP_NAME", "resume-analyzer"),
			Env:           env,
			Port:          getEnv("APP_PORT", ":5000"),
			BaseURL:       os.Getenv("APP_URL"),
			UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
			FrontendURL:   getEnv("FRONTEND_URL", "*"),
			MaxUploadSize: getEnvInt64("MAX_UPLOAD_SIZE", 10*1024*1024),
			LogLevel:      getEnv("LOG_LEVEL", "info"),
			LogFormat:     getEnv("LOG_FORMAT", logFormat),
		}
	})
	return appConfig
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}
