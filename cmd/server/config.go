package main

import (
	"fmt"
	"os"
	"time"

	"invacc/internal/infrastructure/generation"
)

// config is the process configuration read from the environment.
type config struct {
	Env      string
	Port     string
	LogLevel string
	SeedFile string

	JWTSecret string

	GenAIAPIKey        string
	GenAIModel         string
	GenAITimeout       time.Duration
	GenerationMaxConc  int
	BreakerTimeout     time.Duration
	BreakerMaxFailures int
}

func loadConfig() config {
	return config{
		Env:      getEnv("APP_ENV", "development"),
		Port:     getEnv("APP_PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		SeedFile: getEnv("SEED_FILE", "configs/seed.yaml"),

		JWTSecret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),

		GenAIAPIKey:        os.Getenv("GENAI_API_KEY"),
		GenAIModel:         getEnv("GENAI_MODEL", generation.DefaultModel),
		GenAITimeout:       getEnvDuration("GENAI_TIMEOUT", generation.DefaultTimeout),
		GenerationMaxConc:  getEnvInt("GENERATION_MAX_CONCURRENCY", 4),
		BreakerTimeout:     getEnvDuration("BREAKER_TIMEOUT", 30*time.Second),
		BreakerMaxFailures: getEnvInt("BREAKER_MAX_FAILURES", 5),
	}
}

func (c config) development() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
