package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	AI      AIConfig
	Jobs    JobsConfig
	Storage StorageConfig
}

type ServerConfig struct {
	Port        string
	Env         string
	CORSOrigins string
}

type AIConfig struct {
	// Token is the credential for the model endpoint. Empty means AI
	// features are unavailable, not a startup failure.
	Token string
	// Models are tried in order, strongest first.
	Models []string
	// Timeout bounds each model attempt.
	Timeout time.Duration
}

type JobsConfig struct {
	ReedAPIKey string
}

type StorageConfig struct {
	DataDir     string
	MaxFileSize int64
	CVStoreTTL  time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8000"),
			Env:         getEnv("ENV", "development"),
			CORSOrigins: getEnv("CORS_ORIGINS", ""),
		},
		AI: AIConfig{
			Token:   getEnv("GITHUB_TOKEN", ""),
			Models:  getEnvAsList("AI_MODELS", "gemini-2.5-pro,gemini-2.5-flash"),
			Timeout: getEnvAsDuration("AI_TIMEOUT", "10s"),
		},
		Jobs: JobsConfig{
			ReedAPIKey: getEnv("REED_API_KEY", ""),
		},
		Storage: StorageConfig{
			DataDir:     getEnv("DATA_DIR", "./data"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10*1024*1024),
			CVStoreTTL:  getEnvAsDuration("CV_STORE_TTL", "1h"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsList(key string, defaultValue string) []string {
	valueStr := getEnv(key, defaultValue)
	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
