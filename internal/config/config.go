package config

import (
	"os"
	"strconv"
	"time"

	"audio-weaver/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort      string
	LogLevel        string
	MaxFileSize     int64
	OutputPath      string
	OutputTTL       time.Duration
	CleanupSchedule string
	SpeechBackend   string
	OpenAIKey       string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:      getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		MaxFileSize:     getEnvInt64OrDefault("MAX_FILE_SIZE", 15*1024*1024), // 15MB default
		OutputPath:      getEnvOrDefault("OUTPUT_PATH", "./outputs"),
		OutputTTL:       getEnvDurationOrDefault("OUTPUT_TTL", 24*time.Hour),
		CleanupSchedule: getEnvOrDefault("CLEANUP_SCHEDULE", "@hourly"),
		SpeechBackend:   getEnvOrDefault("SPEECH_BACKEND", "google"),
		OpenAIKey:       getEnvOrDefault("OPENAI_API_KEY", ""),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetMaxFileSize returns the maximum allowed upload size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetOutputPath returns the generated-audio directory
func (c *AppConfig) GetOutputPath() string {
	return c.OutputPath
}

// GetOutputTTL returns how long generated audio is kept
func (c *AppConfig) GetOutputTTL() time.Duration {
	return c.OutputTTL
}

// GetCleanupSchedule returns the cron expression for the cleanup job
func (c *AppConfig) GetCleanupSchedule() string {
	return c.CleanupSchedule
}

// GetSpeechBackend returns which speech service to use ("google" or "openai")
func (c *AppConfig) GetSpeechBackend() string {
	return c.SpeechBackend
}

// GetOpenAIKey returns the OpenAI API key
func (c *AppConfig) GetOpenAIKey() string {
	return c.OpenAIKey
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
