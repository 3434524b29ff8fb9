package logger

import (
	"os"
	"strings"
)

// Config holds logger settings, read from the environment so the logger can
// come up before the main configuration is loaded.
type Config struct {
	Level  string
	Format string
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// DefaultConfig reads LOG_LEVEL and LOG_FORMAT with sensible fallbacks.
func DefaultConfig() *Config {
	return &Config{
		Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Format: strings.ToLower(getEnv("LOG_FORMAT", "json")),
	}
}
