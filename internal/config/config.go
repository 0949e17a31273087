// Package config centralises configuration parsing for the exercise tracker.
package config

import (
	"os"
)

// Config captures runtime configuration values for the service.
type Config struct {
	Port        string
	DatabaseURL string // empty selects the in-memory store
	LogLevel    string
}

// Load reads environment variables into Config, applying the defaults
// the service has always shipped with.
func Load() Config {
	return Config{
		Port:        getEnv("PORT", "3000"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
