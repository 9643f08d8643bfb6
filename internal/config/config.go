// Package config centralises configuration parsing for the roster service.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures runtime configuration values for the roster service.
type Config struct {
	HTTPAddress         string
	MongoURL            string
	MongoDatabase       string
	MongoCollection     string
	MongoConnectTimeout time.Duration
	KafkaBrokers        []string // empty disables event publishing
	RosterTopic         string
	StaticDir           string
	LogLevel            string
	ShutdownTimeout     time.Duration
}

// Load reads environment variables into Config, applying sensible defaults for
// local dev. A .env file in the working directory is honoured when present.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddress:         getEnv("HTTP_ADDRESS", ":8080"),
		MongoURL:            getEnv("MONGODB_URL", "mongodb://localhost:27017"),
		MongoDatabase:       getEnv("MONGODB_DATABASE", "mergington_school"),
		MongoCollection:     getEnv("MONGODB_COLLECTION", "activities"),
		MongoConnectTimeout: getDurationEnv("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
		RosterTopic:         getEnv("ROSTER_TOPIC", "roster.changes"),
		StaticDir:           getEnv("STATIC_DIR", "./static"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout:     getDurationEnv("SHUTDOWN_TIMEOUT", 15*time.Second),
	}

	cfg.KafkaBrokers = splitAndTrim(getEnv("KAFKA_BROKERS", ""))
	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
