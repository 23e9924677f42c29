package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string
	DatabasePath    string
	DatabaseURL     string
	JWTSecret       string
	SessionDuration time.Duration
	MigrationsPath  string
	QueueLimit      int
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		DatabaseType:    getEnv("DB_TYPE", "sqlite"),
		DatabasePath:    getEnv("DB_PATH", "./vocadrill.db"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		SessionDuration: getDurationEnv("SESSION_DURATION", 24*time.Hour),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		QueueLimit:      getIntEnv("QUEUE_LIMIT", 500),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv reads an integer environment variable or returns a default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		log.Printf("Warning: invalid value for %s, using default", key)
	}
	return defaultValue
}

// getDurationEnv reads a duration environment variable or returns a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
		log.Printf("Warning: invalid value for %s, using default", key)
	}
	return defaultValue
}
