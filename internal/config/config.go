package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Port     string
	Env      string
	MongoURI string
	MongoDB  string

	// Eviction sweep tuning
	SweepInterval time.Duration // how often the sweeper runs
	StaleAfter    time.Duration // heartbeat age beyond which a participant is evicted
	SweepWorkers  int           // concurrent evictions per sweep
}

// Load reads configuration from environment variables.
// In development, it loads from .env file if present.
// In production, it panics on missing required variables.
func Load() *Config {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "5000"),
		Env:           getEnv("ENV", "development"),
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDB:       getEnv("MONGO_DB", "chatUol"),
		SweepInterval: getDuration("SWEEP_INTERVAL", 15*time.Second),
		StaleAfter:    getDuration("STALE_AFTER", 10*time.Second),
		SweepWorkers:  getInt("SWEEP_WORKERS", 4),
	}

	// In production, require a MongoDB connection string
	if cfg.Env == "production" && cfg.MongoURI == "" {
		panic("MONGO_URI is required in production")
	}

	return cfg
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
