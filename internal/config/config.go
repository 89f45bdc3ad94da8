// Package config provides configuration management for AutoPick.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all environment-driven settings for the application.
type Config struct {
	// League client
	LockfilePath string

	// Pick/ban lists
	ConfigPath string

	// Redis (optional reference-data cache)
	RedisURL       string
	RedisKeyPrefix string

	// Health server
	HealthAddr string

	// Data Dragon
	DDragonLocale string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		LockfilePath: os.Getenv("LCU_LOCKFILE"),

		ConfigPath: getEnvOrDefault("CONFIG_PATH", "config.json"),

		RedisURL:       os.Getenv("REDIS_URL"),
		RedisKeyPrefix: getEnvOrDefault("REDIS_KEY_PREFIX", "autopick"),

		HealthAddr: getEnvOrDefault("HEALTH_ADDR", ":8080"),

		DDragonLocale: getEnvOrDefault("DDRAGON_LOCALE", "en_US"),
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
