package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Addr          string
	DBPath        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	JWTSecret     string
	LogPath       string
}

// Load reads the configuration from environment variables, with a .env
// file as an optional source. JWTSecret may be empty; main generates an
// ephemeral one in that case.
func Load() (*Config, error) {
	// Load .env if present; real environment variables win.
	_ = godotenv.Load()

	cfg := &Config{
		Addr:          getEnv("TOVOR_ADDR", ":8080"),
		DBPath:        getEnv("TOVOR_DB", "tovor.sqlite3"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		LogPath:       getEnv("TOVOR_LOG", ""),
	}

	redisDB := getEnv("REDIS_DB", "0")
	n, err := strconv.Atoi(redisDB)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", redisDB, err)
	}
	cfg.RedisDB = n

	return cfg, nil
}

// getEnv returns the environment variable value or a fallback.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
