// Package config loads server settings from the environment, with an
// optional .env file for development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is everything the server binary needs to start.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string

	// PostgresDSN selects the postgres store when set; otherwise the
	// in-memory store is used.
	PostgresDSN string

	// RedisAddr enables the redis hand cache when set. Only meaningful
	// together with PostgresDSN.
	RedisAddr     string
	RedisPassword string

	// BotDelay paces scheduled bot turns.
	BotDelay time.Duration

	// LogLevel is a logrus level name ("debug", "info", ...).
	LogLevel string
}

// Load reads the environment. A missing .env file is not an error; a
// malformed value is.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:          getenv("ROOK_ADDR", ":8080"),
		PostgresDSN:   os.Getenv("ROOK_POSTGRES_DSN"),
		RedisAddr:     os.Getenv("ROOK_REDIS_ADDR"),
		RedisPassword: os.Getenv("ROOK_REDIS_PASSWORD"),
		LogLevel:      getenv("ROOK_LOG_LEVEL", "info"),
	}

	delay, err := getduration("ROOK_BOT_DELAY_MS", 1200)
	if err != nil {
		return Config{}, err
	}
	cfg.BotDelay = delay
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallbackMs int) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(fallbackMs) * time.Millisecond, nil
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms < 0 {
		return 0, fmt.Errorf("%s: want a non-negative millisecond count, got %q", key, v)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
