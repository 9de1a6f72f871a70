package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Mode string

const (
	ModeConsole Mode = "console"
	ModeHTTP    Mode = "http"
)

type Config struct {
	Mode      Mode
	Port      string
	GinMode   string
	LogLevel  string
	LogFormat string
}

// Load reads the environment, after an optional .env file in the working directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Mode:      Mode(strings.ToLower(getEnv("MEDBOT_MODE", string(ModeConsole)))),
		Port:      getEnv("PORT", "8080"),
		GinMode:   getEnv("GIN_MODE", "release"),
		LogLevel:  getEnv("LOG_LEVEL", "warn"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	switch cfg.Mode {
	case ModeConsole, ModeHTTP:
	default:
		return nil, fmt.Errorf("MEDBOT_MODE must be %q or %q, got %q", ModeConsole, ModeHTTP, cfg.Mode)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
