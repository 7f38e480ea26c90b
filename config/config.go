package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	GeminiAPIKey    string
	GeminiModel     string
	Port            string
	RefreshInterval time.Duration
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	refreshInterval := 60 * time.Second
	if raw := os.Getenv("REFRESH_INTERVAL_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("REFRESH_INTERVAL_SECONDS must be a positive integer, got %q", raw)
		}
		refreshInterval = time.Duration(seconds) * time.Second
	}

	return &Config{
		GeminiAPIKey:    apiKey,
		GeminiModel:     os.Getenv("GEMINI_MODEL"),
		Port:            port,
		RefreshInterval: refreshInterval,
	}, nil
}
