package service

import (
	"os"
	"time"
)

type Config struct {
	Environment string
	Port        string
	BaseURL     string
	DBPath      string

	API struct {
		// Key authenticates the external stock feed and the admin import.
		Key string
	}

	Stock struct {
		StaleAfter time.Duration
	}
}

func LoadConfig() (*Config, error) {
	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8000"),
		DBPath:      getEnv("DB_PATH", "./db/smartspace.db"),
	}

	config.API.Key = getEnv("STOCK_API_KEY", "development-secret")

	staleAfter := getEnv("STOCK_STALE_AFTER", "48h")
	if d, err := time.ParseDuration(staleAfter); err == nil {
		config.Stock.StaleAfter = d
	} else {
		config.Stock.StaleAfter = 48 * time.Hour
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
