package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, read once at startup.
type Config struct {
	App struct {
		Port string
	}
	Catalog struct {
		BaseURL string
		Timeout time.Duration
	}
	Report struct {
		Dir string
	}
	CORS struct {
		AllowedOrigins []string
	}
}

// Load reads configuration from the environment, optionally seeded from a
// .env file at path. A missing .env file is not an error.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := &Config{}
	cfg.App.Port = getEnv("APP_PORT", "8090")

	cfg.Catalog.BaseURL = getEnv("CATALOG_API_URL", "http://go-api:8080")
	timeoutStr := getEnv("CATALOG_TIMEOUT_SECONDS", "5")
	seconds, err := strconv.Atoi(timeoutStr)
	if err != nil || seconds <= 0 {
		return nil, fmt.Errorf("invalid CATALOG_TIMEOUT_SECONDS %q", timeoutStr)
	}
	cfg.Catalog.Timeout = time.Duration(seconds) * time.Second

	cfg.Report.Dir = getEnv("REPORT_DIR", os.TempDir())

	for _, origin := range strings.Split(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000"), ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, origin)
		}
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
