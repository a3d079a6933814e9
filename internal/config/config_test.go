package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "CATALOG_API_URL", "CATALOG_TIMEOUT_SECONDS", "REPORT_DIR", "CORS_ORIGINS"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8090", cfg.App.Port)
	assert.Equal(t, "http://go-api:8080", cfg.Catalog.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, os.TempDir(), cfg.Report.Dir)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("CATALOG_API_URL", "http://catalog:8081")
	t.Setenv("CATALOG_TIMEOUT_SECONDS", "10")
	t.Setenv("REPORT_DIR", "/var/reports")
	t.Setenv("CORS_ORIGINS", "https://shop.example.com, https://admin.example.com")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, "http://catalog:8081", cfg.Catalog.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, "/var/reports", cfg.Report.Dir)
	assert.Equal(t, []string{"https://shop.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "not_a_number", value: "soon"},
		{name: "zero", value: "0"},
		{name: "negative", value: "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CATALOG_TIMEOUT_SECONDS", tt.value)

			_, err := Load("")
			assert.Error(t, err)
		})
	}
}
