package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://data.example.com/normals"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATA_BASE_URL", testBaseURL)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, testBaseURL, cfg.DataBaseURL)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.WarmOnStart)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("DATA_BASE_URL", testBaseURL+"/")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("WARM_ON_START", "true")
	t.Setenv("CORS_ORIGINS", "https://atlas.example.com, https://staging.example.com")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, testBaseURL, cfg.DataBaseURL, "trailing slash is trimmed")
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.WarmOnStart)
	assert.Equal(t, []string{"https://atlas.example.com", "https://staging.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_MissingBaseURL(t *testing.T) {
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATA_BASE_URL")
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("DATA_BASE_URL", testBaseURL)
	t.Setenv("FETCH_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FETCH_TIMEOUT")
}
