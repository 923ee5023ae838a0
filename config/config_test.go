package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, "goginie.db", cfg.SQLitePath)
	assert.Equal(t, "gemini", cfg.AIProvider)
	assert.Equal(t, 30*time.Second, cfg.AITimeout)
	assert.Equal(t, 0.7, cfg.AITemperature)
	assert.Equal(t, "test", cfg.AmadeusEnv)
	assert.Empty(t, cfg.RailwayEndpoints)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "POSTGRES")
	t.Setenv("AI_PROVIDER", "huggingface")
	t.Setenv("AI_TIMEOUT", "5s")
	t.Setenv("FRONTEND_URL", "https://goginie.app, https://staging.goginie.app ,")
	t.Setenv("RAILWAY_ENDPOINTS", "https://rail-a.example,https://rail-b.example")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.Equal(t, "huggingface", cfg.AIProvider)
	assert.Equal(t, 5*time.Second, cfg.AITimeout)
	assert.Equal(t, []string{"https://goginie.app", "https://staging.goginie.app"}, cfg.FrontendURLs)
	assert.Equal(t, []string{"https://rail-a.example", "https://rail-b.example"}, cfg.RailwayEndpoints)
}

func TestLoad_UnknownValuesFallBack(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("AI_PROVIDER", "oracle")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, "gemini", cfg.AIProvider)
}

func TestLoad_GoogleAPIKeyAlias(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "google-key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "google-key", cfg.GeminiAPIKey)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goginie.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "7070"
sqlite_path: /tmp/trips.db
gemini_model: gemini-2.5-flash
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "/tmp/trips.db", cfg.SQLitePath)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "goginie", DBSSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=goginie sslmode=disable", cfg.PostgresDSN())

	cfg.DatabaseURL = "postgres://u:p@db/goginie"
	assert.Equal(t, "postgres://u:p@db/goginie", cfg.PostgresDSN())
}
