// nolint: funlen
package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-catalog/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("loads config from environment variables", func(t *testing.T) {
		envVars := map[string]string{
			"GO_ENV":            "test",
			"SERVER_PORT":       "9090",
			"SERVER_RATE_LIMIT": "0",
			"DB_HOST":           "db.internal",
			"DB_PORT":           "6543",
			"DB_USER":           "catalog",
			"DB_PASSWORD":       "secret",
			"DB_NAME":           "catalog_test",
			"DB_QUERY_TIMEOUT":  "3s",
			"AUTH_JWT_SECRET":   "0123456789abcdef0123456789abcdef",
			"AUTH_TOKEN_TTL":    "1h",
			"AWS_ENDPOINT":      "minio:9000",
			"AWS_USE_SSL":       "false",
		}
		for key, value := range envVars {
			t.Setenv(key, value)
		}

		cfg, err := config.Load()

		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "test", cfg.Env)
		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, 0, cfg.Server.RateLimit)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "6543", cfg.Database.Port)
		assert.Equal(t, "catalog", cfg.Database.User)
		assert.Equal(t, "secret", cfg.Database.Password)
		assert.Equal(t, "catalog_test", cfg.Database.DBName)
		assert.Equal(t, 3*time.Second, cfg.Database.QueryTimeout)
		assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
		assert.Equal(t, "minio:9000", cfg.MinIO.Endpoint)
		assert.False(t, cfg.MinIO.UseSSL)
		assert.False(t, cfg.MinIO.Enabled())
		assert.NoError(t, cfg.Validate())
	})

	t.Run("applies defaults", func(t *testing.T) {
		cfg, err := config.Load()

		require.NoError(t, err)
		assert.Equal(t, "8010", cfg.Server.Port)
		assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 720*time.Hour, cfg.Auth.TokenTTL)
		assert.Equal(t, "posters", cfg.MinIO.BucketName)
	})

	t.Run("handles invalid duration", func(t *testing.T) {
		t.Setenv("DB_QUERY_TIMEOUT", "soon")

		cfg, err := config.Load()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})

	t.Run("handles invalid boolean value", func(t *testing.T) {
		t.Setenv("AWS_USE_SSL", "not-a-boolean")

		cfg, err := config.Load()

		assert.Error(t, err)
		assert.Nil(t, cfg)
	})
}

func TestValidate(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	cfg.Auth.JWTSecret = ""
	assert.ErrorContains(t, cfg.Validate(), "AUTH_JWT_SECRET is required")

	cfg.Auth.JWTSecret = "short"
	assert.ErrorContains(t, cfg.Validate(), "at least 32 characters")

	cfg.Auth.JWTSecret = "0123456789abcdef0123456789abcdef"
	assert.NoError(t, cfg.Validate())
}

func TestWarnings(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	cfg.MinIO.Endpoint = "minio:9000"
	cfg.Sentry.DSN = "https://key@sentry.example/1"
	warnings := cfg.Warnings()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "partially configured")

	cfg.MinIO.AccessKeyID = "id"
	cfg.MinIO.SecretAccessKey = "key"
	assert.Empty(t, cfg.Warnings())
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "envs"), 0o755))

	t.Run("missing files return an error", func(t *testing.T) {
		_, err := config.LoadEnvFiles(dir)
		assert.Error(t, err)
	})

	t.Run("prefers the GO_ENV specific file", func(t *testing.T) {
		t.Setenv("GO_ENV", "staging")
		t.Setenv("CATALOG_TEST_MARKER", "")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "envs", ".env.staging"), []byte("CATALOG_TEST_MARKER=staging\n"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "envs", ".env"), []byte("CATALOG_TEST_MARKER=default\n"), 0o600))
		// godotenv does not override variables that are already set.
		require.NoError(t, os.Unsetenv("CATALOG_TEST_MARKER"))

		loaded, err := config.LoadEnvFiles(dir)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "envs", ".env.staging"), loaded)
		assert.Equal(t, "staging", os.Getenv("CATALOG_TEST_MARKER"))
		require.NoError(t, os.Unsetenv("CATALOG_TEST_MARKER"))
	})
}
