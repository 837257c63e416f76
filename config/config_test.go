package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate clears the variables LoadConfig reads and points SECRETS_DIR at an
// empty directory.
func isolate(t *testing.T) string {
	t.Helper()
	for _, key := range []string{
		"CI", "ENV", "DB_DRIVER", "DB_HOST", "DB_PASSWORD", "JWT_SECRET", "REDIS_HOST", "REDIS_URL",
		"TEST_DB_PASSWORD", "TEST_JWT_SECRET", "LOG_LEVEL", "LOG_FORMAT", "MEALDB_TIMEOUT",
		"RECOMMENDATION_MAX_RESULTS", "RECOMMENDATION_FALLBACK_CATEGORY", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	dir := t.TempDir()
	t.Setenv("SECRETS_DIR", dir)
	return dir
}

func writeSecret(t *testing.T, dir, name, value string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(value+"\n"), 0o600))
}

func TestGetEnvironment(t *testing.T) {
	isolate(t)
	assert.Equal(t, Development, GetEnvironment())

	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())
	assert.True(t, IsProduction())

	t.Setenv("ENV", "test")
	assert.True(t, IsTest())

	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
}

func TestLoadConfigDevelopmentDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Development, cfg.Environment)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "postgres", cfg.DBPassword)
	assert.Equal(t, "dev-secret-change-me", cfg.JWTSecret)
	assert.Equal(t, 10, cfg.RecommendationMaxResults)
	assert.Equal(t, "Seafood", cfg.FallbackCategory)
	assert.Equal(t, 10*time.Second, cfg.MealDBTimeout)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.False(t, cfg.RedisEnabled())
}

func TestLoadConfigSecretsOverrideEnv(t *testing.T) {
	dir := isolate(t)
	t.Setenv("JWT_SECRET", "from-env")
	writeSecret(t, dir, "jwt_secret", "from-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-secret", cfg.JWTSecret)
}

func TestLoadConfigParsesTypedValues(t *testing.T) {
	isolate(t)
	t.Setenv("MEALDB_TIMEOUT", "45")
	t.Setenv("RECOMMENDATION_MAX_RESULTS", "25")
	t.Setenv("RECOMMENDATION_FALLBACK_CATEGORY", "Vegetarian")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("REDIS_HOST", "cache")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.MealDBTimeout)
	assert.Equal(t, 25, cfg.RecommendationMaxResults)
	assert.Equal(t, "Vegetarian", cfg.FallbackCategory)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.RedisEnabled())
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	isolate(t)
	t.Setenv("RECOMMENDATION_MAX_RESULTS", "500")
	t.Setenv("LOG_FORMAT", "xml")
	t.Setenv("DB_DRIVER", "mysql")

	_, err := LoadConfig()
	require.Error(t, err)
	msg := err.Error()
	assert.True(t, strings.Contains(msg, "RecommendationMaxResults"), msg)
	assert.True(t, strings.Contains(msg, "LogFormat"), msg)
	assert.True(t, strings.Contains(msg, "DBDriver"), msg)
}

func TestLoadConfigCIRequiresSecrets(t *testing.T) {
	isolate(t)
	t.Setenv("CI", "true")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TEST_DB_PASSWORD")

	t.Setenv("TEST_DB_PASSWORD", "pw")
	t.Setenv("TEST_JWT_SECRET", "ci-secret")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "pw", cfg.DBPassword)
	assert.Equal(t, "ci-secret", cfg.JWTSecret)
}

func TestLoadConfigProductionUsesSecretsOnly(t *testing.T) {
	dir := isolate(t)
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", strings.Repeat("x", 40))

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret secret is required in production")

	writeSecret(t, dir, "jwt_secret", "short")
	writeSecret(t, dir, "db_password", "pw")
	_, err = LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 characters")

	writeSecret(t, dir, "jwt_secret", strings.Repeat("s", 32))
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "pw", cfg.DBPassword)
	assert.Equal(t, "json", cfg.LogFormat)
}
