package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealdeck/backend/config"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Environment:              config.Test,
		ServerHost:               "localhost",
		ServerPort:               "0",
		CORSOrigins:              []string{"*"},
		DBDriver:                 config.DriverSQLite,
		SQLitePath:               filepath.Join(t.TempDir(), "server.db"),
		JWTSecret:                "test-secret",
		JWTTokenTTL:              time.Hour,
		MealDBBaseURL:            "http://127.0.0.1:1/",
		MealDBTimeout:            time.Second,
		MealDBDetailCacheSize:    10,
		MealDBDetailCacheTTL:     time.Minute,
		MealDBListingCacheTTL:    time.Minute,
		RecommendationMaxResults: 10,
		FallbackCategory:         "Seafood",
		RecommendationMemoTTL:    time.Minute,
		SessionCacheSize:         10,
		LogLevel:                 "info",
		LogFormat:                "json",
	}
}

func TestNew(t *testing.T) {
	srv, err := New(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAnonymousUserGetsProfile(t *testing.T) {
	srv, err := New(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/anonymous", nil))
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
