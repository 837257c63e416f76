package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealdeck/backend/internal/types"
)

type stubValidator map[string]*types.TokenClaims

func (v stubValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	if c, ok := v[token]; ok {
		return c, nil
	}
	return nil, errors.New("bad token")
}

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	v := stubValidator{"good": {UserID: userID, Anonymous: true}}

	r := gin.New()
	r.GET("/me", AuthMiddleware(v), func(c *gin.Context) {
		id, ok := UserID(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": id, "anonymous": c.GetBool(ContextAnonymous)})
	})

	w := serve(r, http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"missing authorization header"}`, w.Body.String())

	w = serve(r, http.MethodGet, "/me", http.Header{"Authorization": {"Token good"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, http.MethodGet, "/me", http.Header{"Authorization": {"Bearer bad"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, http.MethodGet, "/me", http.Header{"Authorization": {"Bearer good"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"user_id":%q,"anonymous":true}`, userID), w.Body.String())
}

func TestOptionalAuth(t *testing.T) {
	userID := uuid.New()
	v := stubValidator{"good": {UserID: userID}}

	r := gin.New()
	r.GET("/x", OptionalAuth(v), func(c *gin.Context) {
		_, ok := UserID(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok})
	})

	w := serve(r, http.MethodGet, "/x", nil)
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())
	w = serve(r, http.MethodGet, "/x", http.Header{"Authorization": {"Bearer bad"}})
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())
	w = serve(r, http.MethodGet, "/x", http.Header{"Authorization": {"Bearer good"}})
	assert.JSONEq(t, `{"authenticated":true}`, w.Body.String())
}

func TestRecoveryReturnsJSON(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(), Recovery())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	r.NoRoute(NotFound)

	w := serve(r, http.MethodGet, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())

	w = serve(r, http.MethodGet, "/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"not found"}`, w.Body.String())
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := serve(r, http.MethodGet, "/ok", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = serve(r, http.MethodGet, "/ok", http.Header{"X-Request-ID": {"abc"}})
	assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:3000"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodOptions, "/x", http.Header{
		"Origin":                        {"http://localhost:3000"},
		"Access-Control-Request-Method": {"GET"},
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, http.MethodGet, "/x", http.Header{"Origin": {"http://evil.example"}})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRateLimiterWithoutRedisPassesThrough(t *testing.T) {
	rl := NewRecommendationRateLimiter(nil, 1)
	r := gin.New()
	r.GET("/x", rl.RateLimitMiddleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/x", nil).Code)
	}
}

func TestRateLimiterWithRedis(t *testing.T) {
	if os.Getenv("REDIS_HOST") == "" {
		t.Skip("Skipping Redis-dependent test - REDIS_HOST not set")
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}
	rdb := redis.NewClient(&redis.Options{Addr: os.Getenv("REDIS_HOST") + ":" + port})
	t.Cleanup(func() { rdb.Close() })

	userID := uuid.New()
	rl := NewRateLimiter(rdb, RateLimitConfig{Window: time.Minute, Limit: 2, KeyPrefix: "rate_limit:test"})
	r := gin.New()
	r.GET("/x", AuthMiddleware(stubValidator{"t": {UserID: userID}}), rl.RateLimitMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	h := http.Header{"Authorization": {"Bearer t"}}

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/x", h).Code)
	w := serve(r, http.MethodGet, "/x", h)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	w = serve(r, http.MethodGet, "/x", h)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}
