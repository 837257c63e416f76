package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const defaultSecretsDir = "/run/secrets"

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost  string   `validate:"required"`
	ServerPort  string   `validate:"required,numeric"`
	CORSOrigins []string `validate:"dive,required"`

	// Database configuration
	DBDriver   string `validate:"oneof=postgres sqlite"`
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string
	// MigrationsDir holds the postgres .sql migrations
	MigrationsDir string

	// Redis configuration. Redis is optional; without it listings are not
	// cached and the recommendation rate limit is off.
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int `validate:"min=0,max=15"`
	RedisURL      string

	// JWT configuration
	JWTSecret   string        `validate:"required"`
	JWTTokenTTL time.Duration `validate:"min=1m"`

	// Recipe lookup service
	MealDBBaseURL         string        `validate:"required,url"`
	MealDBTimeout         time.Duration `validate:"min=100ms"`
	MealDBDetailCacheSize int           `validate:"min=1"`
	MealDBDetailCacheTTL  time.Duration `validate:"min=1s"`
	MealDBListingCacheTTL time.Duration `validate:"min=1s"`

	// Recommendations
	RecommendationMaxResults int           `validate:"min=1,max=50"`
	FallbackCategory         string        `validate:"required"`
	RecommendationMemoTTL    time.Duration `validate:"min=1s"`
	SessionCacheSize         int           `validate:"min=1"`
	RecommendationRateLimit  int           `validate:"min=0"`

	// Logging
	LogLevel  string `validate:"oneof=trace debug info warn warning error disabled off"`
	LogFormat string `validate:"oneof=json console"`

	// Profile picture storage. Uploads are disabled when S3Bucket is empty.
	S3Bucket  string
	AWSRegion string
}

// LoadConfig builds the configuration for the current environment from an
// optional .env file, environment variables and Docker secrets.
func LoadConfig() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	env := GetEnvironment()
	cfg := loadBase(env)

	var err error
	switch env {
	case CI:
		err = loadCIConfig(cfg)
	case Development, Test:
		err = loadDevConfig(cfg)
	case Production:
		err = loadProdConfig(cfg)
	default:
		err = fmt.Errorf("unknown environment: %s", env)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// loadBase reads the non-sensitive settings shared by every environment.
func loadBase(env Environment) *Config {
	defaultFormat := "json"
	if env == Development {
		defaultFormat = "console"
	}

	return &Config{
		Environment: env,

		ServerHost:  getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		CORSOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBName:     getEnv("DB_NAME", "mealdeck"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "mealdeck.db"),

		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),

		RedisHost: getEnv("REDIS_HOST", ""),
		RedisPort: getEnv("REDIS_PORT", "6379"),
		RedisDB:   getEnvAsInt("REDIS_DB", 0),
		RedisURL:  getEnv("REDIS_URL", ""),

		JWTTokenTTL: getEnvAsDuration("JWT_TOKEN_TTL", 24*time.Hour),

		MealDBBaseURL:         getEnv("MEALDB_BASE_URL", "https://www.themealdb.com/api/json/v1/1/"),
		MealDBTimeout:         getEnvAsDuration("MEALDB_TIMEOUT", 10*time.Second),
		MealDBDetailCacheSize: getEnvAsInt("MEALDB_DETAIL_CACHE_SIZE", 2000),
		MealDBDetailCacheTTL:  getEnvAsDuration("MEALDB_DETAIL_CACHE_TTL", time.Hour),
		MealDBListingCacheTTL: getEnvAsDuration("MEALDB_LISTING_CACHE_TTL", 6*time.Hour),

		RecommendationMaxResults: getEnvAsInt("RECOMMENDATION_MAX_RESULTS", 10),
		FallbackCategory:         getEnv("RECOMMENDATION_FALLBACK_CATEGORY", "Seafood"),
		RecommendationMemoTTL:    getEnvAsDuration("RECOMMENDATION_MEMO_TTL", 30*time.Minute),
		SessionCacheSize:         getEnvAsInt("RECOMMENDATION_SESSION_CACHE_SIZE", 10000),
		RecommendationRateLimit:  getEnvAsInt("RECOMMENDATION_RATE_LIMIT", 60),

		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", defaultFormat)),

		S3Bucket:  getEnv("S3_BUCKET_NAME", ""),
		AWSRegion: getEnv("AWS_REGION", "us-east-1"),
	}
}

// loadCIConfig takes sensitive values from the CI runner's secrets, exposed
// as TEST_* environment variables.
func loadCIConfig(cfg *Config) error {
	cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
	if cfg.DBPassword == "" && cfg.DBDriver == DriverPostgres {
		return fmt.Errorf("TEST_DB_PASSWORD environment variable is required in CI environment")
	}
	cfg.JWTSecret = os.Getenv("TEST_JWT_SECRET")
	cfg.RedisPassword = os.Getenv("TEST_REDIS_PASSWORD")
	if url := os.Getenv("TEST_REDIS_URL"); url != "" {
		cfg.RedisURL = url
	}
	return nil
}

// loadDevConfig prefers Docker secrets, then environment variables, then
// local defaults.
func loadDevConfig(cfg *Config) error {
	cfg.DBPassword = secretOrEnv("db_password", "DB_PASSWORD", "postgres")
	cfg.JWTSecret = secretOrEnv("jwt_secret", "JWT_SECRET", "dev-secret-change-me")
	cfg.RedisPassword = secretOrEnv("redis_password", "REDIS_PASSWORD", "")
	if user := readSecret("db_user"); user != "" {
		cfg.DBUser = user
	}
	return nil
}

// loadProdConfig reads sensitive values from Docker secrets only.
func loadProdConfig(cfg *Config) error {
	cfg.DBPassword = readSecret("db_password")
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.RedisPassword = readSecret("redis_password")
	if user := readSecret("db_user"); user != "" {
		cfg.DBUser = user
	}
	if url := readSecret("redis_url"); url != "" {
		cfg.RedisURL = url
	}
	return nil
}

// RedisEnabled reports whether a Redis endpoint is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.ServerHost, c.ServerPort)
}

func secretsDir() string {
	if dir := os.Getenv("SECRETS_DIR"); dir != "" {
		return dir
	}
	return defaultSecretsDir
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	data, err := os.ReadFile(filepath.Join(secretsDir(), name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func secretOrEnv(secret, key, defaultValue string) string {
	if v := readSecret(secret); v != "" {
		return v
	}
	return getEnv(key, defaultValue)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("90s") or bare seconds ("90").
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
