package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/mealdeck/backend/config"
	"github.com/pageza/mealdeck/backend/internal/api"
	"github.com/pageza/mealdeck/backend/internal/database"
	"github.com/pageza/mealdeck/backend/internal/logging"
	"github.com/pageza/mealdeck/backend/internal/mealdb"
	"github.com/pageza/mealdeck/backend/internal/middleware"
	"github.com/pageza/mealdeck/backend/internal/recommend"
	"github.com/pageza/mealdeck/backend/internal/router"
	"github.com/pageza/mealdeck/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	redis  *redis.Client
}

// New opens the database, migrates it, and wires every service and handler
// onto a router. Redis and S3 are optional and only logged when unavailable.
func New(cfg *config.Config) (*Server, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	var rdb *redis.Client
	if cfg.RedisEnabled() {
		rdb, err = database.NewRedisClient(cfg)
		if err != nil {
			logging.Warn().Err(err).Msg("Redis unavailable; listing cache and rate limiting disabled")
			rdb = nil
		}
	}

	s, err := newServer(cfg, db, rdb)
	if err != nil {
		if rdb != nil {
			rdb.Close()
		}
		database.Close(db)
		return nil, err
	}
	return s, nil
}

func newServer(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*Server, error) {
	client, err := mealdb.NewClient(mealdb.Config{
		BaseURL: cfg.MealDBBaseURL,
		Timeout: cfg.MealDBTimeout,
	})
	if err != nil {
		return nil, err
	}
	lookup := mealdb.NewCachedLookup(client, rdb, mealdb.CacheConfig{
		DetailSize: cfg.MealDBDetailCacheSize,
		DetailTTL:  cfg.MealDBDetailCacheTTL,
		ListingTTL: cfg.MealDBListingCacheTTL,
	})

	engine := recommend.NewEngine(lookup,
		recommend.WithMaxResults(cfg.RecommendationMaxResults),
		recommend.WithFallbackCategory(cfg.FallbackCategory),
	)

	var store service.ObjectStore
	if cfg.S3Bucket != "" {
		s3cfg, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			logging.Warn().Err(err).Msg("S3 unavailable; profile picture uploads disabled")
		} else {
			store = s3cfg
		}
	}

	authService := service.NewAuthService(db, cfg.JWTSecret, cfg.JWTTokenTTL)
	favoritesService := service.NewFavoritesService(db, lookup)
	recommendationService := service.NewRecommendationService(favoritesService, engine, cfg.SessionCacheSize, cfg.RecommendationMemoTTL)
	favoritesService.SetListener(recommendationService)
	ratingService := service.NewRatingService(db)

	handlers := &api.Handlers{
		Health:          api.NewHealthHandler(db),
		Auth:            api.NewAuthHandler(authService, recommendationService),
		Recipes:         api.NewRecipeHandler(lookup, ratingService, favoritesService),
		Favorites:       api.NewFavoritesHandler(favoritesService, lookup),
		Notes:           api.NewNotesHandler(service.NewNotesService(db)),
		Ratings:         api.NewRatingHandler(ratingService),
		Profile:         api.NewProfileHandler(service.NewProfileService(db, store)),
		Recommendations: api.NewRecommendationHandler(recommendationService),
	}

	var limiter *middleware.RateLimiter
	if rdb != nil {
		limiter = middleware.NewRecommendationRateLimiter(rdb, cfg.RecommendationRateLimit)
	}

	r := router.SetupRouter(cfg, handlers, authService, limiter)

	return &Server{
		cfg:    cfg,
		router: r,
		db:     db,
		redis:  rdb,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	logging.Info().Str("addr", s.http.Addr).Msg("Starting HTTP server")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and closes its connections.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	if s.redis != nil {
		if cerr := s.redis.Close(); cerr != nil {
			logging.Warn().Err(cerr).Msg("failed to close Redis client")
		}
	}
	if cerr := database.Close(s.db); cerr != nil {
		logging.Warn().Err(cerr).Msg("failed to close database")
	}
	return err
}
