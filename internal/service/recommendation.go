package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/pageza/mealdeck/backend/internal/logging"
	"github.com/pageza/mealdeck/backend/internal/metrics"
	"github.com/pageza/mealdeck/backend/internal/recommend"
	"github.com/pageza/mealdeck/backend/internal/types"
)

// FavoritesLister returns a user's favorites.
type FavoritesLister interface {
	List(ctx context.Context, userID uuid.UUID) ([]types.Recipe, error)
}

// RecommendationService runs the recommendation engine once per request and
// keeps one memo per user. At most one computation runs per user at a time.
type RecommendationService struct {
	favorites FavoritesLister
	engine    *recommend.Engine
	memos     *expirable.LRU[uuid.UUID, *recommend.Memo]

	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
}

var (
	_ IRecommendationService = (*RecommendationService)(nil)
	_ ChangeListener         = (*RecommendationService)(nil)
)

func NewRecommendationService(favorites FavoritesLister, engine *recommend.Engine, sessions int, memoTTL time.Duration) *RecommendationService {
	if sessions <= 0 {
		sessions = 10000
	}
	return &RecommendationService{
		favorites: favorites,
		engine:    engine,
		memos:     expirable.NewLRU[uuid.UUID, *recommend.Memo](sessions, nil, memoTTL),
		inFlight:  make(map[uuid.UUID]struct{}),
	}
}

// begin marks a computation for userID as running. It reports false when
// one already is.
func (s *RecommendationService) begin(userID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[userID]; busy {
		return false
	}
	s.inFlight[userID] = struct{}{}
	return true
}

func (s *RecommendationService) end(userID uuid.UUID) {
	s.mu.Lock()
	delete(s.inFlight, userID)
	s.mu.Unlock()
}

func (s *RecommendationService) running() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inFlight)
}

// Recommend returns up to limit recommendations for the user. A non-positive
// limit selects the configured default. A second call for the same user
// while one is running fails with ErrRecommendationInProgress.
func (s *RecommendationService) Recommend(ctx context.Context, userID uuid.UUID, limit int) (*types.RecommendationsResponse, error) {
	if !s.begin(userID) {
		return nil, ErrRecommendationInProgress
	}
	defer s.end(userID)

	logger := logging.Ctx(ctx).With().Str("user_id", userID.String()).Logger()

	favorites, err := s.favorites.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}

	memo, ok := s.memos.Get(userID)
	if !ok {
		memo = &recommend.Memo{}
	}

	start := time.Now()
	res, cached, err := s.engine.ComputeWithMemo(ctx, memo, favorites, limit)
	if err != nil {
		if recommend.IsCanceled(err) {
			logger.Debug().Err(err).Msg("recommendation computation abandoned")
		}
		return nil, err
	}
	s.memos.Add(userID, memo)

	switch {
	case cached:
		metrics.RecommendationsTotal.WithLabelValues(metrics.KindCached).Inc()
	case res.Default:
		metrics.RecommendationsTotal.WithLabelValues(metrics.KindDefault).Inc()
		metrics.RecommendationDuration.Observe(time.Since(start).Seconds())
	default:
		metrics.RecommendationsTotal.WithLabelValues(metrics.KindPersonalized).Inc()
		metrics.RecommendationCandidates.Observe(float64(res.Candidates))
		metrics.RecommendationDuration.Observe(time.Since(start).Seconds())
	}

	logger.Info().
		Int("favorites", len(favorites)).
		Int("results", len(res.Recipes)).
		Bool("default", res.Default).
		Bool("cached", cached).
		Dur("elapsed", time.Since(start)).
		Msg("recommendations served")

	recipes := res.Recipes
	if recipes == nil {
		recipes = []types.Recipe{}
	}
	return &types.RecommendationsResponse{Recipes: recipes, Default: res.Default, Cached: cached}, nil
}

// Forget drops the user's memo.
func (s *RecommendationService) Forget(userID uuid.UUID) {
	s.memos.Remove(userID)
}

// FavoritesChanged implements ChangeListener.
func (s *RecommendationService) FavoritesChanged(userID uuid.UUID) {
	s.Forget(userID)
}
