package mealdb

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/pageza/mealdeck/backend/internal/logging"
	"github.com/pageza/mealdeck/backend/internal/metrics"
	"github.com/pageza/mealdeck/backend/internal/types"
)

// Lookup is the full set of recipe lookup operations.
type Lookup interface {
	Categories(ctx context.Context) ([]types.Category, error)
	Ingredients(ctx context.Context) ([]types.IngredientInfo, error)
	RecipesByCategory(ctx context.Context, category string) ([]types.Recipe, error)
	RecipesByIngredient(ctx context.Context, ingredient string) ([]types.Recipe, error)
	RecipesByName(ctx context.Context, name string) ([]types.RecipeDetail, error)
	RecipeByID(ctx context.Context, id string) (*types.RecipeDetail, error)
}

var _ Lookup = (*Client)(nil)
var _ Lookup = (*CachedLookup)(nil)

const keyPrefix = "mealdb:"

// CacheConfig sizes the caches of a CachedLookup.
type CacheConfig struct {
	DetailSize int
	DetailTTL  time.Duration
	ListingTTL time.Duration
}

// CachedLookup keeps recipe details in process and listings in Redis.
// Name searches are not cached. A nil Redis client disables listing caching.
type CachedLookup struct {
	next       Lookup
	details    *expirable.LRU[string, types.RecipeDetail]
	redis      *redis.Client
	listingTTL time.Duration
	logger     zerolog.Logger
}

// NewCachedLookup wraps next with caching.
func NewCachedLookup(next Lookup, rdb *redis.Client, cfg CacheConfig) *CachedLookup {
	size := cfg.DetailSize
	if size <= 0 {
		size = 1000
	}
	ttl := cfg.DetailTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	listingTTL := cfg.ListingTTL
	if listingTTL <= 0 {
		listingTTL = 6 * time.Hour
	}
	return &CachedLookup{
		next:       next,
		details:    expirable.NewLRU[string, types.RecipeDetail](size, nil, ttl),
		redis:      rdb,
		listingTTL: listingTTL,
		logger:     logging.Component("mealdb_cache"),
	}
}

// cachedListing reads key from Redis or fills it from load.
func cachedListing[T any](ctx context.Context, c *CachedLookup, endpoint, key string, load func() ([]T, error)) ([]T, error) {
	if c.redis != nil {
		raw, err := c.redis.Get(ctx, keyPrefix+key).Bytes()
		switch {
		case err == nil:
			var out []T
			if jerr := json.Unmarshal(raw, &out); jerr == nil {
				metrics.MealDBCacheHits.WithLabelValues(endpoint).Inc()
				return out, nil
			}
			c.logger.Warn().Str("key", key).Msg("discarding undecodable cache entry")
		case !errors.Is(err, redis.Nil):
			c.logger.Warn().Err(err).Str("key", key).Msg("listing cache read failed")
		}
	}

	out, err := load()
	if err != nil {
		return nil, err
	}

	if c.redis != nil {
		if raw, jerr := json.Marshal(out); jerr == nil {
			if serr := c.redis.Set(ctx, keyPrefix+key, raw, c.listingTTL).Err(); serr != nil {
				c.logger.Warn().Err(serr).Str("key", key).Msg("listing cache write failed")
			}
		}
	}
	return out, nil
}

func (c *CachedLookup) Categories(ctx context.Context) ([]types.Category, error) {
	return cachedListing(ctx, c, "categories.php", "categories", func() ([]types.Category, error) {
		return c.next.Categories(ctx)
	})
}

func (c *CachedLookup) Ingredients(ctx context.Context) ([]types.IngredientInfo, error) {
	return cachedListing(ctx, c, "list.php", "ingredients", func() ([]types.IngredientInfo, error) {
		return c.next.Ingredients(ctx)
	})
}

func (c *CachedLookup) RecipesByCategory(ctx context.Context, category string) ([]types.Recipe, error) {
	return cachedListing(ctx, c, "filter.php", "category:"+category, func() ([]types.Recipe, error) {
		return c.next.RecipesByCategory(ctx, category)
	})
}

func (c *CachedLookup) RecipesByIngredient(ctx context.Context, ingredient string) ([]types.Recipe, error) {
	return cachedListing(ctx, c, "filter.php", "ingredient:"+ingredient, func() ([]types.Recipe, error) {
		return c.next.RecipesByIngredient(ctx, ingredient)
	})
}

// RecipesByName always goes upstream but primes the detail cache.
func (c *CachedLookup) RecipesByName(ctx context.Context, name string) ([]types.RecipeDetail, error) {
	out, err := c.next.RecipesByName(ctx, name)
	if err != nil {
		return nil, err
	}
	for _, d := range out {
		c.details.Add(d.ID, d)
	}
	return out, nil
}

// RecipeByID serves from the detail cache when possible. Misses are not cached.
func (c *CachedLookup) RecipeByID(ctx context.Context, id string) (*types.RecipeDetail, error) {
	if d, ok := c.details.Get(id); ok {
		metrics.MealDBCacheHits.WithLabelValues("lookup.php").Inc()
		return &d, nil
	}
	d, err := c.next.RecipeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.details.Add(id, *d)
	return d, nil
}

// Purge drops every cached detail.
func (c *CachedLookup) Purge() {
	c.details.Purge()
}
