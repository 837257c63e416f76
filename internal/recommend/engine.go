// Package recommend ranks recipes for a user from the recipes they have
// favorited.
//
// Preferences are derived by counting the categories and ingredients of the
// favorites. Candidates are gathered from the top categories and top
// ingredients, scored against those preferences, and returned best first.
// Users without favorites get a fixed fallback category instead.
package recommend

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pageza/mealdeck/backend/internal/logging"
	"github.com/pageza/mealdeck/backend/internal/types"
)

const (
	DefaultMaxResults       = 10
	DefaultFallbackCategory = "Seafood"

	topCategories  = 3
	topIngredients = 5

	categoryMatchScore   = 5
	ingredientMatchScore = 2
)

// Lookup is the subset of the recipe lookup service the engine needs.
// RecipeByID may return a nil detail or an error for a miss; both are
// treated the same.
type Lookup interface {
	RecipesByCategory(ctx context.Context, category string) ([]types.Recipe, error)
	RecipesByIngredient(ctx context.Context, ingredient string) ([]types.Recipe, error)
	RecipeByID(ctx context.Context, id string) (*types.RecipeDetail, error)
}

// Result is a ranked recommendation list. Default is set when the list came
// from the fallback category rather than from the user's favorites.
type Result struct {
	Recipes []types.Recipe
	Default bool
	// Candidates is the size of the scored pool. Zero for default results.
	Candidates int
}

// Engine computes recommendations. It holds no per-user state and is safe
// for concurrent use.
type Engine struct {
	lookup           Lookup
	maxResults       int
	fallbackCategory string
	logger           zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxResults sets the result cap used when a caller passes a
// non-positive limit.
func WithMaxResults(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxResults = n
		}
	}
}

// WithFallbackCategory sets the category used for users without favorites.
func WithFallbackCategory(c string) Option {
	return func(e *Engine) {
		if strings.TrimSpace(c) != "" {
			e.fallbackCategory = c
		}
	}
}

func NewEngine(lookup Lookup, opts ...Option) *Engine {
	e := &Engine{
		lookup:           lookup,
		maxResults:       DefaultMaxResults,
		fallbackCategory: DefaultFallbackCategory,
		logger:           logging.Component("recommend"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxResults returns the default result cap.
func (e *Engine) MaxResults() int { return e.maxResults }

func (e *Engine) limit(maxResults int) int {
	if maxResults <= 0 {
		return e.maxResults
	}
	return maxResults
}

// Compute returns at most maxResults recommendations for favorites. A
// non-positive maxResults selects the engine default.
//
// Lookup failures are logged and skipped. The only error returned is the
// context's, once it is done.
func (e *Engine) Compute(ctx context.Context, favorites []types.Recipe, maxResults int) (Result, error) {
	limit := e.limit(maxResults)

	if len(favorites) == 0 {
		recipes, err := e.DefaultRecommendations(ctx, limit)
		if err != nil {
			return Result{}, err
		}
		return Result{Recipes: recipes, Default: true}, nil
	}

	prefs, err := e.AnalyzePreferences(ctx, favorites)
	if err != nil {
		return Result{}, err
	}

	pool, err := e.GatherCandidates(ctx, prefs, favorites)
	if err != nil {
		return Result{}, err
	}

	return Result{Recipes: Rank(pool, prefs, limit), Candidates: pool.Len()}, nil
}

// AnalyzePreferences counts the categories and ingredients of favorites and
// ranks them by descending count. Equal counts keep first-seen order.
// One detail lookup is made per favorite.
func (e *Engine) AnalyzePreferences(ctx context.Context, favorites []types.Recipe) (types.UserPreferences, error) {
	categories := newCounter()
	ingredients := newCounter()

	for _, fav := range favorites {
		if strings.TrimSpace(fav.Category) != "" {
			categories.add(fav.Category)
		}

		detail, err := e.detail(ctx, fav.ID)
		if err != nil {
			return types.UserPreferences{}, err
		}
		for _, name := range detail.IngredientNames() {
			ingredients.add(name)
		}
	}

	return types.UserPreferences{
		FavoriteCategories:  categories.ranked(),
		FavoriteIngredients: ingredients.ranked(),
	}, nil
}

// Pool is an ordered set of candidate details keyed by recipe id. Order is
// the order in which candidates were discovered.
type Pool struct {
	ids     []string
	details map[string]*types.RecipeDetail
}

func newPool() *Pool {
	return &Pool{details: make(map[string]*types.RecipeDetail)}
}

func (p *Pool) add(d *types.RecipeDetail) {
	p.ids = append(p.ids, d.ID)
	p.details[d.ID] = d
}

// Has reports whether id is in the pool.
func (p *Pool) Has(id string) bool {
	_, ok := p.details[id]
	return ok
}

// Len returns the number of candidates.
func (p *Pool) Len() int { return len(p.ids) }

// Details returns the candidates in discovery order.
func (p *Pool) Details() []*types.RecipeDetail {
	out := make([]*types.RecipeDetail, 0, len(p.ids))
	for _, id := range p.ids {
		out = append(out, p.details[id])
	}
	return out
}

// GatherCandidates collects details for recipes in the top categories, then
// the top ingredients, of prefs. Recipes in excluding are skipped. Pool
// membership is checked before each detail lookup, so no recipe is fetched
// twice.
func (e *Engine) GatherCandidates(ctx context.Context, prefs types.UserPreferences, excluding []types.Recipe) (*Pool, error) {
	excluded := make(map[string]struct{}, len(excluding))
	for _, r := range excluding {
		excluded[r.ID] = struct{}{}
	}
	pool := newPool()

	for _, category := range head(prefs.FavoriteCategories, topCategories) {
		listing, err := e.lookup.RecipesByCategory(ctx, category)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			e.logger.Warn().Err(err).Str("category", category).Msg("skipping category")
			continue
		}
		if err := e.collect(ctx, pool, listing, excluded); err != nil {
			return nil, err
		}
	}

	for _, ingredient := range head(prefs.FavoriteIngredients, topIngredients) {
		listing, err := e.lookup.RecipesByIngredient(ctx, ingredient)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			e.logger.Warn().Err(err).Str("ingredient", ingredient).Msg("skipping ingredient")
			continue
		}
		if err := e.collect(ctx, pool, listing, excluded); err != nil {
			return nil, err
		}
	}

	return pool, nil
}

func (e *Engine) collect(ctx context.Context, pool *Pool, listing []types.Recipe, excluded map[string]struct{}) error {
	for _, r := range listing {
		if _, skip := excluded[r.ID]; skip || pool.Has(r.ID) {
			continue
		}
		detail, err := e.detail(ctx, r.ID)
		if err != nil {
			return err
		}
		if detail == nil {
			continue
		}
		if detail.ID != r.ID {
			d := *detail
			d.ID = r.ID
			detail = &d
		}
		pool.add(detail)
	}
	return nil
}

// detail fetches a recipe detail. Misses and lookup failures yield a nil
// detail; only a done context yields an error.
func (e *Engine) detail(ctx context.Context, id string) (*types.RecipeDetail, error) {
	d, err := e.lookup.RecipeByID(ctx, id)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		e.logger.Debug().Err(err).Str("recipe_id", id).Msg("skipping recipe detail")
		return nil, nil
	}
	return d, nil
}

// Score rates detail against prefs: 5 if its category is any preferred
// category, plus 2 per distinct ingredient that is also a preferred
// ingredient.
func Score(detail *types.RecipeDetail, prefs types.UserPreferences) int {
	score := 0
	if detail.Category != "" && slices.Contains(prefs.FavoriteCategories, detail.Category) {
		score += categoryMatchScore
	}

	preferred := make(map[string]struct{}, len(prefs.FavoriteIngredients))
	for _, ing := range prefs.FavoriteIngredients {
		preferred[ing] = struct{}{}
	}
	matched := make(map[string]struct{})
	for _, name := range detail.IngredientNames() {
		if _, ok := preferred[name]; ok {
			matched[name] = struct{}{}
		}
	}
	return score + ingredientMatchScore*len(matched)
}

// Rank scores every candidate in pool, orders them by descending score with
// ties in discovery order, and returns the first limit as summaries.
func Rank(pool *Pool, prefs types.UserPreferences, limit int) []types.Recipe {
	type scored struct {
		recipe types.Recipe
		score  int
	}
	candidates := make([]scored, 0, pool.Len())
	for _, d := range pool.Details() {
		candidates = append(candidates, scored{recipe: d.ToRecipe(), score: Score(d, prefs)})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if limit >= 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]types.Recipe, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.recipe)
	}
	return out
}

// DefaultRecommendations returns up to maxResults recipes from the fallback
// category in listing order. No scoring is applied.
func (e *Engine) DefaultRecommendations(ctx context.Context, maxResults int) ([]types.Recipe, error) {
	limit := e.limit(maxResults)

	listing, err := e.lookup.RecipesByCategory(ctx, e.fallbackCategory)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		e.logger.Warn().Err(err).Str("category", e.fallbackCategory).Msg("fallback category unavailable")
		return []types.Recipe{}, nil
	}

	hint := min(limit, len(listing))
	out := make([]types.Recipe, 0, hint)
	seen := make(map[string]struct{}, hint)
	for _, r := range listing {
		if len(out) >= limit {
			break
		}
		if _, dup := seen[r.ID]; dup {
			continue
		}
		detail, err := e.detail(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		if detail == nil {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, detail.ToRecipe())
	}
	return out, nil
}

// IsCanceled reports whether err came from a done context.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// counter counts keys and remembers first-seen order.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

func (c *counter) ranked() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	sort.SliceStable(out, func(i, j int) bool {
		return c.counts[out[i]] > c.counts[out[j]]
	})
	return out
}
