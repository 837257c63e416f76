// Package mealdb is a client for TheMealDB recipe lookup API.
package mealdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/pageza/mealdeck/backend/internal/logging"
	"github.com/pageza/mealdeck/backend/internal/metrics"
	"github.com/pageza/mealdeck/backend/internal/types"
)

// DefaultBaseURL is the public v1 API with the free test key.
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1/"

const breakerName = "mealdb"

var (
	// ErrNotFound is returned when a lookup by id matches no recipe.
	ErrNotFound = errors.New("recipe not found")
	// ErrUnavailable is returned when the circuit breaker rejects a call.
	ErrUnavailable = errors.New("recipe lookup service unavailable")
)

// StatusError is returned for non-2xx upstream responses.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("mealdb %s: unexpected status %d", e.Endpoint, e.StatusCode)
}

// Config configures a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client talks to TheMealDB. Every call goes through a circuit breaker.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	cb      *gobreaker.CircuitBreaker[[]byte]
	logger  zerolog.Logger
}

// NewClient builds a client. An empty BaseURL selects DefaultBaseURL.
func NewClient(cfg Config) (*Client, error) {
	raw := cfg.BaseURL
	if raw == "" {
		raw = DefaultBaseURL
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid mealdb base url: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := logging.Component("mealdb")
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= 0.6 {
				logger.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", ratio*100).Msg("opening circuit")
				return true
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info().Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
		// A caller giving up says nothing about upstream health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &Client{baseURL: base, http: httpClient, cb: cb, logger: logger}, nil
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// get fetches endpoint with query and returns the body.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	u := c.baseURL.ResolveReference(&url.URL{Path: endpoint, RawQuery: query.Encode()})

	body, err := c.cb.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil, &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode}
		}
		return io.ReadAll(resp.Body)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.MealDBRequests.WithLabelValues(endpoint, metrics.OutcomeRejected).Inc()
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		metrics.MealDBRequests.WithLabelValues(endpoint, metrics.OutcomeFailure).Inc()
		return nil, fmt.Errorf("mealdb %s: %w", endpoint, err)
	}
	metrics.MealDBRequests.WithLabelValues(endpoint, metrics.OutcomeSuccess).Inc()
	return body, nil
}

func (c *Client) meals(ctx context.Context, endpoint string, query url.Values) ([]map[string]*string, error) {
	body, err := c.get(ctx, endpoint, query)
	if err != nil {
		return nil, err
	}
	var env mealsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return env.Meals, nil
}

func (c *Client) summaries(ctx context.Context, endpoint string, query url.Values) ([]types.Recipe, error) {
	meals, err := c.meals(ctx, endpoint, query)
	if err != nil {
		return nil, err
	}
	out := make([]types.Recipe, 0, len(meals))
	for _, m := range meals {
		out = append(out, toRecipe(m))
	}
	return out, nil
}

// Categories lists every recipe category.
func (c *Client) Categories(ctx context.Context) ([]types.Category, error) {
	body, err := c.get(ctx, "categories.php", nil)
	if err != nil {
		return nil, err
	}
	var env categoriesEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode categories response: %w", err)
	}
	out := make([]types.Category, 0, len(env.Categories))
	for _, cat := range env.Categories {
		out = append(out, types.Category{
			ID:           cat.ID,
			Name:         cat.Name,
			ThumbnailURL: cat.Thumb,
			Description:  cat.Description,
		})
	}
	return out, nil
}

// Ingredients lists the ingredient catalogue.
func (c *Client) Ingredients(ctx context.Context) ([]types.IngredientInfo, error) {
	body, err := c.get(ctx, "list.php", url.Values{"i": {"list"}})
	if err != nil {
		return nil, err
	}
	var env ingredientsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode ingredients response: %w", err)
	}
	out := make([]types.IngredientInfo, 0, len(env.Meals))
	for _, ing := range env.Meals {
		info := types.IngredientInfo{ID: ing.ID, Name: ing.Name}
		if ing.Description != nil {
			info.Description = *ing.Description
		}
		out = append(out, info)
	}
	return out, nil
}

// RecipesByCategory lists recipe summaries in a category. Summaries from
// this endpoint carry no category, so it is filled in from the argument.
func (c *Client) RecipesByCategory(ctx context.Context, category string) ([]types.Recipe, error) {
	recipes, err := c.summaries(ctx, "filter.php", url.Values{"c": {category}})
	if err != nil {
		return nil, err
	}
	for i := range recipes {
		if recipes[i].Category == "" {
			recipes[i].Category = category
		}
	}
	return recipes, nil
}

// RecipesByIngredient lists recipe summaries that use ingredient.
func (c *Client) RecipesByIngredient(ctx context.Context, ingredient string) ([]types.Recipe, error) {
	return c.summaries(ctx, "filter.php", url.Values{"i": {ingredient}})
}

// RecipesByName searches recipes by name and returns full details.
func (c *Client) RecipesByName(ctx context.Context, name string) ([]types.RecipeDetail, error) {
	meals, err := c.meals(ctx, "search.php", url.Values{"s": {name}})
	if err != nil {
		return nil, err
	}
	out := make([]types.RecipeDetail, 0, len(meals))
	for _, m := range meals {
		out = append(out, toDetail(m))
	}
	return out, nil
}

// RecipeByID returns the full detail of a recipe, or ErrNotFound.
func (c *Client) RecipeByID(ctx context.Context, id string) (*types.RecipeDetail, error) {
	meals, err := c.meals(ctx, "lookup.php", url.Values{"i": {id}})
	if err != nil {
		return nil, err
	}
	if len(meals) == 0 {
		metrics.MealDBRequests.WithLabelValues("lookup.php", metrics.OutcomeNotFound).Inc()
		return nil, ErrNotFound
	}
	d := toDetail(meals[0])
	return &d, nil
}
