package recommend

import (
	"context"
	"errors"
	"sync"

	"github.com/pageza/mealdeck/backend/internal/types"
)

var errLookupDown = errors.New("lookup down")

// fakeLookup serves canned data and counts calls per key.
type fakeLookup struct {
	mu           sync.Mutex
	details      map[string]types.RecipeDetail
	byCategory   map[string][]types.Recipe
	byIngredient map[string][]types.Recipe
	failing      map[string]bool
	calls        map[string]int
	onCall       func(key string)
}

func newFakeLookup() *fakeLookup {
	return &fakeLookup{
		details:      map[string]types.RecipeDetail{},
		byCategory:   map[string][]types.Recipe{},
		byIngredient: map[string][]types.Recipe{},
		failing:      map[string]bool{},
		calls:        map[string]int{},
	}
}

// recipe registers a detail and lists it under its category and ingredients.
func (f *fakeLookup) recipe(id, category string, ingredients ...string) types.Recipe {
	d := types.RecipeDetail{ID: id, Name: "Recipe " + id, ThumbnailURL: "https://img/" + id + ".jpg", Category: category}
	for i, ing := range ingredients {
		d.Ingredients[i] = types.Ingredient{Name: ing, Measure: "1"}
	}
	f.details[id] = d
	summary := types.Recipe{ID: id, Name: d.Name, ThumbnailURL: d.ThumbnailURL, Category: category}
	if category != "" {
		f.byCategory[category] = append(f.byCategory[category], summary)
	}
	for _, ing := range ingredients {
		f.byIngredient[ing] = append(f.byIngredient[ing], types.Recipe{ID: id, Name: d.Name, ThumbnailURL: d.ThumbnailURL})
	}
	return summary
}

func (f *fakeLookup) record(key string) error {
	f.mu.Lock()
	f.calls[key]++
	failing := f.failing[key]
	hook := f.onCall
	f.mu.Unlock()
	if hook != nil {
		hook(key)
	}
	if failing {
		return errLookupDown
	}
	return nil
}

func (f *fakeLookup) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeLookup) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeLookup) RecipesByCategory(_ context.Context, category string) ([]types.Recipe, error) {
	if err := f.record("category:" + category); err != nil {
		return nil, err
	}
	return f.byCategory[category], nil
}

func (f *fakeLookup) RecipesByIngredient(_ context.Context, ingredient string) ([]types.Recipe, error) {
	if err := f.record("ingredient:" + ingredient); err != nil {
		return nil, err
	}
	return f.byIngredient[ingredient], nil
}

func (f *fakeLookup) RecipeByID(_ context.Context, id string) (*types.RecipeDetail, error) {
	if err := f.record("id:" + id); err != nil {
		return nil, err
	}
	d, ok := f.details[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}
