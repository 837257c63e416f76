package types

import "strings"

// MaxIngredients is the number of ingredient/measure slots a recipe detail carries.
const MaxIngredients = 20

// Recipe is the summary form of a recipe as listed by the lookup service.
// An empty Category means the category is unknown.
type Recipe struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ThumbnailURL string `json:"thumbnail_url"`
	Category     string `json:"category,omitempty"`
}

// Ingredient is one ingredient slot of a recipe. Either field may be blank.
type Ingredient struct {
	Name    string `json:"name"`
	Measure string `json:"measure"`
}

// RecipeDetail is the full form of a recipe. Ingredients always has MaxIngredients
// slots; blank slots mean "absent" and must be skipped by readers.
type RecipeDetail struct {
	ID           string                     `json:"id"`
	Name         string                     `json:"name"`
	ThumbnailURL string                     `json:"thumbnail_url"`
	Category     string                     `json:"category,omitempty"`
	Area         string                     `json:"area,omitempty"`
	Instructions string                     `json:"instructions"`
	Tags         string                     `json:"tags,omitempty"`
	YouTubeURL   string                     `json:"youtube_url,omitempty"`
	SourceURL    string                     `json:"source_url,omitempty"`
	Ingredients  [MaxIngredients]Ingredient `json:"ingredients"`
}

// IngredientNames returns the non-blank ingredient names in slot order.
// Repeated names are kept.
func (d *RecipeDetail) IngredientNames() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, MaxIngredients)
	for _, ing := range d.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			continue
		}
		names = append(names, ing.Name)
	}
	return names
}

// PresentIngredients returns the slots that carry an ingredient name.
func (d *RecipeDetail) PresentIngredients() []Ingredient {
	if d == nil {
		return nil
	}
	out := make([]Ingredient, 0, MaxIngredients)
	for _, ing := range d.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			continue
		}
		out = append(out, ing)
	}
	return out
}

// ToRecipe projects a detail onto its summary.
func (d *RecipeDetail) ToRecipe() Recipe {
	return Recipe{
		ID:           d.ID,
		Name:         d.Name,
		ThumbnailURL: d.ThumbnailURL,
		Category:     d.Category,
	}
}

// Category is a recipe category as listed by the lookup service.
type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ThumbnailURL string `json:"thumbnail_url"`
	Description  string `json:"description"`
}

// IngredientInfo is an entry of the lookup service's ingredient catalogue.
type IngredientInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UserPreferences holds the categories and ingredients a user favours, most
// frequent first. It is derived from favorites and never persisted.
type UserPreferences struct {
	FavoriteCategories  []string `json:"favorite_categories"`
	FavoriteIngredients []string `json:"favorite_ingredients"`
}
