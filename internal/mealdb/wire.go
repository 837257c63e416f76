package mealdb

import (
	"strconv"
	"strings"

	"github.com/pageza/mealdeck/backend/internal/types"
)

// mealsEnvelope is the shape of filter.php, search.php and lookup.php
// responses. "meals" is null when nothing matched.
type mealsEnvelope struct {
	Meals []map[string]*string `json:"meals"`
}

type categoriesEnvelope struct {
	Categories []struct {
		ID          string `json:"idCategory"`
		Name        string `json:"strCategory"`
		Thumb       string `json:"strCategoryThumb"`
		Description string `json:"strCategoryDescription"`
	} `json:"categories"`
}

type ingredientsEnvelope struct {
	Meals []struct {
		ID          string  `json:"idIngredient"`
		Name        string  `json:"strIngredient"`
		Description *string `json:"strDescription"`
	} `json:"meals"`
}

func field(m map[string]*string, key string) string {
	if v, ok := m[key]; ok && v != nil {
		return *v
	}
	return ""
}

func toRecipe(m map[string]*string) types.Recipe {
	return types.Recipe{
		ID:           field(m, "idMeal"),
		Name:         field(m, "strMeal"),
		ThumbnailURL: field(m, "strMealThumb"),
		Category:     field(m, "strCategory"),
	}
}

// toDetail maps the numbered strIngredientN/strMeasureN fields onto the
// fixed slot array. Missing or null fields leave the slot blank.
func toDetail(m map[string]*string) types.RecipeDetail {
	d := types.RecipeDetail{
		ID:           field(m, "idMeal"),
		Name:         field(m, "strMeal"),
		ThumbnailURL: field(m, "strMealThumb"),
		Category:     field(m, "strCategory"),
		Area:         field(m, "strArea"),
		Instructions: field(m, "strInstructions"),
		Tags:         field(m, "strTags"),
		YouTubeURL:   field(m, "strYoutube"),
		SourceURL:    field(m, "strSource"),
	}
	for i := 0; i < types.MaxIngredients; i++ {
		n := strconv.Itoa(i + 1)
		d.Ingredients[i] = types.Ingredient{
			Name:    strings.TrimSpace(field(m, "strIngredient"+n)),
			Measure: strings.TrimSpace(field(m, "strMeasure"+n)),
		}
	}
	return d
}
