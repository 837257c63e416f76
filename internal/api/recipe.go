package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealdeck/backend/internal/logging"
	"github.com/pageza/mealdeck/backend/internal/mealdb"
	"github.com/pageza/mealdeck/backend/internal/middleware"
	"github.com/pageza/mealdeck/backend/internal/service"
	"github.com/pageza/mealdeck/backend/internal/types"
)

// RecipeHandler serves the recipe catalogue and its ratings.
type RecipeHandler struct {
	lookup    mealdb.Lookup
	ratings   service.IRatingService
	favorites service.IFavoritesService
}

func NewRecipeHandler(lookup mealdb.Lookup, ratings service.IRatingService, favorites service.IFavoritesService) *RecipeHandler {
	return &RecipeHandler{
		lookup:    lookup,
		ratings:   ratings,
		favorites: favorites,
	}
}

func (h *RecipeHandler) ListCategories(c *gin.Context) {
	categories, err := h.lookup.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch categories")
		return
	}
	if categories == nil {
		categories = []types.Category{}
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *RecipeHandler) ListIngredients(c *gin.Context) {
	ingredients, err := h.lookup.Ingredients(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch ingredients")
		return
	}
	if ingredients == nil {
		ingredients = []types.IngredientInfo{}
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}

// ListRecipes filters the catalogue by exactly one of category, ingredient
// or name.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category"))
	ingredient := strings.TrimSpace(c.Query("ingredient"))
	name := strings.TrimSpace(c.Query("name"))

	set := 0
	for _, v := range []string{category, ingredient, name} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exactly one of category, ingredient or name is required"})
		return
	}

	ctx := c.Request.Context()
	var (
		recipes []types.Recipe
		err     error
	)
	switch {
	case category != "":
		recipes, err = h.lookup.RecipesByCategory(ctx, category)
	case ingredient != "":
		recipes, err = h.lookup.RecipesByIngredient(ctx, ingredient)
	default:
		var details []types.RecipeDetail
		details, err = h.lookup.RecipesByName(ctx, name)
		for i := range details {
			recipes = append(recipes, details[i].ToRecipe())
		}
	}
	if err != nil {
		respondError(c, err, "failed to fetch recipes")
		return
	}
	if recipes == nil {
		recipes = []types.Recipe{}
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// GetRecipe returns the full recipe with its rating summary. Signed-in
// callers also learn whether it is one of their favorites.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	detail, err := h.lookup.RecipeByID(ctx, id)
	if err != nil {
		respondError(c, err, "failed to fetch recipe")
		return
	}

	resp := types.RecipeDetailResponse{
		Recipe: detail,
		Rating: types.RatingSummary{RecipeID: id},
	}

	if summary, err := h.ratings.Summary(ctx, id); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("recipe_id", id).Msg("rating summary unavailable")
	} else {
		resp.Rating = *summary
	}

	if userID, ok := middleware.UserID(c); ok {
		fav, err := h.favorites.IsFavorite(ctx, userID, id)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("recipe_id", id).Msg("favorite lookup failed")
		}
		resp.IsFavorite = fav
	}

	c.JSON(http.StatusOK, resp)
}
