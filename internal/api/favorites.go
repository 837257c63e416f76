package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealdeck/backend/internal/mealdb"
	"github.com/pageza/mealdeck/backend/internal/service"
	"github.com/pageza/mealdeck/backend/internal/types"
)

type FavoritesHandler struct {
	favorites service.IFavoritesService
	lookup    mealdb.Lookup
}

func NewFavoritesHandler(favorites service.IFavoritesService, lookup mealdb.Lookup) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites, lookup: lookup}
}

// ListFavorites returns the caller's favorites in the order they were added.
// With details=true each favorite is resolved to its full recipe.
func (h *FavoritesHandler) ListFavorites(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if c.Query("details") == "true" {
		details, err := h.favorites.ListWithDetails(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err, "failed to fetch favorites")
			return
		}
		if details == nil {
			details = []types.RecipeDetail{}
		}
		c.JSON(http.StatusOK, gin.H{"favorites": details})
		return
	}

	favorites, err := h.favorites.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to fetch favorites")
		return
	}
	if favorites == nil {
		favorites = []types.Recipe{}
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

// AddFavorite stores a favorite. A request carrying only the recipe id is
// completed from the catalogue.
func (h *FavoritesHandler) AddFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.RecipeID = strings.TrimSpace(req.RecipeID)

	if strings.TrimSpace(req.Name) == "" {
		detail, err := h.lookup.RecipeByID(c.Request.Context(), req.RecipeID)
		if err != nil {
			respondError(c, err, "failed to fetch recipe")
			return
		}
		req.Name = detail.Name
		req.Category = detail.Category
		req.ThumbnailURL = detail.ThumbnailURL
	}

	favorite, err := h.favorites.Add(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "failed to add favorite")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"favorite": favorite})
}

func (h *FavoritesHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.favorites.Remove(c.Request.Context(), userID, c.Param("recipe_id")); err != nil {
		respondError(c, err, "failed to remove favorite")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "favorite removed"})
}
