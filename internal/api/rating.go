package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealdeck/backend/internal/service"
	"github.com/pageza/mealdeck/backend/internal/types"
)

type RatingHandler struct {
	ratings service.IRatingService
}

func NewRatingHandler(ratings service.IRatingService) *RatingHandler {
	return &RatingHandler{ratings: ratings}
}

// RateRecipe records the caller's rating and returns the new summary.
func (h *RatingHandler) RateRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.RateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.ratings.Rate(c.Request.Context(), userID, c.Param("id"), req.Rating)
	if err != nil {
		respondError(c, err, "failed to rate recipe")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *RatingHandler) GetRating(c *gin.Context) {
	summary, err := h.ratings.Summary(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to fetch rating")
		return
	}
	c.JSON(http.StatusOK, summary)
}
