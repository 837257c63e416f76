package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealdeck/backend/internal/service"
)

// maxRecommendationLimit caps the limit query parameter.
const maxRecommendationLimit = 50

type RecommendationHandler struct {
	recommendations service.IRecommendationService
}

func NewRecommendationHandler(recommendations service.IRecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations}
}

// GetRecommendations returns recommendations for the caller. Without a
// limit the configured default applies.
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxRecommendationLimit {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("limit must be an integer between 1 and %d", maxRecommendationLimit),
			})
			return
		}
		limit = n
	}

	resp, err := h.recommendations.Recommend(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err, "failed to compute recommendations")
		return
	}
	c.JSON(http.StatusOK, resp)
}
