package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/mealdeck/backend/internal/middleware"
)

// Handlers groups every handler mounted under /api/v1.
type Handlers struct {
	Health          *HealthHandler
	Auth            *AuthHandler
	Recipes         *RecipeHandler
	Favorites       *FavoritesHandler
	Notes           *NotesHandler
	Ratings         *RatingHandler
	Profile         *ProfileHandler
	Recommendations *RecommendationHandler
}

// RegisterRoutes mounts the API. limiter may be nil, in which case
// recommendations are not rate limited.
func RegisterRoutes(router *gin.Engine, h *Handlers, validator middleware.TokenValidator, limiter *middleware.RateLimiter) {
	router.GET("/health", h.Health.HealthCheck)
	router.GET("/api/health", h.Health.HealthCheck)

	requireAuth := middleware.AuthMiddleware(validator)
	optionalAuth := middleware.OptionalAuth(validator)

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/anonymous", h.Auth.Anonymous)
		auth.POST("/logout", requireAuth, h.Auth.Logout)
	}

	v1.GET("/categories", h.Recipes.ListCategories)
	v1.GET("/ingredients", h.Recipes.ListIngredients)

	recipes := v1.Group("/recipes")
	{
		recipes.GET("", h.Recipes.ListRecipes)
		recipes.GET("/:id", optionalAuth, h.Recipes.GetRecipe)
		recipes.GET("/:id/rating", h.Ratings.GetRating)
		recipes.POST("/:id/rating", requireAuth, h.Ratings.RateRecipe)
		recipes.GET("/:id/notes", requireAuth, h.Notes.ListNotes)
		recipes.POST("/:id/notes", requireAuth, h.Notes.AddNote)
	}

	protected := v1.Group("")
	protected.Use(requireAuth)
	{
		favorites := protected.Group("/favorites")
		{
			favorites.GET("", h.Favorites.ListFavorites)
			favorites.POST("", h.Favorites.AddFavorite)
			favorites.DELETE("/:recipe_id", h.Favorites.RemoveFavorite)
		}

		notes := protected.Group("/notes")
		{
			notes.PUT("/:note_id", h.Notes.UpdateNote)
			notes.DELETE("/:note_id", h.Notes.DeleteNote)
		}

		profile := protected.Group("/profile")
		{
			profile.GET("", h.Profile.GetProfile)
			profile.PUT("/name", h.Profile.UpdateName)
			profile.PUT("/allergies", h.Profile.UpdateAllergies)
			profile.POST("/picture", h.Profile.CreatePictureUpload)
		}

		recommendations := []gin.HandlerFunc{h.Recommendations.GetRecommendations}
		if limiter != nil {
			recommendations = append([]gin.HandlerFunc{limiter.RateLimitMiddleware()}, recommendations...)
		}
		protected.GET("/recommendations", recommendations...)
	}
}
