package types

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest represents the request body for email registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents the request body for email login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by every sign-in endpoint
type AuthResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	Token     string    `json:"token"`
	Anonymous bool      `json:"anonymous"`
}

// AddFavoriteRequest represents the request body for favoriting a recipe
type AddFavoriteRequest struct {
	RecipeID     string `json:"recipe_id" binding:"required"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// NoteRequest represents the request body for creating or editing a note
type NoteRequest struct {
	Content string `json:"content" binding:"required,max=5000"`
}

// Note is the API view of a user's note on a recipe
type Note struct {
	ID        uuid.UUID `json:"id"`
	RecipeID  string    `json:"recipe_id"`
	UserID    uuid.UUID `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RateRecipeRequest represents the request body for rating a recipe
type RateRecipeRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

// RatingSummary aggregates all ratings of a recipe
type RatingSummary struct {
	RecipeID      string  `json:"recipe_id"`
	AverageRating float64 `json:"average_rating"`
	RatingCount   int     `json:"rating_count"`
}

// RecipeDetailResponse is a recipe detail enriched with its rating and the caller's favorite state
type RecipeDetailResponse struct {
	Recipe     *RecipeDetail `json:"recipe"`
	Rating     RatingSummary `json:"rating"`
	IsFavorite bool          `json:"is_favorite"`
}

// RecommendationsResponse is returned by the recommendations endpoint
type RecommendationsResponse struct {
	Recipes []Recipe `json:"recipes"`
	Default bool     `json:"default"`
	Cached  bool     `json:"cached"`
}
