package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/mealdeck/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*types.AuthResponse, error)
	Login(ctx context.Context, req *types.LoginRequest) (*types.AuthResponse, error)
	SignInAnonymously(ctx context.Context) (*types.AuthResponse, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IFavoritesService is the per-user store of favorited recipes.
type IFavoritesService interface {
	Add(ctx context.Context, userID uuid.UUID, req *types.AddFavoriteRequest) (*types.Recipe, error)
	Remove(ctx context.Context, userID uuid.UUID, recipeID string) error
	List(ctx context.Context, userID uuid.UUID) ([]types.Recipe, error)
	IsFavorite(ctx context.Context, userID uuid.UUID, recipeID string) (bool, error)
	ListWithDetails(ctx context.Context, userID uuid.UUID) ([]types.RecipeDetail, error)
}

// INotesService defines the interface for recipe notes
type INotesService interface {
	Add(ctx context.Context, userID uuid.UUID, recipeID, content string) (*types.Note, error)
	Update(ctx context.Context, userID, noteID uuid.UUID, content string) (*types.Note, error)
	List(ctx context.Context, userID uuid.UUID, recipeID string) ([]types.Note, error)
	Delete(ctx context.Context, userID, noteID uuid.UUID) error
}

// IRatingService defines the interface for recipe ratings
type IRatingService interface {
	Rate(ctx context.Context, userID uuid.UUID, recipeID string, rating int) (*types.RatingSummary, error)
	Summary(ctx context.Context, recipeID string) (*types.RatingSummary, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error)
	UpdateName(ctx context.Context, userID uuid.UUID, name string) (*types.UserProfile, error)
	UpdateAllergies(ctx context.Context, userID uuid.UUID, allergies []string) (*types.UserProfile, error)
	CreatePictureUpload(ctx context.Context, userID uuid.UUID, contentType string) (*types.ProfilePictureResponse, error)
}

// IRecommendationService serves recommendations per user session.
type IRecommendationService interface {
	Recommend(ctx context.Context, userID uuid.UUID, limit int) (*types.RecommendationsResponse, error)
	Forget(userID uuid.UUID)
}
