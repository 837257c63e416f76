package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealdeck/backend/internal/types"
)

// MockLookup is a mock of the recipe lookup service
type MockLookup struct {
	mock.Mock
}

func (m *MockLookup) Categories(ctx context.Context) ([]types.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Category), args.Error(1)
}

func (m *MockLookup) Ingredients(ctx context.Context) ([]types.IngredientInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.IngredientInfo), args.Error(1)
}

func (m *MockLookup) RecipesByCategory(ctx context.Context, category string) ([]types.Recipe, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Recipe), args.Error(1)
}

func (m *MockLookup) RecipesByIngredient(ctx context.Context, ingredient string) ([]types.Recipe, error) {
	args := m.Called(ctx, ingredient)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Recipe), args.Error(1)
}

func (m *MockLookup) RecipesByName(ctx context.Context, name string) ([]types.RecipeDetail, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeDetail), args.Error(1)
}

func (m *MockLookup) RecipeByID(ctx context.Context, id string) (*types.RecipeDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeDetail), args.Error(1)
}

// MockFavoritesService is a mock of the favorites store
type MockFavoritesService struct {
	mock.Mock
}

func (m *MockFavoritesService) Add(ctx context.Context, userID uuid.UUID, req *types.AddFavoriteRequest) (*types.Recipe, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Recipe), args.Error(1)
}

func (m *MockFavoritesService) Remove(ctx context.Context, userID uuid.UUID, recipeID string) error {
	args := m.Called(ctx, userID, recipeID)
	return args.Error(0)
}

func (m *MockFavoritesService) List(ctx context.Context, userID uuid.UUID) ([]types.Recipe, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Recipe), args.Error(1)
}

func (m *MockFavoritesService) IsFavorite(ctx context.Context, userID uuid.UUID, recipeID string) (bool, error) {
	args := m.Called(ctx, userID, recipeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoritesService) ListWithDetails(ctx context.Context, userID uuid.UUID) ([]types.RecipeDetail, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeDetail), args.Error(1)
}

// MockNotesService is a mock of the notes service
type MockNotesService struct {
	mock.Mock
}

func (m *MockNotesService) Add(ctx context.Context, userID uuid.UUID, recipeID, content string) (*types.Note, error) {
	args := m.Called(ctx, userID, recipeID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Note), args.Error(1)
}

func (m *MockNotesService) Update(ctx context.Context, userID, noteID uuid.UUID, content string) (*types.Note, error) {
	args := m.Called(ctx, userID, noteID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Note), args.Error(1)
}

func (m *MockNotesService) List(ctx context.Context, userID uuid.UUID, recipeID string) ([]types.Note, error) {
	args := m.Called(ctx, userID, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Note), args.Error(1)
}

func (m *MockNotesService) Delete(ctx context.Context, userID, noteID uuid.UUID) error {
	args := m.Called(ctx, userID, noteID)
	return args.Error(0)
}

// MockRatingService is a mock of the rating service
type MockRatingService struct {
	mock.Mock
}

func (m *MockRatingService) Rate(ctx context.Context, userID uuid.UUID, recipeID string, rating int) (*types.RatingSummary, error) {
	args := m.Called(ctx, userID, recipeID, rating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RatingSummary), args.Error(1)
}

func (m *MockRatingService) Summary(ctx context.Context, recipeID string) (*types.RatingSummary, error) {
	args := m.Called(ctx, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RatingSummary), args.Error(1)
}

// MockRecommendationService is a mock of the recommendation service
type MockRecommendationService struct {
	mock.Mock
}

func (m *MockRecommendationService) Recommend(ctx context.Context, userID uuid.UUID, limit int) (*types.RecommendationsResponse, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecommendationsResponse), args.Error(1)
}

func (m *MockRecommendationService) Forget(userID uuid.UUID) {
	m.Called(userID)
}
