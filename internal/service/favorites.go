package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/mealdeck/backend/internal/logging"
	"github.com/pageza/mealdeck/backend/internal/model"
	"github.com/pageza/mealdeck/backend/internal/types"
)

// NameSearcher finds full recipe details by name.
type NameSearcher interface {
	RecipesByName(ctx context.Context, name string) ([]types.RecipeDetail, error)
}

// ChangeListener is told when a user's favorites change.
type ChangeListener interface {
	FavoritesChanged(userID uuid.UUID)
}

type FavoritesService struct {
	db       *gorm.DB
	search   NameSearcher
	listener ChangeListener
	logger   zerolog.Logger
}

func NewFavoritesService(db *gorm.DB, search NameSearcher) *FavoritesService {
	return &FavoritesService{
		db:     db,
		search: search,
		logger: logging.Component("favorites"),
	}
}

// SetListener registers l to be told about favorite changes.
func (s *FavoritesService) SetListener(l ChangeListener) {
	s.listener = l
}

func (s *FavoritesService) notify(userID uuid.UUID) {
	if s.listener != nil {
		s.listener.FavoritesChanged(userID)
	}
}

// Add saves a favorite. Adding an existing favorite refreshes its summary.
func (s *FavoritesService) Add(ctx context.Context, userID uuid.UUID, req *types.AddFavoriteRequest) (*types.Recipe, error) {
	recipeID := strings.TrimSpace(req.RecipeID)
	if recipeID == "" {
		return nil, ErrInvalidRecipeID
	}

	fav := model.Favorite{
		UserID:       userID,
		RecipeID:     recipeID,
		Name:         req.Name,
		Category:     req.Category,
		ThumbnailURL: req.ThumbnailURL,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "category", "thumbnail_url", "updated_at"}),
	}).Create(&fav).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save favorite: %w", err)
	}

	s.notify(userID)
	r := toRecipe(fav)
	return &r, nil
}

// Remove deletes a favorite. Removing a recipe that is not a favorite is not
// an error.
func (s *FavoritesService) Remove(ctx context.Context, userID uuid.UUID, recipeID string) error {
	res := s.db.WithContext(ctx).Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&model.Favorite{})
	if res.Error != nil {
		return fmt.Errorf("failed to remove favorite: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		s.notify(userID)
	}
	return nil
}

// List returns the user's favorites, oldest first.
func (s *FavoritesService) List(ctx context.Context, userID uuid.UUID) ([]types.Recipe, error) {
	var favs []model.Favorite
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC, id ASC").Find(&favs).Error; err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	out := make([]types.Recipe, 0, len(favs))
	for _, f := range favs {
		out = append(out, toRecipe(f))
	}
	return out, nil
}

func (s *FavoritesService) IsFavorite(ctx context.Context, userID uuid.UUID, recipeID string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Favorite{}).Where("user_id = ? AND recipe_id = ?", userID, recipeID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}

// ListWithDetails resolves each favorite to its full detail by exact name
// match. A favorite whose lookup fails or finds no exact match is returned
// with only its stored summary fields.
func (s *FavoritesService) ListWithDetails(ctx context.Context, userID uuid.UUID) ([]types.RecipeDetail, error) {
	favs, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]types.RecipeDetail, 0, len(favs))
	for _, f := range favs {
		out = append(out, s.resolve(ctx, f))
	}
	return out, nil
}

func (s *FavoritesService) resolve(ctx context.Context, f types.Recipe) types.RecipeDetail {
	fallback := types.RecipeDetail{ID: f.ID, Name: f.Name, ThumbnailURL: f.ThumbnailURL, Category: f.Category}
	if s.search == nil || f.Name == "" {
		return fallback
	}

	matches, err := s.search.RecipesByName(ctx, f.Name)
	if err != nil {
		s.logger.Warn().Err(err).Str("recipe_id", f.ID).Msg("favorite detail lookup failed")
		return fallback
	}
	for _, d := range matches {
		if d.Name == f.Name {
			return d
		}
	}
	return fallback
}

func toRecipe(f model.Favorite) types.Recipe {
	return types.Recipe{
		ID:           f.RecipeID,
		Name:         f.Name,
		ThumbnailURL: f.ThumbnailURL,
		Category:     f.Category,
	}
}
