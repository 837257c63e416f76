package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/mealdeck/backend/internal/model"
	"github.com/pageza/mealdeck/backend/internal/types"
)

type RatingService struct {
	db *gorm.DB
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{db: db}
}

// Rate records the user's rating of a recipe, replacing any earlier one, and
// refreshes the recipe's aggregate.
func (s *RatingService) Rate(ctx context.Context, userID uuid.UUID, recipeID string, rating int) (*types.RatingSummary, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if strings.TrimSpace(recipeID) == "" {
		return nil, ErrInvalidRecipeID
	}

	var summary model.RecipeRatingSummary
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := model.Rating{UserID: userID, RecipeID: recipeID, Value: rating}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
		}).Create(&r).Error; err != nil {
			return fmt.Errorf("failed to save rating: %w", err)
		}

		var agg struct {
			Average float64
			Count   int
		}
		if err := tx.Model(&model.Rating{}).
			Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
			Where("recipe_id = ?", recipeID).
			Scan(&agg).Error; err != nil {
			return fmt.Errorf("failed to aggregate ratings: %w", err)
		}

		summary = model.RecipeRatingSummary{
			RecipeID:      recipeID,
			AverageRating: agg.Average,
			RatingCount:   agg.Count,
			UpdatedAt:     time.Now(),
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "recipe_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"average_rating", "rating_count", "updated_at"}),
		}).Create(&summary).Error; err != nil {
			return fmt.Errorf("failed to save rating summary: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &types.RatingSummary{
		RecipeID:      recipeID,
		AverageRating: summary.AverageRating,
		RatingCount:   summary.RatingCount,
	}, nil
}

// Summary returns the aggregate for a recipe. Unknown or blank ids have a
// zero average and count.
func (s *RatingService) Summary(ctx context.Context, recipeID string) (*types.RatingSummary, error) {
	out := &types.RatingSummary{RecipeID: recipeID}
	if strings.TrimSpace(recipeID) == "" {
		return out, nil
	}

	var summary model.RecipeRatingSummary
	err := s.db.WithContext(ctx).Where("recipe_id = ?", recipeID).First(&summary).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load rating summary: %w", err)
	}
	out.AverageRating = summary.AverageRating
	out.RatingCount = summary.RatingCount
	return out, nil
}
