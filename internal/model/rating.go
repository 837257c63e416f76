package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating is one user's 1-5 rating of a recipe.
type Rating struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_ratings_user_recipe" json:"user_id"`
	RecipeID  string    `gorm:"size:64;not null;uniqueIndex:idx_ratings_user_recipe;index" json:"recipe_id"`
	Value     int       `gorm:"column:rating;not null;check:rating >= 1 AND rating <= 5" json:"rating"`
}

func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeRatingSummary is the aggregate of all ratings of a recipe.
type RecipeRatingSummary struct {
	RecipeID      string    `gorm:"size:64;primarykey" json:"recipe_id"`
	AverageRating float64   `gorm:"not null;default:0" json:"average_rating"`
	RatingCount   int       `gorm:"not null;default:0" json:"rating_count"`
	UpdatedAt     time.Time `json:"updated_at"`
}
