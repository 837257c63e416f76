package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Favorite is a recipe a user has saved. The recipe itself lives in the
// lookup service; only its summary is kept here.
type Favorite struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	UserID       uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorites_user_recipe" json:"user_id"`
	RecipeID     string    `gorm:"size:64;not null;uniqueIndex:idx_favorites_user_recipe" json:"recipe_id"`
	Name         string    `gorm:"size:255" json:"name"`
	Category     string    `gorm:"size:100" json:"category"`
	ThumbnailURL string    `gorm:"size:512" json:"thumbnail_url"`
}

func (Favorite) TableName() string {
	return "favorites"
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
