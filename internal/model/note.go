package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Note is free text a user attaches to a recipe.
type Note struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index:idx_notes_user_recipe" json:"user_id"`
	RecipeID  string    `gorm:"size:64;not null;index:idx_notes_user_recipe" json:"recipe_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
}

func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
