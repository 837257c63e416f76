// Package model holds the GORM persistence models.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account. Anonymous users have no email or password.
type User struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Email        *string        `gorm:"size:255;uniqueIndex" json:"email,omitempty"`
	PasswordHash string         `json:"-"`
	Anonymous    bool           `gorm:"not null;default:false" json:"anonymous"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserProfile is the editable part of an account.
type UserProfile struct {
	ID                uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID            uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Name              string         `gorm:"size:100" json:"name"`
	ProfilePictureURL string         `gorm:"size:512" json:"profile_picture_url"`
	Allergies         StringList     `gorm:"type:jsonb;not null;default:'[]'" json:"allergies"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Allergies == nil {
		p.Allergies = StringList{}
	}
	return nil
}

// All lists every model, in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&UserProfile{},
		&Favorite{},
		&Note{},
		&Rating{},
		&RecipeRatingSummary{},
	}
}
