package types

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile is the public view of a user's profile
type UserProfile struct {
	UserID            uuid.UUID `json:"user_id"`
	Name              string    `json:"name"`
	Email             string    `json:"email,omitempty"`
	ProfilePictureURL string    `json:"profile_picture_url,omitempty"`
	Allergies         []string  `json:"allergies"`
	Anonymous         bool      `json:"anonymous"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// UpdateNameRequest represents a request to change the display name
type UpdateNameRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// UpdateAllergiesRequest replaces the user's allergy list
type UpdateAllergiesRequest struct {
	Allergies []string `json:"allergies" binding:"dive,max=50"`
}

// ProfilePictureRequest asks for an upload URL for a new profile picture
type ProfilePictureRequest struct {
	ContentType string `json:"content_type" binding:"required,oneof=image/jpeg image/png image/webp"`
}

// ProfilePictureResponse carries the presigned upload URL and the resulting public URL
type ProfilePictureResponse struct {
	UploadURL  string    `json:"upload_url"`
	PictureURL string    `json:"picture_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}
