package service

import "errors"

var (
	ErrUserExists               = errors.New("user already exists")
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrInvalidToken             = errors.New("invalid token")
	ErrUserNotFound             = errors.New("user not found")
	ErrNoteNotFound             = errors.New("note not found")
	ErrInvalidRating            = errors.New("rating must be between 1 and 5")
	ErrInvalidRecipeID          = errors.New("recipe id is required")
	ErrRecommendationInProgress = errors.New("a recommendation request is already in progress")
	ErrStorageUnavailable       = errors.New("profile picture storage is not configured")
)
