package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/mealdeck/backend/internal/model"
	"github.com/pageza/mealdeck/backend/internal/types"
)

const pictureUploadTTL = 15 * time.Minute

var pictureExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// ObjectStore issues upload URLs for profile pictures.
type ObjectStore interface {
	PresignUpload(ctx context.Context, objectKey, contentType string, expiration time.Duration) (string, error)
	ObjectURL(objectKey string) string
}

// ProfileService handles user profile operations
type ProfileService struct {
	db    *gorm.DB
	store ObjectStore
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a ProfileService. store may be nil, in which
// case picture uploads fail with ErrStorageUnavailable.
func NewProfileService(db *gorm.DB, store ObjectStore) *ProfileService {
	return &ProfileService{db: db, store: store}
}

// GetProfile retrieves a user's profile
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	profile, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfile(&user, profile), nil
}

func (s *ProfileService) UpdateName(ctx context.Context, userID uuid.UUID, name string) (*types.UserProfile, error) {
	return s.update(ctx, userID, map[string]interface{}{"name": strings.TrimSpace(name)})
}

// UpdateAllergies replaces the allergy list. Blank and repeated entries are
// dropped.
func (s *ProfileService) UpdateAllergies(ctx context.Context, userID uuid.UUID, allergies []string) (*types.UserProfile, error) {
	clean := make(model.StringList, 0, len(allergies))
	seen := make(map[string]struct{}, len(allergies))
	for _, a := range allergies {
		a = strings.TrimSpace(a)
		key := strings.ToLower(a)
		if _, dup := seen[key]; a == "" || dup {
			continue
		}
		seen[key] = struct{}{}
		clean = append(clean, a)
	}
	return s.update(ctx, userID, map[string]interface{}{"allergies": clean})
}

// CreatePictureUpload issues a presigned upload URL for a new profile
// picture and points the profile at the object it will create.
func (s *ProfileService) CreatePictureUpload(ctx context.Context, userID uuid.UUID, contentType string) (*types.ProfilePictureResponse, error) {
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}
	ext, ok := pictureExtensions[contentType]
	if !ok {
		return nil, fmt.Errorf("unsupported content type %q", contentType)
	}

	key := fmt.Sprintf("profile-pictures/%s/%s.%s", userID, uuid.New(), ext)
	uploadURL, err := s.store.PresignUpload(ctx, key, contentType, pictureUploadTTL)
	if err != nil {
		return nil, err
	}
	pictureURL := s.store.ObjectURL(key)

	if _, err := s.update(ctx, userID, map[string]interface{}{"profile_picture_url": pictureURL}); err != nil {
		return nil, err
	}

	return &types.ProfilePictureResponse{
		UploadURL:  uploadURL,
		PictureURL: pictureURL,
		ExpiresAt:  time.Now().Add(pictureUploadTTL),
	}, nil
}

func (s *ProfileService) update(ctx context.Context, userID uuid.UUID, fields map[string]interface{}) (*types.UserProfile, error) {
	profile, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(profile).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.GetProfile(ctx, userID)
}

// load returns the user's profile, creating an empty one if missing.
func (s *ProfileService) load(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = model.UserProfile{UserID: userID}
		if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}
		return &profile, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &profile, nil
}

func toProfile(u *model.User, p *model.UserProfile) *types.UserProfile {
	out := &types.UserProfile{
		UserID:            u.ID,
		Name:              p.Name,
		ProfilePictureURL: p.ProfilePictureURL,
		Allergies:         []string(p.Allergies),
		Anonymous:         u.Anonymous,
		UpdatedAt:         p.UpdatedAt,
	}
	if out.Allergies == nil {
		out.Allergies = []string{}
	}
	if u.Email != nil {
		out.Email = *u.Email
	}
	return out
}
