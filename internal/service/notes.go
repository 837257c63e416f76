package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/mealdeck/backend/internal/model"
	"github.com/pageza/mealdeck/backend/internal/types"
)

type NotesService struct {
	db *gorm.DB
}

func NewNotesService(db *gorm.DB) *NotesService {
	return &NotesService{db: db}
}

func (s *NotesService) Add(ctx context.Context, userID uuid.UUID, recipeID, content string) (*types.Note, error) {
	if strings.TrimSpace(recipeID) == "" {
		return nil, ErrInvalidRecipeID
	}
	note := model.Note{UserID: userID, RecipeID: recipeID, Content: content}
	if err := s.db.WithContext(ctx).Create(&note).Error; err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	out := toNote(note)
	return &out, nil
}

// Update replaces the content of one of the user's notes.
func (s *NotesService) Update(ctx context.Context, userID, noteID uuid.UUID, content string) (*types.Note, error) {
	note, err := s.owned(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}
	note.Content = content
	if err := s.db.WithContext(ctx).Model(note).Update("content", content).Error; err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	out := toNote(*note)
	return &out, nil
}

// List returns the user's notes on a recipe, oldest first.
func (s *NotesService) List(ctx context.Context, userID uuid.UUID, recipeID string) ([]types.Note, error) {
	var notes []model.Note
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Order("created_at ASC").
		Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	out := make([]types.Note, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNote(n))
	}
	return out, nil
}

func (s *NotesService) Delete(ctx context.Context, userID, noteID uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", noteID, userID).Delete(&model.Note{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete note: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// owned loads a note only if it belongs to userID.
func (s *NotesService) owned(ctx context.Context, userID, noteID uuid.UUID) (*model.Note, error) {
	var note model.Note
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", noteID, userID).First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load note: %w", err)
	}
	return &note, nil
}

func toNote(n model.Note) types.Note {
	return types.Note{
		ID:        n.ID,
		RecipeID:  n.RecipeID,
		UserID:    n.UserID,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
