package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/mealdeck/backend/internal/service"
	"github.com/pageza/mealdeck/backend/internal/types"
)

type NotesHandler struct {
	notes service.INotesService
}

func NewNotesHandler(notes service.INotesService) *NotesHandler {
	return &NotesHandler{notes: notes}
}

func (h *NotesHandler) ListNotes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	notes, err := h.notes.List(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to fetch notes")
		return
	}
	if notes == nil {
		notes = []types.Note{}
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

func (h *NotesHandler) AddNote(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := h.notes.Add(c.Request.Context(), userID, c.Param("id"), req.Content)
	if err != nil {
		respondError(c, err, "failed to add note")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"note": note})
}

func (h *NotesHandler) UpdateNote(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	noteID, err := uuid.Parse(c.Param("note_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid note id"})
		return
	}

	var req types.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := h.notes.Update(c.Request.Context(), userID, noteID, req.Content)
	if err != nil {
		respondError(c, err, "failed to update note")
		return
	}
	c.JSON(http.StatusOK, gin.H{"note": note})
}

func (h *NotesHandler) DeleteNote(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	noteID, err := uuid.Parse(c.Param("note_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid note id"})
		return
	}

	if err := h.notes.Delete(c.Request.Context(), userID, noteID); err != nil {
		respondError(c, err, "failed to delete note")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "note deleted"})
}
