package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/simple-notes/backend/internal/model"
	"github.com/simple-notes/backend/internal/service"
)

type NoteHandler struct {
	svc    *service.NoteService
	search *service.SearchService
}

func NewNoteHandler(svc *service.NoteService, search *service.SearchService) *NoteHandler {
	return &NoteHandler{svc: svc, search: search}
}

// CreateNote godoc
// @Summary Create a note
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateNoteRequest true "Title and content"
// @Success 201 {object} model.Note
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/notes [post]
func (h *NoteHandler) CreateNote(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req model.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	note, err := h.svc.Create(c.Request.Context(), user.ID, req.Title, req.Content)
	if err != nil {
		writeNoteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

// ListNotes godoc
// @Summary List notes of the current user
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param query query string false "Substring filter on title/content"
// @Success 200 {array} model.Note
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/notes [get]
func (h *NoteHandler) ListNotes(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	notes, err := h.svc.List(c.Request.Context(), user.ID, c.Query("query"))
	if err != nil {
		writeNoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

// SearchNotes godoc
// @Summary Semantic note search
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param query query string true "Search query"
// @Success 200 {array} model.Note
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Failure 503 {object} model.ErrorResponse
// @Router /api/v1/notes/search [get]
func (h *NoteHandler) SearchNotes(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if h.search == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search not configured"})
		return
	}

	notes, err := h.search.Search(c.Request.Context(), user.ID, c.Query("query"), 0)
	if err != nil {
		writeNoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

// GetNote godoc
// @Summary Get a note
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Success 200 {object} model.Note
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/notes/{id} [get]
func (h *NoteHandler) GetNote(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	noteID, ok := parseNoteID(c)
	if !ok {
		return
	}

	note, err := h.svc.Get(c.Request.Context(), user.ID, noteID)
	if err != nil {
		writeNoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

// UpdateNote godoc
// @Summary Update a note
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Param request body model.UpdateNoteRequest true "Fields to change"
// @Success 200 {object} model.Note
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/notes/{id} [put]
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	noteID, ok := parseNoteID(c)
	if !ok {
		return
	}

	var req model.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	note, err := h.svc.Update(c.Request.Context(), user.ID, noteID, req)
	if err != nil {
		writeNoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

// DeleteNote godoc
// @Summary Delete a note
// @Tags notes
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Success 204
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/notes/{id} [delete]
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	noteID, ok := parseNoteID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), user.ID, noteID); err != nil {
		writeNoteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// TranslateNote godoc
// @Summary Translate a note body in place
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Success 200 {object} model.Note
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 502 {object} model.ErrorResponse
// @Router /api/v1/notes/{id}/translate [post]
func (h *NoteHandler) TranslateNote(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	noteID, ok := parseNoteID(c)
	if !ok {
		return
	}

	note, err := h.svc.TranslateAndSave(c.Request.Context(), user.ID, noteID)
	if err != nil {
		writeNoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

// An unparseable id cannot name an existing note, so it reads as 404
// rather than 400.
func parseNoteID(c *gin.Context) (uuid.UUID, bool) {
	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
		return uuid.Nil, false
	}
	return noteID, true
}

func writeNoteError(c *gin.Context, err error) {
	switch err {
	case service.ErrInvalidInput:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
	case service.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
	case service.ErrTranslationUnavailable:
		c.JSON(http.StatusBadGateway, gin.H{"error": "translation unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}
