package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/simple-notes/backend/internal/model"
	"github.com/simple-notes/backend/internal/service"
)

type TranslateHandler struct {
	svc *service.NoteService
}

func NewTranslateHandler(svc *service.NoteService) *TranslateHandler {
	return &TranslateHandler{svc: svc}
}

// Translate godoc
// @Summary Translate free text
// @Tags translate
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.TranslateRequest true "Text to translate"
// @Success 200 {object} model.TranslateResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 502 {object} model.ErrorResponse
// @Router /api/v1/translate [post]
func (h *TranslateHandler) Translate(c *gin.Context) {
	var req model.TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	translation, err := h.svc.Translate(c.Request.Context(), req.Query)
	if err != nil {
		writeNoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.TranslateResponse{Translation: translation})
}
