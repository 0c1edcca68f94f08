package handler

import (
	"context"
	"net/http"

	"teerth-api/internal/models"

	"github.com/gin-gonic/gin"
)

// PreferenceService interface for dependency injection
type PreferenceService interface {
	ToggleFavorite(ctx context.Context, lang models.Language, placeName string) (bool, error)
	ListFavorites(ctx context.Context, lang models.Language) ([]string, error)
	GetLanguage(ctx context.Context) (models.Language, error)
	SetLanguage(ctx context.Context, lang models.Language) error
}

// PreferenceHandler handles favorites and language preference requests
type PreferenceHandler struct {
	service PreferenceService
}

// NewPreferenceHandler creates a new preference handler
func NewPreferenceHandler(svc PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{service: svc}
}

type languageRequest struct {
	Language string `json:"language" binding:"required"`
}

// ToggleFavorite handles POST /favorites/:place
func (h *PreferenceHandler) ToggleFavorite(c *gin.Context) {
	place := c.Param("place")
	on, err := h.service.ToggleFavorite(c.Request.Context(), language(c), place)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"place": place, "favorite": on})
}

// Favorites handles GET /favorites
func (h *PreferenceHandler) Favorites(c *gin.Context) {
	favs, err := h.service.ListFavorites(c.Request.Context(), language(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, favs)
}

// GetLanguage handles GET /language
func (h *PreferenceHandler) GetLanguage(c *gin.Context) {
	lang, err := h.service.GetLanguage(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"language": lang})
}

// SetLanguage handles PUT /language
func (h *PreferenceHandler) SetLanguage(c *gin.Context) {
	var req languageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required field 'language'"})
		return
	}

	lang := models.Language(req.Language)
	if err := h.service.SetLanguage(c.Request.Context(), lang); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"language": lang})
}
