package handler

import (
	"context"
	"net/http"

	"teerth-api/internal/models"

	"github.com/gin-gonic/gin"
)

// CatalogService interface for dependency injection
type CatalogService interface {
	GetStates(ctx context.Context, lang models.Language, q string) ([]models.StateEntry, error)
	GetPlacesByState(ctx context.Context, lang models.Language, stateName, q string) ([]models.PlaceSummary, error)
	GetPlaceDetails(ctx context.Context, lang models.Language, placeName string) (*models.PlaceDetails, error)
	GetImagesForPlace(ctx context.Context, lang models.Language, stateName, placeName string) ([]string, error)
	GetVideosForPlace(ctx context.Context, lang models.Language, placeName string) ([]models.Video, error)
}

// CatalogHandler handles the state and place browsing requests
type CatalogHandler struct {
	service CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(svc CatalogService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// language reads the lang query parameter, English when absent or empty.
func language(c *gin.Context) models.Language {
	if v := c.Query("lang"); v != "" {
		return models.Language(v)
	}
	return models.English
}

// States handles GET /states
func (h *CatalogHandler) States(c *gin.Context) {
	states, err := h.service.GetStates(c.Request.Context(), language(c), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, states)
}

// Places handles GET /states/:state/places
func (h *CatalogHandler) Places(c *gin.Context) {
	places, err := h.service.GetPlacesByState(c.Request.Context(), language(c), c.Param("state"), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, places)
}

// PlaceDetails handles GET /places/:place
func (h *CatalogHandler) PlaceDetails(c *gin.Context) {
	details, err := h.service.GetPlaceDetails(c.Request.Context(), language(c), c.Param("place"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// Images handles GET /places/:place/images
func (h *CatalogHandler) Images(c *gin.Context) {
	images, err := h.service.GetImagesForPlace(c.Request.Context(), language(c), c.Query("state"), c.Param("place"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, images)
}

// Videos handles GET /places/:place/videos
func (h *CatalogHandler) Videos(c *gin.Context) {
	videos, err := h.service.GetVideosForPlace(c.Request.Context(), language(c), c.Param("place"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, videos)
}
