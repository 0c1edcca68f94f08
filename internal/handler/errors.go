package handler

import (
	"errors"
	"net/http"

	"teerth-api/internal/normalize"
	"teerth-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// respondError maps a service error to its HTTP response. Anything that is
// not bad input or a missing place is a data source failure the client may retry.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnsupportedLanguage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported language"})
	case errors.Is(err, service.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required parameter"})
	case errors.Is(err, normalize.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "place not found"})
	default:
		log.Error().Err(err).Str("request_id", c.GetString(RequestIDKey)).Str("path", c.FullPath()).Msg("request_failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "data source unavailable", "retryable": true})
	}
}
