package handler

import (
	"net/http"

	"teerth-api/internal/metrics"

	"github.com/gin-gonic/gin"
)

// NewRouter registers every route on a new engine.
func NewRouter(catalog *CatalogHandler, prefs *PreferenceHandler, calendar *CalendarHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.GET("/states", catalog.States)
	r.GET("/states/:state/places", catalog.Places)
	r.GET("/places/:place", catalog.PlaceDetails)
	r.GET("/places/:place/images", catalog.Images)
	r.GET("/places/:place/videos", catalog.Videos)

	r.GET("/favorites", prefs.Favorites)
	r.POST("/favorites/:place", prefs.ToggleFavorite)
	r.GET("/language", prefs.GetLanguage)
	r.PUT("/language", prefs.SetLanguage)

	r.GET("/calendar", calendar.Calendar)

	return r
}
