package handler

import (
	"context"
	"net/http"

	"teerth-api/internal/models"

	"github.com/gin-gonic/gin"
)

// CalendarService interface for dependency injection
type CalendarService interface {
	GetCalendar(ctx context.Context) ([]models.CalendarYear, error)
}

// CalendarHandler handles calendar requests
type CalendarHandler struct {
	service CalendarService
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(svc CalendarService) *CalendarHandler {
	return &CalendarHandler{service: svc}
}

// Calendar handles GET /calendar
func (h *CalendarHandler) Calendar(c *gin.Context) {
	years, err := h.service.GetCalendar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, years)
}
