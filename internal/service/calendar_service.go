package service

import (
	"context"
	"fmt"

	"teerth-api/internal/cache"
	"teerth-api/internal/models"
)

// CalendarKey is the cache key of the calendar feed.
const CalendarKey = "calendar"

// CalendarFetcher reads the calendar feed.
type CalendarFetcher interface {
	Fetch(ctx context.Context) ([]models.CalendarYear, error)
}

// CalendarService serves the calendar feed through the cache.
type CalendarService struct {
	fetcher CalendarFetcher
	cache   *cache.Manager
}

// NewCalendarService creates a new calendar service
func NewCalendarService(fetcher CalendarFetcher, cacheManager *cache.Manager) *CalendarService {
	return &CalendarService{fetcher: fetcher, cache: cacheManager}
}

// GetCalendar returns every year of the calendar feed.
func (s *CalendarService) GetCalendar(ctx context.Context) ([]models.CalendarYear, error) {
	return cache.WithCache(ctx, s.cache, CalendarKey, 0, func(ctx context.Context) ([]models.CalendarYear, error) {
		years, err := s.fetcher.Fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("service: failed to fetch calendar: %w", err)
		}
		return years, nil
	})
}
