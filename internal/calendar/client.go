// Package calendar reads the yearly calendar feed.
package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"teerth-api/internal/models"

	"github.com/rs/zerolog/log"
)

type feed struct {
	Calendars []models.CalendarYear `json:"calendars"`
}

// Client fetches the calendar feed from a fixed URL.
type Client struct {
	url  string
	http *http.Client
}

// NewClient creates a client. A nil httpClient gets a 10s timeout.
func NewClient(url string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{url: url, http: httpClient}
}

// Fetch returns every year of the feed in feed order.
func (c *Client) Fetch(ctx context.Context) ([]models.CalendarYear, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("calendar: failed to build request: %w", err)
	}

	t0 := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("calendar_http_error")
		return nil, fmt.Errorf("calendar: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error().Int("status", resp.StatusCode).Msg("calendar_http_error")
		return nil, fmt.Errorf("calendar: unexpected status %d", resp.StatusCode)
	}

	var f feed
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		log.Error().Err(err).Msg("calendar_decode_error")
		return nil, fmt.Errorf("calendar: failed to decode feed: %w", err)
	}
	if f.Calendars == nil {
		f.Calendars = []models.CalendarYear{}
	}

	log.Debug().Int("years", len(f.Calendars)).Int64("duration_ms", time.Since(t0).Milliseconds()).Msg("calendar_fetched")
	return f.Calendars, nil
}
