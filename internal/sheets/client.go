// Package sheets reads rows of a spreadsheet range, either from the Google Sheets
// values API or from a local workbook snapshot.
package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"teerth-api/internal/metrics"
	"teerth-api/internal/models"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

// Source returns the rows of a range with the header row first.
type Source interface {
	FetchRange(ctx context.Context, rangeSpec string) ([]models.Row, error)
}

// ClientConfig configures a Client.
type ClientConfig struct {
	BaseURL       string
	APIKey        string
	SpreadsheetID string
	Retries       uint64
	RetryDelay    time.Duration
	HTTPClient    *http.Client
}

// Client fetches ranges from the Google Sheets values API.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	apiKey        string
	spreadsheetID string
	retries       uint64
	retryDelay    time.Duration
}

type valuesResponse struct {
	Range  string      `json:"range"`
	Values *[][]string `json:"values"`
}

// NewClient creates a values API client. A nil HTTPClient gets a 15s timeout client.
func NewClient(cfg ClientConfig) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		httpClient:    hc,
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:        cfg.APIKey,
		spreadsheetID: cfg.SpreadsheetID,
		retries:       cfg.Retries,
		retryDelay:    cfg.RetryDelay,
	}
}

// FetchRange reads rangeSpec from the configured spreadsheet.
func (c *Client) FetchRange(ctx context.Context, rangeSpec string) ([]models.Row, error) {
	return c.FetchSheet(ctx, c.spreadsheetID, rangeSpec)
}

// FetchSheet reads rangeSpec (e.g. "Sheet1!A1:Z100") of spreadsheet sheetID.
// NetworkError is retried up to the configured number of times; ErrMalformedResponse is not.
func (c *Client) FetchSheet(ctx context.Context, sheetID, rangeSpec string) ([]models.Row, error) {
	var rows []models.Row
	op := func() error {
		var err error
		rows, err = c.fetchOnce(ctx, sheetID, rangeSpec)
		if err != nil && !IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryDelay), c.retries), ctx)
	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("range", rangeSpec).Dur("retry_in", wait).Msg("sheet_fetch_retry")
	}
	if err := backoff.RetryNotify(op, b, notify); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) fetchOnce(ctx context.Context, sheetID, rangeSpec string) ([]models.Row, error) {
	u := c.baseURL + "/v4/spreadsheets/" + url.PathEscape(sheetID) + "/values/" + url.PathEscape(rangeSpec)
	if c.apiKey != "" {
		q := url.Values{}
		q.Set("key", c.apiKey)
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("sheets: build request: %w", err)
	}

	t0 := time.Now()
	metrics.SheetFetchTotal.WithLabelValues(rangeSpec).Inc()
	log.Debug().Str("range", rangeSpec).Msg("sheet_fetch")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.SheetFetchFailTotal.WithLabelValues(rangeSpec, "network").Inc()
		log.Error().Err(err).Str("range", rangeSpec).Str("kind", "network").Msg("sheet_fetch_error")
		return nil, &NetworkError{Range: rangeSpec, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.SheetFetchFailTotal.WithLabelValues(rangeSpec, "status").Inc()
		log.Error().Int("status", resp.StatusCode).Str("range", rangeSpec).Str("kind", "network").Msg("sheet_fetch_error")
		return nil, &NetworkError{Range: rangeSpec, StatusCode: resp.StatusCode, Err: errors.New(resp.Status)}
	}

	var body valuesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		metrics.SheetFetchFailTotal.WithLabelValues(rangeSpec, "malformed").Inc()
		log.Error().Err(err).Str("range", rangeSpec).Str("kind", "malformed").Msg("sheet_decode_error")
		return nil, fmt.Errorf("sheets: decode %q: %w: %v", rangeSpec, ErrMalformedResponse, err)
	}
	if body.Values == nil || len(*body.Values) == 0 {
		metrics.SheetFetchFailTotal.WithLabelValues(rangeSpec, "malformed").Inc()
		log.Error().Str("range", rangeSpec).Str("kind", "malformed").Msg("sheet_values_missing")
		return nil, fmt.Errorf("sheets: range %q has no values: %w", rangeSpec, ErrMalformedResponse)
	}

	dur := time.Since(t0).Milliseconds()
	metrics.SheetFetchDurationMs.Observe(float64(dur))
	log.Debug().Str("range", rangeSpec).Int("rows", len(*body.Values)).Int64("duration_ms", dur).Msg("sheet_fetch_done")

	rows := make([]models.Row, len(*body.Values))
	for i, r := range *body.Values {
		rows[i] = models.Row(r)
	}
	return rows, nil
}
