// Package events implements the HTTP client for the remote read-only
// calendar events API.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/roozegaar/calendar/internal/domain/entities"
	"github.com/roozegaar/calendar/internal/infrastructure/logger"
)

// Client talks to the upstream events service. It returns raw errors; the
// events service absorbs them into empty-result payloads.
type Client struct {
	baseURL    string
	http       *http.Client
	maxRetries uint64
	logger     *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithMaxRetries bounds how many times a transient failure is retried.
func WithMaxRetries(n uint64) Option {
	return func(c *Client) { c.maxRetries = n }
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, appLogger *logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		http:       &http.Client{Timeout: timeout},
		maxRetries: 2,
		logger:     appLogger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchMonthly requests all events of one month.
func (c *Client) FetchMonthly(ctx context.Context, calendar entities.CalendarType, yearMonth string, lang entities.Language) (*entities.EventsPayload, error) {
	return c.get(ctx, "monthly", url.Values{
		"calendar":  {string(calendar)},
		"yearMonth": {yearMonth},
		"lang":      {string(lang)},
	})
}

// FetchDaily requests the events of a single day. date is YYYY/MM/DD.
func (c *Client) FetchDaily(ctx context.Context, calendar entities.CalendarType, date string, lang entities.Language) (*entities.EventsPayload, error) {
	return c.get(ctx, "daily", url.Values{
		"calendar": {string(calendar)},
		"date":     {date},
		"lang":     {string(lang)},
	})
}

// FetchRange requests all events between start and end inclusive, both
// YYYY/MM/DD. Ranges that straddle a month boundary come back month-grouped.
func (c *Client) FetchRange(ctx context.Context, calendar entities.CalendarType, start, end string, lang entities.Language) (*entities.EventsPayload, error) {
	return c.get(ctx, "range", url.Values{
		"calendar": {string(calendar)},
		"start":    {start},
		"end":      {end},
		"lang":     {string(lang)},
	})
}

// get issues the request with bounded exponential backoff. Transport errors
// and 5xx responses are retried; 4xx responses and unsuccessful payloads are
// permanent.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values) (*entities.EventsPayload, error) {
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, query.Encode())

	var payload *entities.EventsPayload
	operation := func() error {
		var err error
		payload, err = c.doGet(ctx, reqURL)
		return err
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	if err := backoff.Retry(operation, bo); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *Client) doGet(ctx context.Context, reqURL string) (*entities.EventsPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("events API unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("events API status %d", resp.StatusCode)
		if resp.StatusCode >= 500 {
			return nil, err
		}
		return nil, backoff.Permanent(err)
	}

	var payload entities.EventsPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decode events response: %w", err))
	}

	if !payload.Success {
		return nil, backoff.Permanent(fmt.Errorf("events API returned unsuccessful response"))
	}

	c.logger.Debugw("events API response",
		"url", reqURL,
		"total_events", payload.TotalEvents,
	)
	return &payload, nil
}
