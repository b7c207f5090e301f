// Package seatsaero provides the HTTP client for the seats.aero Partner API
// bulk-availability endpoint.
//
// Seats.aero uses cursor-based pagination and Partner-Authorization header
// auth, and reports the partner's remaining daily quota in the
// X-Ratelimit-Remaining response header. Outbound pacing is handled via a
// token bucket limiter.
package seatsaero

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the seats.aero Partner API root.
	BaseURL = "https://seats.aero/partnerapi"

	// DailyLimit is the partner-tier daily request allowance; RemainingCalls
	// starts from it until the first response header arrives.
	DailyLimit = 1000
)

// SourceError is a non-2xx response from seats.aero. The run treats it as a
// per-source failure, never as silence.
type SourceError struct {
	StatusCode int
	Body       string
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("seats.aero returned %d: %s", e.StatusCode, truncate(e.Body, 200))
}

// Client is the seats.aero Partner API client. Construct it once and share
// it across a run; it is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter

	mu             sync.Mutex
	callsRemaining int
}

// NewClient creates a seats.aero client with outbound pacing.
func NewClient(baseURL, apiKey string, requestsPerMinute int) *Client {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		baseURL:        baseURL,
		apiKey:         apiKey,
		limiter:        rate.NewLimiter(rate.Limit(rps), 1),
		callsRemaining: DailyLimit,
	}
}

// RemainingCalls reports the provider's remaining daily quota as of the last
// response.
func (c *Client) RemainingCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.callsRemaining
}

// BulkPage is one page of the /availability bulk endpoint.
type BulkPage struct {
	Data    []Availability `json:"data"`
	Count   int            `json:"count"`
	HasMore bool           `json:"hasMore"`
	Cursor  int64          `json:"cursor"`
}

// NextCursor returns the cursor parameter for the following page, or "" when
// pagination is exhausted.
func (p *BulkPage) NextCursor() string {
	if !p.HasMore {
		return ""
	}
	return fmt.Sprintf("%d", p.Cursor)
}

// GetBulkAvailability fetches one page of bulk availability for a source.
// Pass cursor "" for the first page.
func (c *Client) GetBulkAvailability(ctx context.Context, source, cursor string) (*BulkPage, error) {
	params := url.Values{"source": {source}}
	if cursor != "" {
		params.Set("cursor", cursor)
	}

	var page BulkPage
	if err := c.get(ctx, "/availability", params, &page); err != nil {
		return nil, fmt.Errorf("fetch bulk availability %s: %w", source, err)
	}
	return &page, nil
}

// get performs a rate-limited GET request against the Partner API.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Partner-Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if remaining := resp.Header.Get("X-Ratelimit-Remaining"); remaining != "" {
		if n, convErr := parseIntHeader(remaining); convErr == nil {
			c.mu.Lock()
			c.callsRemaining = n
			c.mu.Unlock()
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &SourceError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseIntHeader(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err
}

// truncate returns a truncated string representation for error messages.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
