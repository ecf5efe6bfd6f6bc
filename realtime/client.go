package realtime

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client fetches the raw protobuf TripUpdates feed.
type Client struct {
	feedURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a feed client. The API key, when set, is sent as the
// x-api-key header on every request.
func NewClient(feedURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		feedURL: feedURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch fetches the current feed and returns raw protobuf bytes.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", c.feedURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, c.feedURL)
	}
	return io.ReadAll(resp.Body)
}
