// Package scrape acquires raw candidate names and listing facts from the
// external sources. It owns all source-side I/O; the matching engine never
// sees anything but the extracted strings.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Directory sites serve bot-hostile defaults to unknown agents, so requests
// go out with a desktop browser User-Agent.
const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// Client is a shared fetcher for source pages
type Client struct {
	http *http.Client
}

// NewClient creates a fetch client with the given per-request timeout
func NewClient(timeout time.Duration) *Client {
	return &Client{
		http: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves one page and returns its body
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body of %s: %w", url, err)
	}
	return string(body), nil
}
