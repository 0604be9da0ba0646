// Package fetch loads a contributions map from a JSON object keyed by ISO dates.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/stsysd/kusa/activity"
)

// Client fetches contributions from a fixed URL with a single GET.
// There is no retry and no cache; cancellation follows the request context.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a client. A nil httpClient means http.DefaultClient.
func NewClient(url string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{url: url, httpClient: httpClient}
}

// URL returns the endpoint the client reads from.
func (c *Client) URL() string {
	return c.url
}

// Fetch implements view.Source.
func (c *Client) Fetch(ctx context.Context) (activity.Contributions, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contributions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status fetching contributions: %s", resp.Status)
	}

	return Decode(resp.Body)
}

// File reads the same JSON object from a local file.
type File string

// Fetch implements view.Source.
func (f File) Fetch(ctx context.Context) (activity.Contributions, error) {
	file, err := os.Open(string(f))
	if err != nil {
		return nil, fmt.Errorf("failed to open contributions file: %w", err)
	}
	defer file.Close()
	return Decode(file)
}

// Decode parses a JSON object of ISO date to count. Keys that are not ISO
// dates are logged and skipped.
func Decode(r io.Reader) (activity.Contributions, error) {
	var raw map[string]int
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid contributions JSON: %w", err)
	}

	contributions := make(activity.Contributions, len(raw))
	for date, count := range raw {
		if !activity.IsDate(date) {
			log.Printf("Skipping contribution with invalid date key %q", date)
			continue
		}
		contributions[date] = count
	}
	return contributions, nil
}
