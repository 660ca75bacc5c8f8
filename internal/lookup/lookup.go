// Package lookup fetches profile records from the upstream users API.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"ghfavorites/internal/models"
)

// ErrNotFound is returned when the upstream reports the handle does not exist.
// The text is shown to users as-is, so it keeps the capitalized form they see.
var ErrNotFound = errors.New("User not found")

// maxBodySize caps how much of a profile response is read.
const maxBodySize = 1 << 20

// Source fetches a fresh record by key.
type Source interface {
	Fetch(ctx context.Context, key string) (*models.Record, error)
}

// TransportError means the lookup could not complete.
type TransportError struct {
	Key    string
	Status int // 0 when no response was received
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("lookup %s: upstream returned status %d", e.Key, e.Status)
	}
	return fmt.Sprintf("lookup %s: %v", e.Key, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client calls the users API by concatenating the base address with the key.
type Client struct {
	baseURL   string
	token     string
	userAgent string
	client    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithToken sends a bearer token with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// NewClient creates a lookup client for baseURL.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:   baseURL,
		userAgent: "ghfavorites/1.0",
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return errors.New("too many redirects")
				}
				return nil
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the address queried for key.
func (c *Client) URL(key string) string {
	return c.baseURL + url.PathEscape(key)
}

// Fetch performs a single GET for key. It never retries.
func (c *Client) Fetch(ctx context.Context, key string) (*models.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(key), nil)
	if err != nil {
		return nil, &TransportError{Key: key, Err: err}
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Key: key, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{Key: key, Status: resp.StatusCode}
	}

	var rec models.Record
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&rec); err != nil {
		return nil, &TransportError{Key: key, Err: fmt.Errorf("decode profile: %w", err)}
	}

	// lastRequestTime is only ever stamped on stored favorites.
	rec.LastFetchedAt = time.Time{}
	return &rec, nil
}
