package editor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hazyhaar/vitrine/theme"
)

// Persistence is the theme persistence collaborator.
type Persistence interface {
	// Fetch returns the stored record (possibly empty for a new checkout).
	Fetch(ctx context.Context) (theme.Record, error)
	// Save stores the record.
	Save(ctx context.Context, rec theme.Record) error
}

// Client talks to the theme persistence API over HTTP.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
}

// ClientOption customises a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(h *http.Client) ClientOption { return func(c *Client) { c.httpc = h } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ClientOption { return func(c *Client) { c.logger = l } }

// NewClient creates a persistence client for the given API base URL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		logger:  slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Fetch implements Persistence.
func (c *Client) Fetch(ctx context.Context) (theme.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/theme", nil)
	if err != nil {
		return theme.Record{}, fmt.Errorf("editor: fetch theme: %w", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return theme.Record{}, fmt.Errorf("editor: fetch theme: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return theme.Record{}, fmt.Errorf("editor: fetch theme: status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return theme.Record{}, fmt.Errorf("editor: fetch theme: %w", err)
	}
	return theme.DecodeRecord(body), nil
}

// Save implements Persistence.
func (c *Client) Save(ctx context.Context, rec theme.Record) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("editor: save theme: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/api/v1/theme", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("editor: save theme: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("editor: save theme: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("editor: save theme: status %d", resp.StatusCode)
	}
	return nil
}
