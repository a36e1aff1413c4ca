// Package postal is the client for the postal lookup collaborator. Lookups
// are best-effort autofill: a code that does not resolve leaves the address
// fields editable by hand, it never blocks manual entry.
package postal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Result is a successful lookup.
type Result struct {
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// Client queries a ViaCEP-compatible endpoint.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
}

// Option customises the client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.httpc = h } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(c *Client) { c.logger = l } }

// NewClient creates a lookup client for the given upstream base URL.
func NewClient(baseURL string, opts ...Option) *Client {
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

// Lookup resolves an already-normalized 8-digit code. A miss is not an
// error: it returns found=false and the caller falls back to manual entry.
func (c *Client) Lookup(ctx context.Context, code string) (Result, bool, error) {
	url := fmt.Sprintf("%s/ws/%s/json", c.baseURL, code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{}, false, fmt.Errorf("postal: build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Result{}, false, fmt.Errorf("postal: lookup %s: %w", code, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Result{}, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return Result{}, false, fmt.Errorf("postal: lookup %s: status %d", code, resp.StatusCode)
	}

	// ViaCEP wire format: a miss is HTTP 200 with {"erro": true}.
	var body struct {
		Street       string `json:"logradouro"`
		Neighborhood string `json:"bairro"`
		City         string `json:"localidade"`
		State        string `json:"uf"`
		Miss         bool   `json:"erro"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, false, fmt.Errorf("postal: decode response: %w", err)
	}
	if body.Miss {
		return Result{}, false, nil
	}

	return Result{
		Street:       body.Street,
		Neighborhood: body.Neighborhood,
		City:         body.City,
		State:        body.State,
	}, true, nil
}
