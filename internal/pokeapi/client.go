package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Live upstream base (public, no auth).
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// Client talks to the upstream catalog service. BaseURL is overridable so
// a local mirror or a test server can stand in for the live API. Dependent
// records are fetched from URLs embedded in prior responses; only pokemon
// lookups are built from BaseURL plus an id or name.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// pokemonURL builds the primary-entity endpoint from a known id or name.
func (c *Client) pokemonURL(ref string) string {
	return c.BaseURL + "/pokemon/" + ref
}

// getJSON performs one GET and decodes the body into v, mapping failures
// onto the package error model: 404 wraps ErrNotFound, any other non-2xx
// becomes a *StatusError, transport errors are wrapped as-is, and decode
// failures wrap ErrMalformed.
func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("pokeapi: build request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("pokeapi: request %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", url, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, URL: url}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("pokeapi: read %s: %w", url, err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrMalformed, url, err)
	}
	return nil
}
