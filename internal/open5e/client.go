package open5e

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the public Open5e endpoint.
const DefaultBaseURL = "https://api.open5e.com"

const userAgent = "ttrpg-cli"

var (
	// ErrNotFound is returned when a lookup matches no records.
	ErrNotFound = errors.New("not found")

	// ErrRequest wraps transport failures, unexpected statuses and
	// undecodable responses.
	ErrRequest = errors.New("open5e request failed")
)

// Config configures a Client.
type Config struct {
	// BaseURL defaults to DefaultBaseURL when empty.
	BaseURL string
	// Timeout bounds each request; zero means no client-side timeout.
	Timeout time.Duration
	// HTTPClient overrides the transport. Timeout is ignored when set.
	HTTPClient *http.Client
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// Client fetches single records by slug. It issues exactly one GET per
// lookup and inspects only the first page of results.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *zap.Logger
}

// NewClient builds a Client from cfg.
//
// Postcondition: Returns a usable Client, or an error if BaseURL is not an
// absolute http(s) URL.
func NewClient(cfg Config) (*Client, error) {
	raw := cfg.BaseURL
	if raw == "" {
		raw = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be an absolute http(s) url", raw)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{baseURL: u, http: hc, logger: logger}, nil
}

// GetClass returns the class whose slug matches name.
//
// Postcondition: Returns the first matching record, an error wrapping
// ErrNotFound, or an error wrapping ErrRequest.
func (c *Client) GetClass(ctx context.Context, name string) (*Class, error) {
	return getFirst[Class](ctx, c, "classes", "class", name)
}

// GetSpell returns the spell whose slug matches name.
//
// Postcondition: Returns the first matching record, an error wrapping
// ErrNotFound, or an error wrapping ErrRequest.
func (c *Client) GetSpell(ctx context.Context, name string) (*Spell, error) {
	return getFirst[Spell](ctx, c, "spells", "spell", name)
}

func getFirst[T any](ctx context.Context, c *Client, resource, kind, name string) (*T, error) {
	slug := Slug(name)
	if slug == "" {
		return nil, fmt.Errorf("%s %q: %w", kind, name, ErrNotFound)
	}

	u := c.baseURL.JoinPath(resource, "/")
	u.RawQuery = url.Values{"slug": {slug}}.Encode()

	var page Page[T]
	start := time.Now()
	if err := c.getJSON(ctx, u.String(), &page); err != nil {
		return nil, err
	}
	c.logger.Debug("open5e lookup",
		zap.String("resource", resource),
		zap.String("slug", slug),
		zap.Int("count", page.Count),
		zap.Duration("elapsed", time.Since(start)),
	)

	if len(page.Results) == 0 {
		return nil, fmt.Errorf("%s %q: %w", kind, slug, ErrNotFound)
	}
	first := page.Results[0]
	return &first, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%w: building request: %v", ErrRequest, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: GET %s: unexpected status %s", ErrRequest, rawURL, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", ErrRequest, rawURL, err)
	}
	return nil
}
