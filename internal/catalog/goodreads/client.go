// Package goodreads adapts the Goodreads XML search API to the catalog
// contract.
package goodreads

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/moodshelfapp/moodshelf-server/internal/catalog"
	"github.com/moodshelfapp/moodshelf-server/internal/tagger"
)

const (
	providerName = "goodreads"

	defaultBaseURL = "https://www.goodreads.com"

	defaultTimeout = 15 * time.Second
	defaultLimit   = 10
	maxLimit       = 20 // one XML results page
)

// Client is a rate-limited Goodreads client. The XML API requires a
// developer key; without one the adapter reports unavailable.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	tagger  *tagger.Tagger
	logger  *slog.Logger
	apiKey  string
	baseURL string
}

// New creates a new Goodreads client.
func New(tg *tagger.Tagger, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		// Goodreads terms allow one request per second.
		limiter: rate.NewLimiter(rate.Limit(1), 2),
		tagger:  tg,
		logger:  logger,
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
	}
}

// Name implements catalog.Adapter.
func (c *Client) Name() string { return providerName }

func (c *Client) doGet(ctx context.Context, rawURL string, query url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: no API key configured", catalog.ErrUnavailable)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	query.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/xml")
	req.Header.Set("User-Agent", "Moodshelf/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", catalog.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, catalog.ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, catalog.ErrRateLimited
	case resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: key rejected", catalog.ErrUnavailable)
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", catalog.ErrUnavailable, resp.StatusCode)
	default:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}
