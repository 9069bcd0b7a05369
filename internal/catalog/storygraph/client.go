// Package storygraph adapts the StoryGraph search pages to the catalog
// contract. There is no public API, so results are scraped from the
// search results markup.
package storygraph

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
	providerName = "storygraph"

	defaultBaseURL = "https://app.thestorygraph.com"

	defaultTimeout = 15 * time.Second
	defaultLimit   = 10
	maxLimit       = 25
)

// Client is a rate-limited StoryGraph scraper.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	tagger  *tagger.Tagger
	logger  *slog.Logger
	baseURL string
}

// New creates a new StoryGraph client.
func New(tg *tagger.Tagger, logger *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		// Be a polite scraper.
		limiter: rate.NewLimiter(rate.Limit(0.5), 1),
		tagger:  tg,
		logger:  logger,
		baseURL: defaultBaseURL,
	}
}

// Name implements catalog.Adapter.
func (c *Client) Name() string { return providerName }

func (c *Client) doGet(ctx context.Context, rawURL string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/html")
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
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", catalog.ErrUnavailable, resp.StatusCode)
	default:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}
