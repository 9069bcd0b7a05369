// Package openlibrary adapts the Open Library search and work-detail
// APIs to the catalog contract.
package openlibrary

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/moodshelfapp/moodshelf-server/internal/cache"
	"github.com/moodshelfapp/moodshelf-server/internal/catalog"
	"github.com/moodshelfapp/moodshelf-server/internal/tagger"
)

const (
	providerName = "openlibrary"

	defaultBaseURL  = "https://openlibrary.org"
	defaultCoverURL = "https://covers.openlibrary.org"

	defaultTimeout = 15 * time.Second
	defaultLimit   = 10
	maxLimit       = 50

	// Work-detail responses change rarely; cache them for a day.
	detailCacheTTL = 24 * time.Hour
)

// Client is a rate-limited Open Library client.
type Client struct {
	http     *http.Client
	limiter  *rate.Limiter
	tagger   *tagger.Tagger
	cache    cache.Cache
	logger   *slog.Logger
	baseURL  string
	coverURL string
}

// New creates a new Open Library client.
func New(tg *tagger.Tagger, c cache.Cache, logger *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		// Open Library asks for no more than a few requests per second.
		limiter:  rate.NewLimiter(rate.Limit(3), 5),
		tagger:   tg,
		cache:    c,
		logger:   logger,
		baseURL:  defaultBaseURL,
		coverURL: defaultCoverURL,
	}
}

// Name implements catalog.Adapter.
func (c *Client) Name() string { return providerName }

// doGet executes a rate-limited GET and maps error statuses to the
// shared catalog sentinels.
func (c *Client) doGet(ctx context.Context, rawURL string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := rawURL
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
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
