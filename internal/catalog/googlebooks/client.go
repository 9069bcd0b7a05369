// Package googlebooks adapts the Google Books volumes API to the
// catalog contract.
package googlebooks

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
	providerName = "googlebooks"

	defaultBaseURL = "https://www.googleapis.com/books/v1"

	defaultTimeout = 15 * time.Second
	defaultLimit   = 10
	maxLimit       = 40 // the volumes API caps maxResults at 40
)

// Client is a rate-limited Google Books client.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	tagger  *tagger.Tagger
	logger  *slog.Logger
	apiKey  string
	baseURL string
}

// New creates a new Google Books client. The API key is optional;
// unauthenticated requests run under a tighter quota.
func New(tg *tagger.Tagger, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(2), 5),
		tagger:  tg,
		logger:  logger,
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
	}
}

// Name implements catalog.Adapter.
func (c *Client) Name() string { return providerName }

func (c *Client) doGet(ctx context.Context, rawURL string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	if c.apiKey != "" {
		query.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+query.Encode(), nil)
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
	case resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode == http.StatusForbidden: // quota exhaustion surfaces as 403
		return nil, catalog.ErrRateLimited
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", catalog.ErrUnavailable, resp.StatusCode)
	default:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}
