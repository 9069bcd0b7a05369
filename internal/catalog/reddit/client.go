// Package reddit fetches top posts from book-discussion subreddits for
// the thread importer.
package reddit

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/moodshelfapp/moodshelf-server/internal/catalog"
)

const (
	providerName = "reddit"

	defaultBaseURL = "https://www.reddit.com"

	defaultTimeout = 15 * time.Second
	defaultLimit   = 25
	maxLimit       = 100
)

// Post is one subreddit submission.
type Post struct {
	ID          string
	Title       string
	SelfText    string
	Author      string
	Subreddit   string
	Permalink   string
	Score       int64
	NumComments int64
	CreatedUTC  time.Time
}

// Client is a rate-limited Reddit client using the public JSON
// listings; no OAuth is required for read-only access.
type Client struct {
	http      *http.Client
	limiter   *rate.Limiter
	logger    *slog.Logger
	userAgent string
	baseURL   string
}

// New creates a new Reddit client. Reddit requires a descriptive
// User-Agent; a generic one gets throttled aggressively.
func New(userAgent string, logger *slog.Logger) *Client {
	if userAgent == "" {
		userAgent = "moodshelf:thread-importer:v1.0"
	}
	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter:   rate.NewLimiter(rate.Limit(1), 2),
		logger:    logger,
		userAgent: userAgent,
		baseURL:   defaultBaseURL,
	}
}

// Name returns the provider name.
func (c *Client) Name() string { return providerName }

// TopPosts fetches the top listing for a subreddit over the given time
// window ("day", "week", "month", "year", "all").
func (c *Client) TopPosts(ctx context.Context, subreddit, window string, limit int) ([]Post, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if window == "" {
		window = "week"
	}

	params := url.Values{}
	params.Set("t", window)
	params.Set("limit", strconv.Itoa(limit))

	body, err := c.doGet(ctx, fmt.Sprintf("%s/r/%s/top.json", c.baseURL, subreddit), params)
	if err != nil {
		return nil, catalog.WrapError(providerName, "topPosts", err)
	}

	var resp listingResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, catalog.WrapError(providerName, "topPosts", fmt.Errorf("%w: %v", catalog.ErrMalformed, err))
	}

	posts := make([]Post, 0, len(resp.Data.Children))
	for _, child := range resp.Data.Children {
		d := child.Data
		if d.Title == "" || d.Permalink == "" {
			c.logger.Debug("skipping malformed post", "provider", providerName, "id", d.ID)
			continue
		}
		posts = append(posts, Post{
			ID:          d.ID,
			Title:       d.Title,
			SelfText:    d.SelfText,
			Author:      d.Author,
			Subreddit:   d.Subreddit,
			Permalink:   defaultBaseURL + d.Permalink,
			Score:       d.Score,
			NumComments: d.NumComments,
			CreatedUTC:  time.Unix(int64(d.CreatedUTC), 0).UTC(),
		})
	}

	return posts, nil
}

func (c *Client) doGet(ctx context.Context, rawURL string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

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

// Raw API response types.

type listingResponse struct {
	Data struct {
		Children []struct {
			Data postData `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type postData struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	SelfText    string  `json:"selftext"`
	Author      string  `json:"author"`
	Subreddit   string  `json:"subreddit"`
	Permalink   string  `json:"permalink"`
	Score       int64   `json:"score"`
	NumComments int64   `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
}
