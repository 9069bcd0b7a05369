package reddit

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodshelfapp/moodshelf-server/internal/catalog"
)

const listingFixture = `{
	"data": {
		"children": [
			{
				"data": {
					"id": "abc1",
					"title": "What should I read after Project Hail Mary?",
					"selftext": "Looking for something hopeful and science-heavy.",
					"author": "bookworm42",
					"subreddit": "suggestmeabook",
					"permalink": "/r/suggestmeabook/comments/abc1/what_should_i_read/",
					"score": 412,
					"num_comments": 87,
					"created_utc": 1756600000
				}
			},
			{
				"data": {"id": "abc2", "title": "", "permalink": ""}
			}
		]
	}
}`

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New("moodshelf-test", slog.New(slog.DiscardHandler))
	c.baseURL = srv.URL
	return c
}

func TestTopPosts(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/r/suggestmeabook/top.json", r.URL.Path)
		assert.Equal(t, "week", r.URL.Query().Get("t"))
		assert.Equal(t, "moodshelf-test", r.Header.Get("User-Agent"))
		w.Write([]byte(listingFixture))
	}))

	posts, err := c.TopPosts(context.Background(), "suggestmeabook", "", 25)
	require.NoError(t, err)
	require.Len(t, posts, 1, "post without title or permalink should be skipped")

	post := posts[0]
	assert.Equal(t, "abc1", post.ID)
	assert.Equal(t, "What should I read after Project Hail Mary?", post.Title)
	assert.Equal(t, "bookworm42", post.Author)
	assert.Equal(t, "suggestmeabook", post.Subreddit)
	assert.Equal(t, int64(412), post.Score)
	assert.Equal(t, int64(87), post.NumComments)
	assert.Contains(t, post.Permalink, "https://www.reddit.com/r/suggestmeabook/")
	assert.Equal(t, time.Unix(1756600000, 0).UTC(), post.CreatedUTC)
}

func TestTopPostsThrottled(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := c.TopPosts(context.Background(), "books", "week", 25)
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrRateLimited))
}
