package api

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodshelfapp/moodshelf-server/internal/catalog/reddit"
	"github.com/moodshelfapp/moodshelf-server/internal/service"
	"github.com/moodshelfapp/moodshelf-server/internal/tagger"
)

// cannedReddit serves fixed posts for every subreddit.
type cannedReddit struct {
	posts []reddit.Post
}

func (c *cannedReddit) TopPosts(context.Context, string, string, int) ([]reddit.Post, error) {
	return c.posts, nil
}

func TestImportRedditEndpoint(t *testing.T) {
	server := setupTestServer(t)
	token := registerTestUser(t, server)

	source := &cannedReddit{posts: []reddit.Post{{
		ID:          "abc1",
		Title:       "What should I read after Project Hail Mary?",
		Permalink:   "https://www.reddit.com/r/suggestmeabook/comments/abc1/",
		Score:       120,
		NumComments: 34,
	}}}
	server.services.Import = service.NewImportService(
		server.store, source, tagger.Default(),
		[]string{"suggestmeabook"}, "week", slog.New(slog.DiscardHandler),
	)

	w := doJSON(t, server, http.MethodPost, "/api/v1/import/reddit", token, nil)
	require.Equal(t, http.StatusAccepted, w.Code, "body: %s", w.Body.String())

	success, data := decodeEnvelope(t, w)
	require.True(t, success)
	assert.Equal(t, float64(1), data["fetched"])
	assert.Equal(t, float64(1), data["created"])

	// Threads list now contains the imported thread.
	w = doJSON(t, server, http.MethodGet, "/api/v1/threads", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, data = decodeEnvelope(t, w)
	threads, ok := data["threads"].([]any)
	require.True(t, ok)
	require.Len(t, threads, 1)

	thread, ok := threads[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "reddit", thread["source"])
}

func TestImportRequiresAuth(t *testing.T) {
	server := setupTestServer(t)

	w := doJSON(t, server, http.MethodPost, "/api/v1/import/reddit", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestImportNotConfigured(t *testing.T) {
	server := setupTestServer(t)
	token := registerTestUser(t, server)

	w := doJSON(t, server, http.MethodPost, "/api/v1/import/reddit", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code, "body: %s", w.Body.String())
}
