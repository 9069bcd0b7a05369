package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodshelfapp/moodshelf-server/internal/service"
)

func TestThreadLifecycle(t *testing.T) {
	server := setupTestServer(t)
	token := registerTestUser(t, server)

	w := doJSON(t, server, http.MethodPost, "/api/v1/threads", token, service.CreateThreadRequest{
		Title:       "Cozy mysteries for rainy weekends",
		Description: "Low stakes, small towns, lots of secrets.",
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	success, data := decodeEnvelope(t, w)
	require.True(t, success)
	threadID, _ := data["id"].(string)
	require.NotEmpty(t, threadID)
	assert.Contains(t, data["tags"], "Mysterious")
	assert.NotEmpty(t, data["creator_id"])

	// Upvote twice.
	w = doJSON(t, server, http.MethodPost, "/api/v1/threads/"+threadID+"/upvote", token, nil)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	w = doJSON(t, server, http.MethodPost, "/api/v1/threads/"+threadID+"/upvote", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, data = decodeEnvelope(t, w)
	assert.Equal(t, float64(2), data["count"])

	// Record a comment.
	w = doJSON(t, server, http.MethodPost, "/api/v1/threads/"+threadID+"/comments", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, data = decodeEnvelope(t, w)
	assert.Equal(t, float64(1), data["count"])

	// Counters survive a read.
	w = doJSON(t, server, http.MethodGet, "/api/v1/threads/"+threadID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, data = decodeEnvelope(t, w)
	assert.Equal(t, float64(2), data["upvotes"])
	assert.Equal(t, float64(1), data["comments"])

	// Delete.
	w = doJSON(t, server, http.MethodDelete, "/api/v1/threads/"+threadID, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestThreadMutationsRequireAuth(t *testing.T) {
	server := setupTestServer(t)

	w := doJSON(t, server, http.MethodPost, "/api/v1/threads", "", service.CreateThreadRequest{
		Title: "No token",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, server, http.MethodPost, "/api/v1/threads/thr-1/upvote", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpvoteUnknownThread(t *testing.T) {
	server := setupTestServer(t)
	token := registerTestUser(t, server)

	w := doJSON(t, server, http.MethodPost, "/api/v1/threads/thr-missing/upvote", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "body: %s", w.Body.String())
}
