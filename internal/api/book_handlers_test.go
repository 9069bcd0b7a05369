package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodshelfapp/moodshelf-server/internal/service"
)

func TestCreateBookRequiresAuth(t *testing.T) {
	server := setupTestServer(t)

	w := doJSON(t, server, http.MethodPost, "/api/v1/books", "", service.CreateBookRequest{
		Title:  "Unauthorized",
		Author: "Nobody",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code, "body: %s", w.Body.String())
}

func TestBookCRUDFlow(t *testing.T) {
	server := setupTestServer(t)
	token := registerTestUser(t, server)

	w := doJSON(t, server, http.MethodPost, "/api/v1/books", token, service.CreateBookRequest{
		Title:       "The Silent Patient",
		Author:      "Alex Michaelides",
		Description: "A psychological mystery full of secrets.",
		PageCount:   336,
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	success, data := decodeEnvelope(t, w)
	require.True(t, success)
	bookID, _ := data["id"].(string)
	require.NotEmpty(t, bookID)
	assert.Equal(t, "Moderate", data["pace"])
	assert.Contains(t, data["tone"], "Mysterious")

	// Get is public.
	w = doJSON(t, server, http.MethodGet, "/api/v1/books/"+bookID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, data = decodeEnvelope(t, w)
	assert.Equal(t, "The Silent Patient", data["title"])

	// Patch re-derives pace from the new page count.
	pages := 700
	w = doJSON(t, server, http.MethodPatch, "/api/v1/books/"+bookID, token, service.UpdateBookRequest{
		PageCount: &pages,
	})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	_, data = decodeEnvelope(t, w)
	assert.Equal(t, "Slow", data["pace"])

	// List includes the book.
	w = doJSON(t, server, http.MethodGet, "/api/v1/books", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, data = decodeEnvelope(t, w)
	books, ok := data["books"].([]any)
	require.True(t, ok)
	assert.Len(t, books, 1)

	// Delete.
	w = doJSON(t, server, http.MethodDelete, "/api/v1/books/"+bookID, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, server, http.MethodGet, "/api/v1/books/"+bookID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetBookNotFound(t *testing.T) {
	server := setupTestServer(t)

	w := doJSON(t, server, http.MethodGet, "/api/v1/books/book-missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "body: %s", w.Body.String())
}

func TestGetCoverMissing(t *testing.T) {
	server := setupTestServer(t)

	w := doJSON(t, server, http.MethodGet, "/api/v1/books/book-1/cover", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
