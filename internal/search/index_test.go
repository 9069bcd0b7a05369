package search

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodshelfapp/moodshelf-server/internal/domain"
)

func newTestIndex(t *testing.T) *SuggestIndex {
	t.Helper()

	idx, err := NewSuggestIndex(Options{
		DataPath: t.TempDir(),
		Logger:   slog.New(slog.DiscardHandler),
	})
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestSuggest(t *testing.T) {
	idx := newTestIndex(t)

	books := []domain.Book{
		{Entity: domain.Entity{ID: "book-1"}, Title: "The Name of the Wind", Author: "Patrick Rothfuss"},
		{Entity: domain.Entity{ID: "book-2"}, Title: "The Wise Man's Fear", Author: "Patrick Rothfuss"},
		{Entity: domain.Entity{ID: "book-3"}, Title: "Mistborn", Author: "Brandon Sanderson"},
	}
	require.NoError(t, idx.IndexBooks(books))

	count, err := idx.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)

	got, err := idx.Suggest(context.Background(), "wind", 10)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "book-1", got[0].ID)
	assert.Equal(t, "The Name of the Wind", got[0].Title)
	assert.Equal(t, "Patrick Rothfuss", got[0].Author)
}

func TestSuggestByAuthor(t *testing.T) {
	idx := newTestIndex(t)

	require.NoError(t, idx.IndexBook(&domain.Book{
		Entity: domain.Entity{ID: "book-9"},
		Title:  "Elantris",
		Author: "Brandon Sanderson",
	}))

	got, err := idx.Suggest(context.Background(), "sanderson", 5)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "book-9", got[0].ID)
}

func TestDeleteBook(t *testing.T) {
	idx := newTestIndex(t)

	require.NoError(t, idx.IndexBook(&domain.Book{
		Entity: domain.Entity{ID: "book-5"},
		Title:  "Gone Tomorrow",
		Author: "Lee Child",
	}))
	require.NoError(t, idx.DeleteBook("book-5"))

	count, err := idx.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}
