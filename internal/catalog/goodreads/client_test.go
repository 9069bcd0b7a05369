package goodreads

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodshelfapp/moodshelf-server/internal/catalog"
	"github.com/moodshelfapp/moodshelf-server/internal/domain"
	"github.com/moodshelfapp/moodshelf-server/internal/tagger"
)

const searchFixture = `<?xml version="1.0" encoding="UTF-8"?>
<GoodreadsResponse>
  <search>
    <results>
      <work>
        <id>101</id>
        <original_publication_year>1987</original_publication_year>
        <average_rating>4.25</average_rating>
        <best_book>
          <title>The Cartographer's Secret</title>
          <author><name>Lena Voss</name></author>
          <image_url>https://images.gr-assets.com/books/101.jpg</image_url>
        </best_book>
      </work>
      <work>
        <id>102</id>
        <best_book>
          <title></title>
          <author><name>Nobody</name></author>
          <image_url>https://images.gr-assets.com/nophoto/book.png</image_url>
        </best_book>
      </work>
    </results>
  </search>
</GoodreadsResponse>`

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New(tagger.Default(), "test-key", slog.New(slog.DiscardHandler))
	c.baseURL = srv.URL
	return c
}

func TestSearch(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/index.xml", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Write([]byte(searchFixture))
	}))

	books, err := c.Search(context.Background(), "cartographer", 10, domain.SearchAll)
	require.NoError(t, err)
	require.Len(t, books, 1, "work with empty title should be skipped")

	book := books[0]
	assert.Equal(t, "The Cartographer's Secret", book.Title)
	assert.Equal(t, "Lena Voss", book.Author)
	assert.Equal(t, 1987, book.PublishedYear)
	assert.InDelta(t, 4.25, book.Rating, 0.001)
	assert.Equal(t, "goodreads", book.Source)
	assert.Equal(t, "https://images.gr-assets.com/books/101.jpg", book.CoverURL)
	assert.Contains(t, book.Tone, "Mysterious", "title text feeds the tagger")
	assert.Equal(t, domain.PaceModerate, book.Pace, "no page count defaults to moderate")
}

func TestSearchWithoutKey(t *testing.T) {
	c := New(tagger.Default(), "", slog.New(slog.DiscardHandler))

	_, err := c.Search(context.Background(), "anything", 10, domain.SearchAll)
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrUnavailable))
}

func TestCoverURLPlaceholder(t *testing.T) {
	assert.Empty(t, coverURL("https://images.gr-assets.com/nophoto/book.png"))
	assert.Equal(t, "https://x/y.jpg", coverURL("https://x/y.jpg"))
}
