package sqlite

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodshelfapp/moodshelf-server/internal/domain"
	"github.com/moodshelfapp/moodshelf-server/internal/store"
)

func TestBookCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	book := testBook("book-1", "The Silent Patient", "Alex Michaelides")
	book.ISBN = "9781250301697"
	book.PublishedYear = 2019
	book.PageCount = 336
	book.Rating = 4.1
	book.Description = "A psychological thriller."
	book.Pace = domain.PaceModerate
	book.Tone = []string{"Dark", "Suspenseful"}
	book.Themes = []string{"Identity"}
	book.Professions = []string{"Healthcare Workers"}
	book.Source = "local"

	require.NoError(t, s.CreateBook(ctx, book))

	got, err := s.GetBook(ctx, "book-1")
	require.NoError(t, err)
	assert.Equal(t, book.Title, got.Title)
	assert.Equal(t, book.Author, got.Author)
	assert.Equal(t, book.ISBN, got.ISBN)
	assert.Equal(t, book.Pace, got.Pace)
	assert.Equal(t, book.Tone, got.Tone)
	assert.Equal(t, book.Themes, got.Themes)
	assert.Equal(t, book.Professions, got.Professions)
	assert.WithinDuration(t, book.CreatedAt, got.CreatedAt, 0)

	got.Title = "The Silent Patient (revised)"
	got.Touch()
	require.NoError(t, s.UpdateBook(ctx, got))

	updated, err := s.GetBook(ctx, "book-1")
	require.NoError(t, err)
	assert.Equal(t, "The Silent Patient (revised)", updated.Title)

	require.NoError(t, s.DeleteBook(ctx, "book-1"))

	_, err = s.GetBook(ctx, "book-1")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestCreateBookDuplicateID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateBook(ctx, testBook("book-1", "A", "X")))

	err := s.CreateBook(ctx, testBook("book-1", "B", "Y"))
	assert.True(t, errors.Is(err, store.ErrAlreadyExists))
}

func TestUpdateBookNotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateBook(context.Background(), testBook("book-missing", "A", "X"))
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestListBooksPagination(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := range 5 {
		id := fmt.Sprintf("book-%02d", i)
		require.NoError(t, s.CreateBook(ctx, testBook(id, "Title "+id, "Author")))
	}

	page1, err := s.ListBooks(ctx, store.PaginationParams{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page1.Items, 2)
	assert.True(t, page1.HasMore)
	assert.NotEmpty(t, page1.NextCursor)

	page2, err := s.ListBooks(ctx, store.PaginationParams{Limit: 2, Cursor: page1.NextCursor})
	require.NoError(t, err)
	require.Len(t, page2.Items, 2)
	assert.NotEqual(t, page1.Items[0].ID, page2.Items[0].ID)

	page3, err := s.ListBooks(ctx, store.PaginationParams{Limit: 2, Cursor: page2.NextCursor})
	require.NoError(t, err)
	require.Len(t, page3.Items, 1)
	assert.False(t, page3.HasMore)
	assert.Empty(t, page3.NextCursor)
}

func TestAllBooks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateBook(ctx, testBook("book-1", "A", "X")))
	require.NoError(t, s.CreateBook(ctx, testBook("book-2", "B", "Y")))

	books, err := s.AllBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 2)
}

func TestEmptyTagListsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateBook(ctx, testBook("book-1", "A", "X")))

	got, err := s.GetBook(ctx, "book-1")
	require.NoError(t, err)
	assert.Nil(t, got.Tone)
	assert.Nil(t, got.Themes)
}
