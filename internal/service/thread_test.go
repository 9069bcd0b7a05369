package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/moodshelfapp/moodshelf-server/internal/errors"
	"github.com/moodshelfapp/moodshelf-server/internal/store"
	"github.com/moodshelfapp/moodshelf-server/internal/tagger"
)

func newThreadService(st store.Store) *ThreadService {
	return NewThreadService(st, tagger.Default(), slog.New(slog.DiscardHandler))
}

func TestCreateThreadTagsText(t *testing.T) {
	svc := newThreadService(newMemStore())

	thread, err := svc.CreateThread(context.Background(), CreateThreadRequest{
		Title:       "Books with a dark mystery at their heart",
		Description: "Looking for something with secrets and a slow unraveling.",
		CreatorID:   "usr-1",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(thread.ID, "thr-"))
	assert.Contains(t, thread.Tags, "Mysterious")
	assert.Equal(t, "usr-1", thread.CreatorID)
	assert.Zero(t, thread.Upvotes)
}

func TestCreateThreadRejectsUnknownBook(t *testing.T) {
	svc := newThreadService(newMemStore())

	_, err := svc.CreateThread(context.Background(), CreateThreadRequest{
		Title:   "Linked to nothing",
		BookIDs: []string{"book-missing"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidation))
}

func TestCreateThreadLinksExistingBooks(t *testing.T) {
	st := newMemStore()
	seedBook(t, st, "book-1", "Dune", "Frank Herbert")
	svc := newThreadService(st)

	thread, err := svc.CreateThread(context.Background(), CreateThreadRequest{
		Title:   "Desert epics",
		BookIDs: []string{"book-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"book-1"}, thread.BookIDs)
}

func TestUpvoteAndComment(t *testing.T) {
	st := newMemStore()
	svc := newThreadService(st)

	thread, err := svc.CreateThread(context.Background(), CreateThreadRequest{Title: "Counters"})
	require.NoError(t, err)

	n, err := svc.Upvote(context.Background(), thread.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = svc.Upvote(context.Background(), thread.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = svc.AddComment(context.Background(), thread.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestUpvoteNotFound(t *testing.T) {
	svc := newThreadService(newMemStore())

	_, err := svc.Upvote(context.Background(), "thr-missing")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestUpdateThreadRetags(t *testing.T) {
	svc := newThreadService(newMemStore())

	thread, err := svc.CreateThread(context.Background(), CreateThreadRequest{
		Title: "Plain title with no vocabulary hits",
	})
	require.NoError(t, err)

	title := "Heartwarming stories about found family"
	updated, err := svc.UpdateThread(context.Background(), thread.ID, UpdateThreadRequest{Title: &title})
	require.NoError(t, err)
	assert.Contains(t, updated.Tags, "Heartwarming")
}

func TestDeleteThread(t *testing.T) {
	svc := newThreadService(newMemStore())

	thread, err := svc.CreateThread(context.Background(), CreateThreadRequest{Title: "Gone soon"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteThread(context.Background(), thread.ID))
	_, err = svc.GetThread(context.Background(), thread.ID)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestListThreads(t *testing.T) {
	svc := newThreadService(newMemStore())

	for _, title := range []string{"One", "Two", "Three"} {
		_, err := svc.CreateThread(context.Background(), CreateThreadRequest{Title: title})
		require.NoError(t, err)
	}

	page, err := svc.ListThreads(context.Background(), store.DefaultPaginationParams())
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
}
