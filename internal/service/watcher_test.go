package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDropSingleAndArray(t *testing.T) {
	single := []byte(`{"title": "One thread", "upvotes": 3}`)
	records, err := decodeDrop(single)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "One thread", records[0].Title)
	assert.Equal(t, int64(3), records[0].Upvotes)

	array := []byte(`[{"title": "A"}, {"title": "B"}]`)
	records, err = decodeDrop(array)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	_, err = decodeDrop([]byte(`not json`))
	assert.Error(t, err)
}

func TestDropWatcherSweepIngestsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	export := `[
		{"title": "Imported one", "permalink": "https://example.com/t/1", "upvotes": 10},
		{"title": "Imported two", "upvotes": 2},
		{"title": ""}
	]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "export.json"), []byte(export), 0644))

	st := newMemStore()
	w, err := NewDropWatcher(dir, st, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	defer w.watcher.Close()

	w.sweep(context.Background())

	thread, err := st.GetThreadByPermalink(context.Background(), "https://example.com/t/1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), thread.Upvotes)

	// Ingested file is removed, so a second sweep is a no-op.
	_, err = os.Stat(filepath.Join(dir, "export.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestDropWatcherUpsertsByPermalink(t *testing.T) {
	dir := t.TempDir()
	st := newMemStore()
	w, err := NewDropWatcher(dir, st, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	defer w.watcher.Close()

	created, err := w.upsert(context.Background(), droppedThread{
		Title:     "Community picks",
		Permalink: "https://example.com/t/9",
		Upvotes:   5,
	})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = w.upsert(context.Background(), droppedThread{
		Title:     "Community picks",
		Permalink: "https://example.com/t/9",
		Upvotes:   12,
	})
	require.NoError(t, err)
	assert.False(t, created)

	thread, err := st.GetThreadByPermalink(context.Background(), "https://example.com/t/9")
	require.NoError(t, err)
	assert.Equal(t, int64(12), thread.Upvotes)

	// A stale export with lower counters cannot roll the thread back.
	created, err = w.upsert(context.Background(), droppedThread{
		Title:     "Community picks",
		Permalink: "https://example.com/t/9",
		Upvotes:   4,
	})
	require.NoError(t, err)
	assert.False(t, created)

	thread, err = st.GetThreadByPermalink(context.Background(), "https://example.com/t/9")
	require.NoError(t, err)
	assert.Equal(t, int64(12), thread.Upvotes)
}

func TestDropWatcherStopsCleanlyWithPendingFiles(t *testing.T) {
	dir := t.TempDir()
	st := newMemStore()
	w, err := NewDropWatcher(dir, st, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	// Drop more files than the ingest buffer holds, then cancel while
	// their settle timers are still pending.
	for i := 0; i < 20; i++ {
		name := filepath.Join(dir, fmt.Sprintf("export%02d.json", i))
		require.NoError(t, os.WriteFile(name, []byte(`{"title": "Pending"}`), 0644))
	}
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
	assert.Empty(t, w.pending)
}

func TestDropWatcherSetsAsideMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{{{`), 0644))

	st := newMemStore()
	w, err := NewDropWatcher(dir, st, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	defer w.watcher.Close()

	w.ingestFile(context.Background(), path)

	_, err = os.Stat(path + ".rejected")
	assert.NoError(t, err, "malformed file should be renamed aside")
}
