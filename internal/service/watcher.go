package service

import (
	"context"
	"encoding/json/v2"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/moodshelfapp/moodshelf-server/internal/domain"
	"github.com/moodshelfapp/moodshelf-server/internal/id"
	"github.com/moodshelfapp/moodshelf-server/internal/store"
)

// settleDelay is how long to wait after the last write event before
// ingesting a file. Editors and exporters write in bursts.
const settleDelay = 500 * time.Millisecond

// droppedThread is the on-disk export format the drop watcher ingests.
// A drop file holds either one record or an array of them.
type droppedThread struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Upvotes     int64    `json:"upvotes,omitempty"`
	Comments    int64    `json:"comments,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Source      string   `json:"source,omitempty"`
	Permalink   string   `json:"permalink,omitempty"`
}

// DropWatcher ingests exported thread JSON files placed in a drop
// directory at runtime. Files are deleted after successful ingestion.
type DropWatcher struct {
	dir     string
	store   store.Store
	logger  *slog.Logger
	watcher *fsnotify.Watcher

	// pending tracks files waiting out their settle delay.
	pending map[string]*time.Timer
}

// NewDropWatcher creates a watcher over dir, creating it if needed.
func NewDropWatcher(dir string, st store.Store, logger *slog.Logger) (*DropWatcher, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}

	return &DropWatcher{
		dir:     dir,
		store:   st,
		logger:  logger,
		watcher: fw,
		pending: make(map[string]*time.Timer),
	}, nil
}

// Start ingests any files already present, then blocks processing events
// until the context is cancelled.
func (w *DropWatcher) Start(ctx context.Context) error {
	defer w.watcher.Close()
	defer w.drainPending()

	w.sweep(ctx)

	ingest := make(chan string, 16)
	stopped := make(chan struct{})
	defer close(stopped)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !strings.HasSuffix(event.Name, ".json") {
				continue
			}
			w.schedule(event.Name, ingest, stopped)
		case path := <-ingest:
			delete(w.pending, path)
			w.ingestFile(ctx, path)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("drop watcher error", "error", err)
		}
	}
}

// schedule (re)arms the settle timer for a file. A fired timer gives up
// on its send once Start has returned, so no goroutine outlives the loop.
func (w *DropWatcher) schedule(path string, ingest chan<- string, stopped <-chan struct{}) {
	if timer, ok := w.pending[path]; ok {
		timer.Reset(settleDelay)
		return
	}
	w.pending[path] = time.AfterFunc(settleDelay, func() {
		select {
		case ingest <- path:
		case <-stopped:
		}
	})
}

// drainPending stops timers still waiting out their settle delay.
func (w *DropWatcher) drainPending() {
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
}

// sweep ingests files that were dropped while the watcher was down.
func (w *DropWatcher) sweep(ctx context.Context) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.logger.Warn("failed to read drop dir", "dir", w.dir, "error", err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		w.ingestFile(ctx, filepath.Join(w.dir, entry.Name()))
	}
}

// ingestFile reads one drop file and upserts its threads. Malformed files
// are renamed aside rather than retried forever.
func (w *DropWatcher) ingestFile(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		w.logger.Warn("failed to read drop file", "path", path, "error", err)
		return
	}

	records, err := decodeDrop(data)
	if err != nil {
		w.logger.Warn("malformed drop file", "path", path, "error", err)
		if renameErr := os.Rename(path, path+".rejected"); renameErr != nil {
			w.logger.Warn("failed to set aside drop file", "path", path, "error", renameErr)
		}
		return
	}

	created, updated := 0, 0
	for _, record := range records {
		if record.Title == "" {
			continue
		}
		wasCreated, err := w.upsert(ctx, record)
		if err != nil {
			w.logger.Warn("failed to ingest dropped thread", "title", record.Title, "error", err)
			continue
		}
		if wasCreated {
			created++
		} else {
			updated++
		}
	}

	if err := os.Remove(path); err != nil {
		w.logger.Warn("failed to remove ingested drop file", "path", path, "error", err)
	}
	w.logger.Info("ingested drop file", "path", path, "created", created, "updated", updated)
}

// upsert writes one dropped record, deduplicating by permalink when the
// record carries one.
func (w *DropWatcher) upsert(ctx context.Context, record droppedThread) (created bool, err error) {
	if record.Permalink != "" {
		existing, err := w.store.GetThreadByPermalink(ctx, record.Permalink)
		switch {
		case err == nil:
			// Counters only move up; a stale export cannot roll them back.
			existing.Upvotes = max(existing.Upvotes, record.Upvotes)
			existing.Comments = max(existing.Comments, record.Comments)
			existing.Touch()
			return false, w.store.UpdateThread(ctx, existing)
		case !errors.Is(err, store.ErrNotFound):
			return false, err
		}
	}

	thread := &domain.Thread{
		Title:       record.Title,
		Description: record.Description,
		Upvotes:     record.Upvotes,
		Comments:    record.Comments,
		Tags:        record.Tags,
		Source:      record.Source,
		Permalink:   record.Permalink,
	}
	thread.ID = id.MustGenerate(id.PrefixThread)
	thread.InitTimestamps()
	return true, w.store.CreateThread(ctx, thread)
}

// decodeDrop accepts either a single record or an array.
func decodeDrop(data []byte) ([]droppedThread, error) {
	var many []droppedThread
	if err := json.Unmarshal(data, &many); err == nil {
		return many, nil
	}
	var one droppedThread
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, err
	}
	return []droppedThread{one}, nil
}
