package search

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/moodshelfapp/moodshelf-server/internal/domain"
)

// SuggestIndex wraps a Bleve index over local books for autocomplete.
//
// All public methods are safe for concurrent use; the mutex guards the
// index handle during rebuilds.
type SuggestIndex struct {
	index  bleve.Index
	path   string
	logger *slog.Logger
	mu     sync.RWMutex
}

// Options configures the suggest index.
type Options struct {
	DataPath string
	Logger   *slog.Logger
}

// mappingVersion is incremented whenever the index mapping changes,
// which triggers a rebuild on startup.
const mappingVersion = "1"

// NewSuggestIndex creates or opens a suggest index. A corrupt index or
// one built with an older mapping is removed and recreated; callers
// should reindex after startup when DocumentCount is zero.
func NewSuggestIndex(opts Options) (*SuggestIndex, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	indexPath := filepath.Join(opts.DataPath, "suggest.bleve")
	versionPath := filepath.Join(opts.DataPath, "suggest.version")

	rebuild := false
	if _, err := os.Stat(indexPath); err == nil {
		version, readErr := os.ReadFile(versionPath)
		if readErr != nil || string(version) != mappingVersion {
			logger.Info("suggest index mapping changed, rebuilding",
				"new_version", mappingVersion)
			rebuild = true
		}
	}

	if rebuild {
		if err := os.RemoveAll(indexPath); err != nil {
			return nil, fmt.Errorf("remove stale index: %w", err)
		}
	}

	index, err := bleve.Open(indexPath)
	if err != nil {
		index, err = bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create suggest index: %w", err)
		}
		if err := os.WriteFile(versionPath, []byte(mappingVersion), 0o644); err != nil {
			return nil, fmt.Errorf("write index version: %w", err)
		}
	}

	return &SuggestIndex{
		index:  index,
		path:   indexPath,
		logger: logger,
	}, nil
}

// Close releases the underlying index.
func (s *SuggestIndex) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// IndexBook adds or updates one book in the index.
func (s *SuggestIndex) IndexBook(b *domain.Book) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc := NewSuggestDocument(b)
	return s.index.Index(doc.ID, doc.ToMap())
}

// IndexBooks indexes books in batches.
func (s *SuggestIndex) IndexBooks(books []domain.Book) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	const batchSize = 500

	for i := 0; i < len(books); i += batchSize {
		end := min(i+batchSize, len(books))

		batch := s.index.NewBatch()
		for j := i; j < end; j++ {
			doc := NewSuggestDocument(&books[j])
			if err := batch.Index(doc.ID, doc.ToMap()); err != nil {
				return fmt.Errorf("batch index %s: %w", doc.ID, err)
			}
		}
		if err := s.index.Batch(batch); err != nil {
			return fmt.Errorf("commit batch %d-%d: %w", i, end, err)
		}
	}

	return nil
}

// DeleteBook removes one book from the index.
func (s *SuggestIndex) DeleteBook(id string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Delete(id)
}

// DocumentCount returns the number of indexed books.
func (s *SuggestIndex) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// Suggestion is one autocomplete hit.
type Suggestion struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Score  float64 `json:"score"`
}

// Suggest returns up to limit books matching the partial query,
// combining a prefix query over title with fuzzy full-text matching.
func (s *SuggestIndex) Suggest(ctx context.Context, query string, limit int) ([]Suggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 10
	}

	prefix := bleve.NewPrefixQuery(query)
	prefix.SetField("title")
	prefix.SetBoost(2.0)

	match := bleve.NewMatchQuery(query)
	match.SetFuzziness(1)

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(prefix, match), limit, 0, false)
	req.Fields = []string{"title", "author"}

	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("suggest search: %w", err)
	}

	suggestions := make([]Suggestion, 0, len(res.Hits))
	for _, hit := range res.Hits {
		sug := Suggestion{ID: hit.ID, Score: hit.Score}
		if v, ok := hit.Fields["title"].(string); ok {
			sug.Title = v
		}
		if v, ok := hit.Fields["author"].(string); ok {
			sug.Author = v
		}
		suggestions = append(suggestions, sug)
	}

	return suggestions, nil
}
