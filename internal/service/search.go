package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/moodshelfapp/moodshelf-server/internal/catalog"
	"github.com/moodshelfapp/moodshelf-server/internal/domain"
	domainerrors "github.com/moodshelfapp/moodshelf-server/internal/errors"
	"github.com/moodshelfapp/moodshelf-server/internal/search"
	"github.com/moodshelfapp/moodshelf-server/internal/store"
)

// defaultProviderTimeout bounds each outbound provider call when the
// configured timeout is zero.
const defaultProviderTimeout = 8 * time.Second

// SearchService answers catalog queries. Local rows are filtered through
// the faceted router; when external search is requested it fans out to
// every registered provider adapter concurrently and merges the results,
// local rows first, deduplicated by title and author.
type SearchService struct {
	store           store.Store
	router          *search.Router
	suggest         *search.SuggestIndex
	adapters        []catalog.Adapter
	providerTimeout time.Duration
	logger          *slog.Logger
}

// NewSearchService creates a search service over the given adapters.
// The suggest index is optional; when nil, Suggest returns empty results.
func NewSearchService(
	st store.Store,
	router *search.Router,
	suggest *search.SuggestIndex,
	adapters []catalog.Adapter,
	providerTimeout time.Duration,
	logger *slog.Logger,
) *SearchService {
	if providerTimeout <= 0 {
		providerTimeout = defaultProviderTimeout
	}
	return &SearchService{
		store:           st,
		router:          router,
		suggest:         suggest,
		adapters:        adapters,
		providerTimeout: providerTimeout,
		logger:          logger,
	}
}

// SearchResult carries an answered query plus provenance counts.
type SearchResult struct {
	Books         []domain.Book `json:"books"`
	LocalCount    int           `json:"local_count"`
	ExternalCount int           `json:"external_count"`
}

// Search answers a catalog query. Empty queries are rejected before any
// outbound call. Provider failures are logged and degrade the response to
// whatever did arrive; only a store failure is fatal.
func (s *SearchService) Search(ctx context.Context, q domain.CatalogQuery, includeExternal bool) (*SearchResult, error) {
	q.Query = strings.TrimSpace(q.Query)
	if q.Query == "" {
		return nil, domainerrors.Validation("search query cannot be empty")
	}

	rows, err := s.store.AllBooks(ctx)
	if err != nil {
		return nil, err
	}
	local := s.router.Filter(rows, q)

	var external []domain.Book
	if includeExternal && len(s.adapters) > 0 {
		external = s.searchExternal(ctx, q)
	}

	combined := search.Combine(local, external)
	if q.Limit > 0 && len(combined) > q.Limit {
		combined = combined[:q.Limit]
	}

	result := &SearchResult{Books: combined}
	for _, b := range combined {
		if b.IsExternal {
			result.ExternalCount++
		} else {
			result.LocalCount++
		}
	}

	s.logger.Debug("answered search",
		"query", q.Query,
		"type", q.Type,
		"local", result.LocalCount,
		"external", result.ExternalCount,
	)
	return result, nil
}

// searchExternal fans out to all adapters concurrently. Each provider gets
// its own timeout; a slow or failing provider costs its own results only.
func (s *SearchService) searchExternal(ctx context.Context, q domain.CatalogQuery) []domain.Book {
	var (
		mu      sync.Mutex
		results []domain.Book
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, adapter := range s.adapters {
		g.Go(func() error {
			providerCtx, cancel := context.WithTimeout(gctx, s.providerTimeout)
			defer cancel()

			books, err := adapter.Search(providerCtx, q.Query, q.Limit, q.Type)
			if err != nil {
				s.logger.Warn("provider search failed",
					"provider", adapter.Name(),
					"query", q.Query,
					"error", err,
				)
				return nil // degrade, never cancel siblings
			}

			mu.Lock()
			for _, b := range books {
				results = append(results, b.ToDomain())
			}
			mu.Unlock()
			return nil
		})
	}
	g.Wait() //nolint:errcheck // Goroutines always return nil

	return results
}

// Suggest returns autocomplete candidates from the full-text index.
func (s *SearchService) Suggest(ctx context.Context, query string, limit int) ([]search.Suggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domainerrors.Validation("suggest query cannot be empty")
	}
	if s.suggest == nil {
		return nil, nil
	}
	return s.suggest.Suggest(ctx, query, limit)
}

// ReindexAll rebuilds the suggest index from the store. Used at startup
// and after bulk imports.
func (s *SearchService) ReindexAll(ctx context.Context) error {
	if s.suggest == nil {
		return nil
	}

	rows, err := s.store.AllBooks(ctx)
	if err != nil {
		return err
	}
	if err := s.suggest.IndexBooks(rows); err != nil {
		return err
	}

	s.logger.Info("rebuilt suggest index", "books", len(rows))
	return nil
}
