package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/moodshelfapp/moodshelf-server/internal/config"
	"github.com/moodshelfapp/moodshelf-server/internal/logger"
	"github.com/moodshelfapp/moodshelf-server/internal/search"
	"github.com/moodshelfapp/moodshelf-server/internal/service"
)

// SuggestIndexHandle wraps the bleve suggest index with shutdown capability.
type SuggestIndexHandle struct {
	*search.SuggestIndex
}

// Shutdown implements do.Shutdownable.
func (h *SuggestIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSuggestIndex provides the bleve suggest index and wires it to
// the store so book writes keep it in sync.
func ProvideSuggestIndex(i do.Injector) (*SuggestIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	index, err := search.NewSuggestIndex(search.Options{
		DataPath: cfg.Data.IndexPath(),
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	storeHandle.SetSearchIndexer(index)

	docCount, _ := index.DocumentCount()
	log.Info("Suggest index initialized", "documents", docCount)

	return &SuggestIndexHandle{SuggestIndex: index}, nil
}

// ProvideRouter provides the faceted search router.
func ProvideRouter(i do.Injector) (*search.Router, error) {
	return search.NewRouter(), nil
}

// ProvideSearchService provides the search service.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	router := do.MustInvoke[*search.Router](i)
	indexHandle := do.MustInvoke[*SuggestIndexHandle](i)
	adapters := do.MustInvoke[CatalogAdapters](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := service.NewSearchService(
		storeHandle.Store,
		router,
		indexHandle.SuggestIndex,
		adapters,
		cfg.Providers.SearchTimeout,
		log.Logger,
	)

	return svc, nil
}

// TriggerSuggestReindexIfNeeded rebuilds an empty suggest index from the
// store. Should be called after all services are wired.
func TriggerSuggestReindexIfNeeded(i do.Injector) {
	searchService := do.MustInvoke[*service.SearchService](i)
	indexHandle := do.MustInvoke[*SuggestIndexHandle](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	docCount, _ := indexHandle.DocumentCount()
	if docCount > 0 {
		return
	}

	// Check if we have books that need indexing
	ctx := context.Background()
	books, err := storeHandle.AllBooks(ctx)
	if err != nil || len(books) == 0 {
		return
	}

	log.Info("Suggest index is empty but books exist, triggering initial reindex",
		"book_count", len(books),
	)

	go func() {
		reindexCtx := context.Background()
		if err := searchService.ReindexAll(reindexCtx); err != nil {
			log.Error("Initial suggest reindex failed", "error", err)
		} else {
			count, _ := indexHandle.DocumentCount()
			log.Info("Initial suggest reindex completed", "documents", count)
		}
	}()
}
