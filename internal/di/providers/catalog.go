package providers

import (
	"github.com/samber/do/v2"

	"github.com/moodshelfapp/moodshelf-server/internal/catalog"
	"github.com/moodshelfapp/moodshelf-server/internal/catalog/goodreads"
	"github.com/moodshelfapp/moodshelf-server/internal/catalog/googlebooks"
	"github.com/moodshelfapp/moodshelf-server/internal/catalog/openlibrary"
	"github.com/moodshelfapp/moodshelf-server/internal/catalog/reddit"
	"github.com/moodshelfapp/moodshelf-server/internal/catalog/storygraph"
	"github.com/moodshelfapp/moodshelf-server/internal/config"
	"github.com/moodshelfapp/moodshelf-server/internal/logger"
	"github.com/moodshelfapp/moodshelf-server/internal/tagger"
)

// ProvideTagger provides the lexical mood tagger with the built-in vocabulary.
func ProvideTagger(i do.Injector) (*tagger.Tagger, error) {
	return tagger.Default(), nil
}

// CatalogAdapters is the set of enabled external catalog providers, in
// the order they fan out during a search.
type CatalogAdapters []catalog.Adapter

// ProvideCatalogAdapters assembles the enabled catalog providers from
// configuration. A provider that needs an API key is skipped with a
// warning when the key is missing.
func ProvideCatalogAdapters(i do.Injector) (CatalogAdapters, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	tg := do.MustInvoke[*tagger.Tagger](i)
	cacheHandle := do.MustInvoke[*CacheHandle](i)

	var adapters CatalogAdapters

	if cfg.Providers.OpenLibraryEnabled {
		adapters = append(adapters, openlibrary.New(tg, cacheHandle.Cache, log.Logger))
	}

	if cfg.Providers.GoogleBooksEnabled {
		adapters = append(adapters, googlebooks.New(tg, cfg.Providers.GoogleBooksAPIKey, log.Logger))
	}

	if cfg.Providers.GoodreadsEnabled {
		if cfg.Providers.GoodreadsAPIKey == "" {
			log.Warn("Goodreads provider enabled but no API key configured, skipping")
		} else {
			adapters = append(adapters, goodreads.New(tg, cfg.Providers.GoodreadsAPIKey, log.Logger))
		}
	}

	if cfg.Providers.StoryGraphEnabled {
		adapters = append(adapters, storygraph.New(tg, log.Logger))
	}

	names := make([]string, 0, len(adapters))
	for _, a := range adapters {
		names = append(names, a.Name())
	}
	log.Info("Catalog providers configured", "providers", names)

	return adapters, nil
}

// ProvideRedditClient provides the Reddit client used by the thread importer.
func ProvideRedditClient(i do.Injector) (*reddit.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return reddit.New(cfg.Import.UserAgent, log.Logger), nil
}
