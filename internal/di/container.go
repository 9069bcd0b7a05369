// Package di provides dependency injection configuration for the Moodshelf server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/moodshelfapp/moodshelf-server/internal/auth"
	"github.com/moodshelfapp/moodshelf-server/internal/config"
	"github.com/moodshelfapp/moodshelf-server/internal/di/providers"
	"github.com/moodshelfapp/moodshelf-server/internal/logger"
	"github.com/moodshelfapp/moodshelf-server/internal/media/covers"
	"github.com/moodshelfapp/moodshelf-server/internal/service"
	"github.com/moodshelfapp/moodshelf-server/internal/tagger"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Storage layer
	do.Provide(injector, providers.ProvideCoverStorage)
	do.Provide(injector, providers.ProvideCoverDownloader)
	do.Provide(injector, providers.ProvideCache)

	// Search layer
	do.Provide(injector, providers.ProvideSuggestIndex)
	do.Provide(injector, providers.ProvideRouter)
	do.Provide(injector, providers.ProvideSearchService)

	// Catalog layer
	do.Provide(injector, providers.ProvideTagger)
	do.Provide(injector, providers.ProvideCatalogAdapters)
	do.Provide(injector, providers.ProvideRedditClient)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideBookService)
	do.Provide(injector, providers.ProvideThreadService)
	do.Provide(injector, providers.ProvideImportService)

	// Workers
	do.Provide(injector, providers.ProvideDropWatcher)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.CacheHandle](injector)
	_ = do.MustInvoke[*providers.SuggestIndexHandle](injector)
	_ = do.MustInvoke[*covers.Storage](injector)
	_ = do.MustInvoke[*tagger.Tagger](injector)
	_ = do.MustInvoke[providers.CatalogAdapters](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	// Business services
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.BookService](injector)
	_ = do.MustInvoke[*service.ThreadService](injector)
	_ = do.MustInvoke[*service.SearchService](injector)
	_ = do.MustInvoke[*service.ImportService](injector)

	// Workers
	_ = do.MustInvoke[*providers.DropWatcherHandle](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	// Rebuild the suggest index if it came up empty
	providers.TriggerSuggestReindexIfNeeded(injector)

	return nil
}
