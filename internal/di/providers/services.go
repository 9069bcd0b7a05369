package providers

import (
	"github.com/samber/do/v2"

	"github.com/moodshelfapp/moodshelf-server/internal/auth"
	"github.com/moodshelfapp/moodshelf-server/internal/catalog/reddit"
	"github.com/moodshelfapp/moodshelf-server/internal/config"
	"github.com/moodshelfapp/moodshelf-server/internal/logger"
	"github.com/moodshelfapp/moodshelf-server/internal/media/covers"
	"github.com/moodshelfapp/moodshelf-server/internal/service"
	"github.com/moodshelfapp/moodshelf-server/internal/tagger"
)

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, log.Logger), nil
}

// ProvideBookService provides the book service.
func ProvideBookService(i do.Injector) (*service.BookService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tg := do.MustInvoke[*tagger.Tagger](i)
	downloader := do.MustInvoke[*covers.Downloader](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBookService(storeHandle.Store, tg, downloader, log.Logger), nil
}

// ProvideThreadService provides the thread service.
func ProvideThreadService(i do.Injector) (*service.ThreadService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tg := do.MustInvoke[*tagger.Tagger](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewThreadService(storeHandle.Store, tg, log.Logger), nil
}

// ProvideImportService provides the Reddit thread importer.
func ProvideImportService(i do.Injector) (*service.ImportService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	client := do.MustInvoke[*reddit.Client](i)
	tg := do.MustInvoke[*tagger.Tagger](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewImportService(
		storeHandle.Store,
		client,
		tg,
		cfg.Import.Subreddits,
		cfg.Import.TopWindow,
		log.Logger,
	), nil
}
