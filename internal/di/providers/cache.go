package providers

import (
	"github.com/samber/do/v2"

	"github.com/moodshelfapp/moodshelf-server/internal/cache"
	"github.com/moodshelfapp/moodshelf-server/internal/config"
	"github.com/moodshelfapp/moodshelf-server/internal/logger"
)

// CacheHandle wraps the provider-response cache with shutdown capability.
// When badger cannot be opened the handle carries a no-op cache so
// catalog providers keep working without caching.
type CacheHandle struct {
	cache.Cache

	badger *cache.Badger
}

// Shutdown implements do.Shutdownable.
func (h *CacheHandle) Shutdown() error {
	if h.badger == nil {
		return nil
	}
	return h.badger.Close()
}

// ProvideCache provides the badger-backed provider cache.
func ProvideCache(i do.Injector) (*CacheHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	b, err := cache.OpenBadger(cfg.Data.CachePath(), log.Logger)
	if err != nil {
		log.Warn("Provider cache unavailable, continuing without caching",
			"path", cfg.Data.CachePath(),
			"error", err,
		)
		return &CacheHandle{Cache: cache.NewNoop()}, nil
	}

	log.Info("Provider cache opened", "path", cfg.Data.CachePath())

	return &CacheHandle{Cache: b, badger: b}, nil
}
