package providers

import (
	"context"
	"errors"

	"github.com/samber/do/v2"

	"github.com/moodshelfapp/moodshelf-server/internal/config"
	"github.com/moodshelfapp/moodshelf-server/internal/logger"
	"github.com/moodshelfapp/moodshelf-server/internal/service"
)

// DropWatcherHandle wraps the drop-directory watcher with its cancel
// function. The watcher is optional; the handle is empty when no drop
// directory is configured.
type DropWatcherHandle struct {
	watcher *service.DropWatcher
	cancel  context.CancelFunc
	done    chan struct{}
}

// Shutdown implements do.Shutdownable.
func (h *DropWatcherHandle) Shutdown() error {
	if h.watcher == nil {
		return nil
	}
	h.cancel()
	<-h.done
	return nil
}

// ProvideDropWatcher starts the drop-directory watcher when configured.
func ProvideDropWatcher(i do.Injector) (*DropWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Import.DropDir == "" {
		log.Info("Drop directory not configured, watcher disabled")
		return &DropWatcherHandle{}, nil
	}

	watcher, err := service.NewDropWatcher(cfg.Import.DropDir, storeHandle.Store, log.Logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		if err := watcher.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("Drop watcher stopped", "error", err)
		}
	}()

	log.Info("Drop watcher started", "dir", cfg.Import.DropDir)

	return &DropWatcherHandle{watcher: watcher, cancel: cancel, done: done}, nil
}
