package app

import (
	"github.com/dshills/blockwrap/internal/backend"
	"github.com/dshills/blockwrap/internal/config"
)

// startWatcher reloads the config file on change. Reloads and errors are
// posted to the event loop rather than applied on the watcher goroutine.
func (a *Application) startWatcher() {
	if a.opts.ConfigPath == "" {
		return
	}
	post := func(data any) {
		if err := a.backend.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: data}); err != nil {
			a.logger.Warn("dropping config event: %v", err)
		}
	}
	w, err := config.Watch(a.opts.ConfigPath,
		func(cfg *config.Config) { post(cfg) },
		config.WithErrorHandler(func(err error) { post(err) }),
	)
	if err != nil {
		a.logger.Warn("config watch disabled: %v", err)
		return
	}
	a.watcher = w
	a.logger.Debug("watching %s", w.Path())
}

func (a *Application) stopWatcher() {
	if a.watcher == nil {
		return
	}
	if err := a.watcher.Close(); err != nil {
		a.logger.Warn("closing config watcher: %v", err)
	}
	a.watcher = nil
}
