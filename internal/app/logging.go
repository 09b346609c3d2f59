package app

import (
	"os"

	"github.com/google/uuid"

	"github.com/dshills/blockwrap/internal/config"
	"github.com/dshills/blockwrap/internal/logging"
)

func logLevel(c config.LogConfig) logging.Level {
	return logging.ParseLevel(c.Level)
}

// openLog sets up the application logger. The terminal is the drawing
// surface, so logs only ever go to the configured file.
func (a *Application) openLog() error {
	if a.opts.Logger != nil {
		a.logger = a.opts.Logger
		return nil
	}
	if a.cfg.Log.File == "" {
		a.logger = logging.Null()
		return nil
	}
	f, err := os.OpenFile(a.cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return &OperationError{Op: "open log", Target: a.cfg.Log.File, Err: err}
	}
	a.logOut = f
	a.logger = logging.New(logging.Config{
		Level:  logLevel(a.cfg.Log),
		Output: f,
		Prefix: "blockwrap",
	}).WithField("session", uuid.New().String())
	return nil
}
