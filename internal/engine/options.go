package engine

import (
	"github.com/dshills/blockwrap/internal/engine/segment"
	"github.com/dshills/blockwrap/internal/logging"
)

// Default configuration values.
const (
	DefaultWrapWidth  = segment.DefaultWrapWidth
	DefaultPaneHeight = 25
)

// Option configures an Editor during creation.
type Option func(*Editor)

// WithLogger sets the logger for structural operations.
func WithLogger(l *logging.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithWrapWidth sets the base wrap width. Values below
// segment.MinWrapWidth are raised to it.
func WithWrapWidth(width int) Option {
	return func(e *Editor) {
		if width > 0 {
			e.wrapWidth = max(width, segment.MinWrapWidth)
		}
	}
}

// WithPaneSize sets the initial pane size.
func WithPaneSize(width, height int) Option {
	return func(e *Editor) {
		if width > 0 {
			e.width = width
		}
		if height > 0 {
			e.height = height
		}
	}
}
