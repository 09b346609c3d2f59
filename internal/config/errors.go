package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrInvalidWrapWidth indicates a wrap width below the minimum.
	ErrInvalidWrapWidth = errors.New("invalid wrap width")

	// ErrInvalidPanes indicates a pane count out of range.
	ErrInvalidPanes = errors.New("invalid pane count")

	// ErrInvalidColor indicates a theme colour that is not a hex triplet.
	ErrInvalidColor = errors.New("invalid theme color")

	// ErrInvalidBinding indicates a key bound to an unknown command.
	ErrInvalidBinding = errors.New("invalid key binding")

	// ErrWatcherClosed indicates use of a closed watcher.
	ErrWatcherClosed = errors.New("watcher closed")
)

// ParseError is a TOML syntax or schema error in a configuration file.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %v", e.Path, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
