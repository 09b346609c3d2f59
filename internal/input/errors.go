package input

import "errors"

// Parse errors
var (
	ErrEmptyKey   = errors.New("empty key specification")
	ErrInvalidKey = errors.New("invalid key specification")
	// ErrUnbindable is returned when a command needs an argument that a
	// key binding cannot supply.
	ErrUnbindable = errors.New("command cannot be bound to a key")
)
