package engine

import "errors"

// Errors returned by Dispatch.
var (
	// ErrUnknownCommand indicates a command name that is not registered.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrMissingArgument indicates a command was dispatched without the
	// operand it needs.
	ErrMissingArgument = errors.New("missing command argument")
)
