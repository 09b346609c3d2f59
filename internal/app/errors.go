package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrQuit signals that the application should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning indicates Run was called twice concurrently.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrTooManyFiles indicates more files than the maximum pane count.
	ErrTooManyFiles = errors.New("too many files")
)

// OperationError records which operation on which target failed.
type OperationError struct {
	Op     string // e.g. "open", "load config", "init"
	Target string // file path or component
	Err    error
}

func (e *OperationError) Error() string {
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error { return e.Err }
