package script

import "errors"

// Errors returned by Runner.
var (
	// ErrScriptFailed wraps any error raised while loading or running a
	// script.
	ErrScriptFailed = errors.New("script failed")

	// ErrRunnerClosed is returned when running on a closed Runner.
	ErrRunnerClosed = errors.New("script runner is closed")

	// ErrNoEditor is returned when running before an editor is attached.
	ErrNoEditor = errors.New("script runner has no editor")
)
