package backend

import "errors"

// ErrQueueFull indicates PostEvent could not queue the event.
var ErrQueueFull = errors.New("event queue full")
