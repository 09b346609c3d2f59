package vline

import "errors"

// ErrInvariant is wrapped by every error returned from Check.
var ErrInvariant = errors.New("visual line invariant violated")
