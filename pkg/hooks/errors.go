package hooks

import "errors"

// Error definitions for hooks package.
var (
	// ErrNilHook is returned when registering a nil hook.
	ErrNilHook = errors.New("hook cannot be nil")
)
