package engine

import "errors"

var (
	ErrNoHandles       = errors.New("epoch ticker: at least one engine handle is required")
	ErrNilHandle       = errors.New("epoch ticker: engine handle is nil")
	ErrInvalidInterval = errors.New("epoch ticker: interval must be positive")
	ErrAlreadyRunning  = errors.New("epoch ticker: already running")
)
