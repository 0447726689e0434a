package service

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrNotStarted is returned when an operation runs before Start.
	ErrNotStarted = errors.New("service not started")
)
