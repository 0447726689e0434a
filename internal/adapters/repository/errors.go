package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrMissingHash = errors.New("record has no content hash")
	ErrStore       = errors.New("store operation failed")
)
