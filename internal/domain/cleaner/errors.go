package cleaner

import "errors"

// Sentinel kinds for records excluded from the cleaned set.
var (
	ErrMissingUniversity = errors.New("record has no university")
	ErrMissingProgram    = errors.New("record has no program")
)
