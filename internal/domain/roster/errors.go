package roster

import "errors"

// Sentinel kinds for roster errors.
var (
	ErrNotCandidate = errors.New("athlete is not a test-spot candidate")
)
