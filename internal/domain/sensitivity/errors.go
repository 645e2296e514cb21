package sensitivity

import "errors"

// Sentinel kinds for sensitivity errors.
var (
	ErrInvalidPercent = errors.New("percent must be in (0, 100]")
	ErrMissingAthlete = errors.New("missing athlete id")
)
