package ranking

import "errors"

// Sentinel kinds for ranking errors. These allow errors.Is/As from callers.
var (
	ErrUnknownCategory = errors.New("unknown event category")
)
