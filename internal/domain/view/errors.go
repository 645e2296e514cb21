package view

import "errors"

// Sentinel kinds for view composition errors.
var (
	ErrUnknownMode = errors.New("unknown view mode")
)
