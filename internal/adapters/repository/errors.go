package repository

import "errors"

// Sentinel kinds for meet store errors.
var (
	ErrMeetNotFound = errors.New("meet not found")
	ErrTeamNotFound = errors.New("team not found")
)
