package store

import "github.com/ayoisaiah/timeattack/internal/apperr"

var (
	// ErrRunning is returned when another process holds the database.
	ErrRunning = &apperr.Error{
		Message: "is timeattack already running? Only one instance can use the database at a time",
	}

	errDecode = &apperr.Error{
		Message: "unable to decode %s entry %s",
	}
)
