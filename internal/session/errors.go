package session

import "github.com/ayoisaiah/timeattack/internal/apperr"

var (
	ErrAlreadyPaused = &apperr.Error{
		Message: "task is already paused",
	}

	ErrNotPaused = &apperr.Error{
		Message: "task is not paused",
	}

	errUnknownTaskKind = &apperr.Error{
		Message: "unknown task kind: %q",
	}

	errMissingTicketID = &apperr.Error{
		Message: "work task has no ticket id",
	}
)
