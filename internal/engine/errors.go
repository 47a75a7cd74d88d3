package engine

import "github.com/ayoisaiah/timeattack/internal/apperr"

var (
	ErrNoSession = &apperr.Error{
		Message: "no session is open: start one first",
	}

	ErrNoActiveTask = &apperr.Error{
		Message: "the session has no active task",
	}

	ErrNotAWorkTask = &apperr.Error{
		Message: "the active task is not a work task",
	}

	ErrSessionClosed = &apperr.Error{
		Message: "tasks cannot be added to a closed session",
	}

	// ErrNotPersisted is returned, wrapping the store error, when a transition
	// was applied in memory but could not be saved.
	ErrNotPersisted = &apperr.Error{
		Message: "state changed but was not saved",
	}

	errInvalidTaskType = &apperr.Error{
		Message: "invalid task type",
	}

	errEmptyTicketID = &apperr.Error{
		Message: "a ticket id is required",
	}

	errLoadSnapshot = &apperr.Error{
		Message: "loading %s failed",
	}

	errTaskMismatch = &apperr.Error{
		Message: "task %s is not part of session %s",
	}
)
