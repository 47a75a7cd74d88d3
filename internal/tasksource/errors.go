package tasksource

import "github.com/ayoisaiah/timeattack/internal/apperr"

var (
	ErrTaskNotFound = &apperr.Error{
		Message: "ticket %s not found",
	}

	errInvalidState = &apperr.Error{
		Message: "invalid ticket state %q: expected todo, in_progress or done",
	}

	errEmptyTitle = &apperr.Error{
		Message: "a ticket needs a title",
	}

	errLoadTickets = &apperr.Error{
		Message: "unable to load tickets",
	}
)
