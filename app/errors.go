package app

import "github.com/ayoisaiah/timeattack/internal/apperr"

var (
	errPrompt = &apperr.Error{
		Message: "prompt failed",
	}

	errNoTickets = &apperr.Error{
		Message: "no open tickets: pass a ticket id or create one with 'timeattack tickets add'",
	}

	errMissingTicket = &apperr.Error{
		Message: "a ticket id is required",
	}

	errMissingEstimate = &apperr.Error{
		Message: "an estimate such as 45m, or 'none', is required",
	}
)
