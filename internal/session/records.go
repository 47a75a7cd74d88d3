package session

import "time"

// Suspension records the time budget left on a ticket whose work task was
// interrupted before completion.
type Suspension struct {
	SuspendedAt   time.Time     `json:"suspended_at"`
	TicketID      string        `json:"ticket_id"`
	RemainingTime time.Duration `json:"remaining_time"`
}

// TransitionRecord is an immutable log entry for a finished deciding or
// transitioning interval.
type TransitionRecord struct {
	Date         time.Time     `json:"date"`
	FromTicketID *string       `json:"from_ticket_id,omitempty"`
	ID           string        `json:"id"`
	Duration     time.Duration `json:"duration"`
}
