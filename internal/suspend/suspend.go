// Package suspend keeps the per-ticket record of time remaining on work
// tasks that were interrupted before completion.
package suspend

import (
	"maps"
	"time"

	"github.com/ayoisaiah/timeattack/internal/session"
)

// Store maps ticket ids to their suspension. The zero value is ready to use.
// It is not safe for concurrent use; the engine serialises access.
type Store struct {
	entries map[string]session.Suspension
}

// New returns a store seeded with previously saved suspensions.
func New(entries map[string]session.Suspension) *Store {
	s := &Store{entries: make(map[string]session.Suspension, len(entries))}

	for id, e := range entries {
		e.TicketID = id
		s.entries[id] = e
	}

	return s
}

// Suspend records the remaining time for a ticket, replacing any earlier
// suspension of the same ticket.
func (s *Store) Suspend(
	ticketID string,
	remaining time.Duration,
	at time.Time,
) session.Suspension {
	if s.entries == nil {
		s.entries = make(map[string]session.Suspension)
	}

	e := session.Suspension{
		TicketID:      ticketID,
		RemainingTime: remaining,
		SuspendedAt:   at,
	}

	s.entries[ticketID] = e

	return e
}

// Get returns the suspension for a ticket without removing it.
func (s *Store) Get(ticketID string) (session.Suspension, bool) {
	e, ok := s.entries[ticketID]

	return e, ok
}

// Take returns and removes the suspension for a ticket. A second Take for the
// same ticket reports false.
func (s *Store) Take(ticketID string) (session.Suspension, bool) {
	e, ok := s.entries[ticketID]
	if ok {
		delete(s.entries, ticketID)
	}

	return e, ok
}

// Restore puts back a suspension removed by Take.
func (s *Store) Restore(e session.Suspension) {
	if s.entries == nil {
		s.entries = make(map[string]session.Suspension)
	}

	s.entries[e.TicketID] = e
}

// Len returns the number of suspended tickets.
func (s *Store) Len() int {
	return len(s.entries)
}

// All returns a copy of every suspension keyed by ticket id.
func (s *Store) All() map[string]session.Suspension {
	out := make(map[string]session.Suspension, len(s.entries))
	maps.Copy(out, s.entries)

	return out
}
