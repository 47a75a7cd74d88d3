// Package report derives time totals from recorded sessions. Nothing here
// mutates state; every figure can be recomputed from the stored sessions.
package report

import (
	"slices"
	"time"

	"github.com/ayoisaiah/timeattack/internal/session"
)

// Summary holds the totals for a single session.
type Summary struct {
	Start      time.Time
	End        *time.Time
	Tickets    []TicketTime
	Work       time.Duration
	Rest       time.Duration
	Deciding   time.Duration
	Transition time.Duration
	Overhead   time.Duration
	Total      time.Duration
}

// TicketTime is the work time a ticket accumulated.
type TicketTime struct {
	TicketID string
	Actual   time.Duration
}

func sum(
	tasks []session.Task,
	now time.Time,
	match func(session.TaskType) bool,
) time.Duration {
	var total time.Duration

	for i := range tasks {
		if match(tasks[i].Type) {
			total += tasks[i].ActualDuration(now)
		}
	}

	return total
}

// TotalWorkTime sums the durations of the session's work tasks.
func TotalWorkTime(s session.Session, now time.Time) time.Duration {
	return sum(s.Tasks, now, session.TaskType.IsWork)
}

// TotalRestTime sums the durations of the session's rest tasks.
func TotalRestTime(s session.Session, now time.Time) time.Duration {
	return sum(s.Tasks, now, session.TaskType.IsRest)
}

// TotalDecidingTime sums the durations of the session's deciding tasks.
func TotalDecidingTime(s session.Session, now time.Time) time.Duration {
	return sum(s.Tasks, now, session.TaskType.IsDeciding)
}

// TotalTransitionTime sums the durations of the session's transitioning tasks.
func TotalTransitionTime(s session.Session, now time.Time) time.Duration {
	return sum(s.Tasks, now, session.TaskType.IsTransitioning)
}

// TotalOverheadTime sums deciding and transitioning time.
func TotalOverheadTime(s session.Session, now time.Time) time.Duration {
	return sum(s.Tasks, now, session.TaskType.IsOverhead)
}

// UniqueTicketIDs lists the tickets worked on in the session, in the order
// they were first worked on.
func UniqueTicketIDs(s session.Session) []string {
	var ids []string

	for i := range s.Tasks {
		id, ok := s.Tasks[i].Type.TicketID()
		if ok && !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}

	return ids
}

// WorkTimeForTicket sums every work task on ticketID, including the ones
// separated by a suspension.
func WorkTimeForTicket(
	s session.Session,
	ticketID string,
	now time.Time,
) time.Duration {
	return sum(s.Tasks, now, func(tt session.TaskType) bool {
		id, ok := tt.TicketID()
		return ok && id == ticketID
	})
}

// Summarize computes every total for s.
func Summarize(s session.Session, now time.Time) Summary {
	sm := Summary{
		Start:      s.StartTime,
		Work:       TotalWorkTime(s, now),
		Rest:       TotalRestTime(s, now),
		Deciding:   TotalDecidingTime(s, now),
		Transition: TotalTransitionTime(s, now),
		Total:      s.TotalDuration(now),
	}

	if s.EndTime != nil {
		end := *s.EndTime
		sm.End = &end
	}

	sm.Overhead = sm.Deciding + sm.Transition

	for _, id := range UniqueTicketIDs(s) {
		sm.Tickets = append(sm.Tickets, TicketTime{
			TicketID: id,
			Actual:   WorkTimeForTicket(s, id, now),
		})
	}

	return sm
}
