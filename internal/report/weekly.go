package report

import (
	"slices"
	"time"

	"github.com/ayoisaiah/timeattack/internal/session"
	"github.com/ayoisaiah/timeattack/internal/timeutil"
)

// EstimateFunc looks up the estimate of a ticket.
type EstimateFunc func(ticketID string) (time.Duration, bool)

// WeeklyStats holds the totals for the sessions started in one week.
type WeeklyStats struct {
	WeekStart     time.Time
	WeekEnd       time.Time
	Tickets       []TicketWeek
	Sessions      int
	Work          time.Duration
	Rest          time.Duration
	Overhead      time.Duration
	TotalEstimate time.Duration
	Accuracy      float64
	HasAccuracy   bool
}

// TicketWeek compares a ticket's estimate with the time worked on it during
// the week.
type TicketWeek struct {
	Estimate    *time.Duration
	TicketID    string
	Actual      time.Duration
	Accuracy    float64
	HasAccuracy bool
}

// Over reports whether more time was spent than estimated.
func (t TicketWeek) Over() bool {
	return t.Estimate != nil && t.Actual > *t.Estimate
}

// StartOfWeek returns midnight on the Monday of t's week, in t's location.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7

	return timeutil.RoundToStart(t).AddDate(0, 0, -offset)
}

func inWeek(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

func accuracy(estimate, actual time.Duration) (float64, bool) {
	if estimate <= 0 || actual <= 0 {
		return 0, false
	}

	return float64(estimate) / float64(actual), true
}

// Weekly computes the statistics of the week beginning at weekStart.
// Overhead comes from the transition records dated within the week.
func Weekly(
	sessions []session.Session,
	records []session.TransitionRecord,
	estimates EstimateFunc,
	weekStart, now time.Time,
) WeeklyStats {
	ws := WeeklyStats{
		WeekStart: weekStart,
		WeekEnd:   weekStart.AddDate(0, 0, 7),
	}

	actual := make(map[string]time.Duration)

	var order []string

	for i := range sessions {
		s := sessions[i]
		if !inWeek(s.StartTime, ws.WeekStart, ws.WeekEnd) {
			continue
		}

		ws.Sessions++
		ws.Work += TotalWorkTime(s, now)
		ws.Rest += TotalRestTime(s, now)

		for _, id := range UniqueTicketIDs(s) {
			if !slices.Contains(order, id) {
				order = append(order, id)
			}

			actual[id] += WorkTimeForTicket(s, id, now)
		}
	}

	for i := range records {
		if inWeek(records[i].Date, ws.WeekStart, ws.WeekEnd) {
			ws.Overhead += records[i].Duration
		}
	}

	for _, id := range order {
		row := TicketWeek{
			TicketID: id,
			Actual:   actual[id],
		}

		if estimates != nil {
			if est, ok := estimates(id); ok {
				row.Estimate = &est
				ws.TotalEstimate += est
				row.Accuracy, row.HasAccuracy = accuracy(est, row.Actual)
			}
		}

		ws.Tickets = append(ws.Tickets, row)
	}

	ws.Accuracy, ws.HasAccuracy = accuracy(ws.TotalEstimate, ws.Work)

	return ws
}
