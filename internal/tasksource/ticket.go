// Package tasksource provides the tickets that work tasks are recorded
// against.
package tasksource

import (
	"fmt"
	"math"
	"time"

	"github.com/ayoisaiah/timeattack/internal/timeutil"
)

type State string

const (
	StateTodo       State = "todo"
	StateInProgress State = "in_progress"
	StateDone       State = "done"
)

// States lists every ticket state in workflow order.
var States = []State{StateTodo, StateInProgress, StateDone}

// ParseState converts a state name into a State.
func ParseState(s string) (State, error) {
	for _, st := range States {
		if string(st) == s {
			return st, nil
		}
	}

	return "", errInvalidState.Fmt(s)
}

// Next returns the state that follows s. Done is terminal.
func (s State) Next() State {
	switch s {
	case StateTodo:
		return StateInProgress
	case StateInProgress, StateDone:
		return StateDone
	}

	return StateTodo
}

func (s State) IsStarted() bool {
	return s == StateInProgress
}

func (s State) IsCompleted() bool {
	return s == StateDone
}

// DisplayName returns s formatted for humans.
func (s State) DisplayName() string {
	switch s {
	case StateTodo:
		return "Todo"
	case StateInProgress:
		return "In Progress"
	case StateDone:
		return "Done"
	}

	return string(s)
}

// SourceKind identifies where a ticket comes from.
type SourceKind string

const (
	SourceLocal  SourceKind = "local"
	SourceLinear SourceKind = "linear"
	SourceJira   SourceKind = "jira"
)

func (k SourceKind) ProviderName() string {
	switch k {
	case SourceLocal:
		return "Local"
	case SourceLinear:
		return "Linear"
	case SourceJira:
		return "Jira"
	}

	return string(k)
}

// IsExternal reports whether the ticket lives in an issue tracker.
func (k SourceKind) IsExternal() bool {
	return k == SourceLinear || k == SourceJira
}

// Ticket is a unit of work that time can be recorded against.
type Ticket struct {
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	Estimate   *time.Duration `json:"estimate,omitempty"`
	DueDate    *time.Time     `json:"due_date,omitempty"`
	ID         string         `json:"id"`
	Identifier string         `json:"identifier"`
	Title      string         `json:"title"`
	Notes      string         `json:"notes,omitempty"`
	State      State          `json:"state"`
	Source     SourceKind     `json:"source"`
	Priority   int            `json:"priority"`
}

// DueStatus describes how close a ticket is to its due date.
type DueStatus struct {
	Kind DueKind
	Days int
}

type DueKind int

const (
	DueNone DueKind = iota
	DueOverdue
	DueToday
	DueSoon
	DueNormal
)

const soonDays = 3

// DueDateStatus compares the calendar day of due with that of now.
func DueDateStatus(due *time.Time, now time.Time) DueStatus {
	if due == nil {
		return DueStatus{Kind: DueNone}
	}

	today := timeutil.RoundToStart(now)
	dueDay := timeutil.RoundToStart(due.In(now.Location()))

	days := int(math.Round(dueDay.Sub(today).Hours() / 24))

	switch {
	case days < 0:
		return DueStatus{Kind: DueOverdue, Days: -days}
	case days == 0:
		return DueStatus{Kind: DueToday}
	case days <= soonDays:
		return DueStatus{Kind: DueSoon, Days: days}
	default:
		return DueStatus{Kind: DueNormal, Days: days}
	}
}

func (d DueStatus) String() string {
	switch d.Kind {
	case DueOverdue:
		if d.Days == 1 {
			return "1 day overdue"
		}

		return fmt.Sprintf("%d days overdue", d.Days)
	case DueToday:
		return "due today"
	case DueSoon:
		if d.Days == 1 {
			return "due tomorrow"
		}

		return fmt.Sprintf("%d days left", d.Days)
	case DueNormal:
		return fmt.Sprintf("%d days left", d.Days)
	case DueNone:
	}

	return ""
}
