package session

import (
	"encoding/json"
	"time"
)

// Kind identifies the active variant of a TaskType.
type Kind string

const (
	KindWork          Kind = "work"
	KindRest          Kind = "rest"
	KindDeciding      Kind = "deciding"
	KindTransitioning Kind = "transitioning"
)

// TaskType describes what a task is tracking. Exactly one variant is active,
// selected by Kind. Values must be built with Work, Rest, Deciding or
// Transitioning.
type TaskType struct {
	kind         Kind
	ticketID     string
	restDuration time.Duration
	fromTicketID *string
}

// Work is time spent on the identified ticket.
func Work(ticketID string) TaskType {
	return TaskType{kind: KindWork, ticketID: ticketID}
}

// Rest is a planned break of the given target length.
func Rest(d time.Duration) TaskType {
	return TaskType{kind: KindRest, restDuration: d}
}

// Deciding is think-time while choosing what to do next.
func Deciding() TaskType {
	return TaskType{kind: KindDeciding}
}

// Transitioning is context-switch overhead recorded after suspending a task.
// fromTicketID may be nil.
func Transitioning(fromTicketID *string) TaskType {
	t := TaskType{kind: KindTransitioning}

	if fromTicketID != nil {
		id := *fromTicketID
		t.fromTicketID = &id
	}

	return t
}

// Kind returns the active variant.
func (t TaskType) Kind() Kind {
	return t.kind
}

func (t TaskType) IsWork() bool {
	return t.kind == KindWork
}

func (t TaskType) IsRest() bool {
	return t.kind == KindRest
}

func (t TaskType) IsDeciding() bool {
	return t.kind == KindDeciding
}

func (t TaskType) IsTransitioning() bool {
	return t.kind == KindTransitioning
}

// IsOverhead reports whether the task counts as deciding or transition time.
func (t TaskType) IsOverhead() bool {
	return t.IsDeciding() || t.IsTransitioning()
}

// TicketID returns the ticket of a work task.
func (t TaskType) TicketID() (string, bool) {
	if t.kind != KindWork {
		return "", false
	}

	return t.ticketID, true
}

// RestDuration returns the target length of a rest task.
func (t TaskType) RestDuration() (time.Duration, bool) {
	if t.kind != KindRest {
		return 0, false
	}

	return t.restDuration, true
}

// FromTicketID returns the ticket a transition was started from, if any.
func (t TaskType) FromTicketID() (string, bool) {
	if t.kind != KindTransitioning || t.fromTicketID == nil {
		return "", false
	}

	return *t.fromTicketID, true
}

// Equal reports whether both values hold the same variant and payload.
func (t TaskType) Equal(o TaskType) bool {
	if t.kind != o.kind {
		return false
	}

	switch t.kind {
	case KindWork:
		return t.ticketID == o.ticketID
	case KindRest:
		return t.restDuration == o.restDuration
	case KindTransitioning:
		a, aok := t.FromTicketID()
		b, bok := o.FromTicketID()

		return aok == bok && a == b
	case KindDeciding:
		return true
	}

	return false
}

// String returns the display name of the variant.
func (t TaskType) String() string {
	switch t.kind {
	case KindWork:
		return "Work"
	case KindRest:
		return "Rest"
	case KindDeciding:
		return "Deciding"
	case KindTransitioning:
		return "Transitioning"
	}

	return "Unknown"
}

type taskTypeJSON struct {
	Kind         Kind           `json:"kind"`
	TicketID     string         `json:"ticket_id,omitempty"`
	RestDuration *time.Duration `json:"rest_duration,omitempty"`
	FromTicketID *string        `json:"from_ticket_id,omitempty"`
}

func (t TaskType) MarshalJSON() ([]byte, error) {
	v := taskTypeJSON{Kind: t.kind}

	switch t.kind {
	case KindWork:
		v.TicketID = t.ticketID
	case KindRest:
		d := t.restDuration
		v.RestDuration = &d
	case KindTransitioning:
		v.FromTicketID = t.fromTicketID
	case KindDeciding:
	default:
		return nil, errUnknownTaskKind.Fmt(t.kind)
	}

	return json.Marshal(v)
}

func (t *TaskType) UnmarshalJSON(b []byte) error {
	var v taskTypeJSON

	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch v.Kind {
	case KindWork:
		if v.TicketID == "" {
			return errMissingTicketID
		}

		*t = Work(v.TicketID)
	case KindRest:
		var d time.Duration
		if v.RestDuration != nil {
			d = *v.RestDuration
		}

		*t = Rest(d)
	case KindDeciding:
		*t = Deciding()
	case KindTransitioning:
		*t = Transitioning(v.FromTicketID)
	default:
		return errUnknownTaskKind.Fmt(v.Kind)
	}

	return nil
}
