package tasksource

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/maruel/natural"
)

// Source is what the rest of the program needs from a ticket provider.
type Source interface {
	Ticket(ctx context.Context, id string) (Ticket, error)
	UpdateTaskState(ctx context.Context, id string, state State) (Ticket, error)
}

// TicketStore persists local tickets.
type TicketStore interface {
	LoadTickets() ([]Ticket, error)
	SaveTicket(t Ticket) error
	DeleteTicket(id string) error
	NextTicketNumber() (int, error)
}

// CreateRequest holds the fields of a new ticket.
type CreateRequest struct {
	Estimate *time.Duration
	DueDate  *time.Time
	Title    string
	Notes    string
	Priority int
}

// Local keeps tickets in the local database.
type Local struct {
	store TicketStore
	clock func() time.Time
	newID func() string
}

// LocalOption configures a Local provider.
type LocalOption func(*Local)

// WithLocalClock sets the time source used for timestamps.
func WithLocalClock(clock func() time.Time) LocalOption {
	return func(l *Local) {
		l.clock = clock
	}
}

// WithLocalIDGenerator sets the function that assigns ticket ids.
func WithLocalIDGenerator(fn func() string) LocalOption {
	return func(l *Local) {
		l.newID = fn
	}
}

func NewLocal(store TicketStore, opts ...LocalOption) *Local {
	l := &Local{
		store: store,
		clock: time.Now,
		newID: uuid.NewString,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// FetchTasks lists every ticket: highest priority first, then most recently
// updated, then by identifier in natural order.
func (l *Local) FetchTasks(ctx context.Context) ([]Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tickets, err := l.store.LoadTickets()
	if err != nil {
		return nil, errLoadTickets.Wrap(err)
	}

	slices.SortStableFunc(tickets, func(a, b Ticket) int {
		if a.Priority != b.Priority {
			return b.Priority - a.Priority
		}

		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}

		switch {
		case natural.Less(a.Identifier, b.Identifier):
			return -1
		case natural.Less(b.Identifier, a.Identifier):
			return 1
		}

		return 0
	})

	return tickets, nil
}

// Ticket finds a ticket by id or identifier.
func (l *Local) Ticket(ctx context.Context, id string) (Ticket, error) {
	if err := ctx.Err(); err != nil {
		return Ticket{}, err
	}

	tickets, err := l.store.LoadTickets()
	if err != nil {
		return Ticket{}, errLoadTickets.Wrap(err)
	}

	i := slices.IndexFunc(tickets, func(t Ticket) bool {
		return t.ID == id || strings.EqualFold(t.Identifier, id)
	})
	if i < 0 {
		return Ticket{}, ErrTaskNotFound.Fmt(id)
	}

	return tickets[i], nil
}

// CreateTask adds a todo ticket numbered after the last one created.
func (l *Local) CreateTask(ctx context.Context, req CreateRequest) (Ticket, error) {
	if err := ctx.Err(); err != nil {
		return Ticket{}, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return Ticket{}, errEmptyTitle
	}

	n, err := l.store.NextTicketNumber()
	if err != nil {
		return Ticket{}, err
	}

	now := l.clock()

	t := Ticket{
		ID:         l.newID(),
		Identifier: fmt.Sprintf("LOCAL-%d", n),
		Title:      title,
		Notes:      req.Notes,
		State:      StateTodo,
		Source:     SourceLocal,
		Priority:   req.Priority,
		Estimate:   req.Estimate,
		DueDate:    req.DueDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := l.store.SaveTicket(t); err != nil {
		return Ticket{}, err
	}

	return t, nil
}

// UpdateTaskState moves a ticket to state.
func (l *Local) UpdateTaskState(
	ctx context.Context,
	id string,
	state State,
) (Ticket, error) {
	if _, err := ParseState(string(state)); err != nil {
		return Ticket{}, err
	}

	return l.update(ctx, id, func(t *Ticket) {
		t.State = state
	})
}

// SetEstimate replaces a ticket's estimate. A nil estimate clears it.
func (l *Local) SetEstimate(
	ctx context.Context,
	id string,
	estimate *time.Duration,
) (Ticket, error) {
	return l.update(ctx, id, func(t *Ticket) {
		t.Estimate = estimate
	})
}

// UpdateNotes replaces a ticket's notes.
func (l *Local) UpdateNotes(ctx context.Context, id, notes string) (Ticket, error) {
	return l.update(ctx, id, func(t *Ticket) {
		t.Notes = notes
	})
}

// DeleteTask removes a ticket.
func (l *Local) DeleteTask(ctx context.Context, id string) error {
	t, err := l.Ticket(ctx, id)
	if err != nil {
		return err
	}

	return l.store.DeleteTicket(t.ID)
}

func (l *Local) update(
	ctx context.Context,
	id string,
	fn func(t *Ticket),
) (Ticket, error) {
	t, err := l.Ticket(ctx, id)
	if err != nil {
		return Ticket{}, err
	}

	fn(&t)
	t.UpdatedAt = l.clock()

	if err := l.store.SaveTicket(t); err != nil {
		return Ticket{}, err
	}

	return t, nil
}
