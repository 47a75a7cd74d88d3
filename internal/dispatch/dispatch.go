// Package dispatch carries out the side effects requested by engine
// transitions. Failures here never undo a transition.
package dispatch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/ayoisaiah/timeattack/internal/engine"
	"github.com/ayoisaiah/timeattack/internal/session"
	"github.com/ayoisaiah/timeattack/internal/tasksource"
)

// Alerter schedules and cancels delayed notifications.
type Alerter interface {
	Schedule(key string, after time.Duration, title, msg string)
	Cancel(key string)
}

// TaskHook runs when a task starts.
type TaskHook interface {
	TaskStarted(ctx context.Context, task session.Task) error
}

// Dispatcher executes intents against the ticket source, the notifier and
// the task-start hook.
type Dispatcher struct {
	source      tasksource.Source
	alerts      Alerter
	hook        TaskHook
	prompt      func(ctx context.Context, sessionID string) error
	completed   func(s session.Session)
	logger      *slog.Logger
	restTitle   string
	restMessage string
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

func WithSource(src tasksource.Source) Option {
	return func(d *Dispatcher) {
		d.source = src
	}
}

func WithAlerter(a Alerter) Option {
	return func(d *Dispatcher) {
		d.alerts = a
	}
}

func WithHook(h TaskHook) Option {
	return func(d *Dispatcher) {
		d.hook = h
	}
}

// WithPrompt sets the function asked to choose the next task when a
// session opens.
func WithPrompt(fn func(ctx context.Context, sessionID string) error) Option {
	return func(d *Dispatcher) {
		d.prompt = fn
	}
}

// WithCompleted sets the function called with each completed session.
func WithCompleted(fn func(s session.Session)) Option {
	return func(d *Dispatcher) {
		d.completed = fn
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// WithRestMessage sets the text of the end-of-rest notification.
func WithRestMessage(msg string) Option {
	return func(d *Dispatcher) {
		d.restMessage = msg
	}
}

func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		restTitle:   "Rest is over",
		restMessage: "Time to decide what is next",
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Dispatch executes intents in order. Every intent is attempted; the
// failures are returned together.
func (d *Dispatcher) Dispatch(ctx context.Context, intents []engine.Intent) error {
	var errs []error

	for _, in := range intents {
		if err := d.dispatch(ctx, in); err != nil {
			d.logger.Warn("side effect failed",
				slog.String("intent", intentName(in)),
				slog.Any("error", err),
			)

			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (d *Dispatcher) dispatch(ctx context.Context, in engine.Intent) error {
	switch v := in.(type) {
	case engine.PromptChoice:
		if d.prompt != nil {
			return d.prompt(ctx, v.SessionID)
		}
	case engine.MarkTicketStarted:
		return d.markStarted(ctx, v.TicketID)
	case engine.ScheduleAlert:
		if d.alerts != nil {
			d.alerts.Schedule(v.TaskID, v.After, d.restTitle, d.restMessage)
		}
	case engine.CancelAlert:
		if d.alerts != nil {
			d.alerts.Cancel(v.TaskID)
		}
	case engine.TaskStarted:
		if d.hook != nil {
			return d.hook.TaskStarted(ctx, v.Task)
		}
	case engine.SessionCompleted:
		if d.completed != nil {
			d.completed(v.Session)
		}
	}

	return nil
}

// markStarted moves a todo ticket to in progress. Unknown tickets and ones
// already started or done are left alone.
func (d *Dispatcher) markStarted(ctx context.Context, ticketID string) error {
	if d.source == nil {
		return nil
	}

	t, err := d.source.Ticket(ctx, ticketID)
	if err != nil {
		if errors.Is(err, tasksource.ErrTaskNotFound) {
			d.logger.Debug("ticket not tracked", slog.String("ticket_id", ticketID))
			return nil
		}

		return err
	}

	if t.State.IsStarted() || t.State.IsCompleted() {
		return nil
	}

	if _, err := d.source.UpdateTaskState(ctx, t.ID, tasksource.StateInProgress); err != nil {
		return err
	}

	d.logger.Info("ticket marked in progress", slog.String("ticket_id", ticketID))

	return nil
}

func intentName(in engine.Intent) string {
	switch in.(type) {
	case engine.PromptChoice:
		return "prompt_choice"
	case engine.MarkTicketStarted:
		return "mark_ticket_started"
	case engine.ScheduleAlert:
		return "schedule_alert"
	case engine.CancelAlert:
		return "cancel_alert"
	case engine.TaskStarted:
		return "task_started"
	case engine.SessionCompleted:
		return "session_completed"
	}

	return "unknown"
}
