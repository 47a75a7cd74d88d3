package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/timeattack/internal/engine"
	"github.com/ayoisaiah/timeattack/internal/session"
	"github.com/ayoisaiah/timeattack/internal/tasksource"
)

type fakeSource struct {
	tickets map[string]tasksource.Ticket
	updates []string
	err     error
}

func (f *fakeSource) Ticket(_ context.Context, id string) (tasksource.Ticket, error) {
	if f.err != nil {
		return tasksource.Ticket{}, f.err
	}

	t, ok := f.tickets[id]
	if !ok {
		return tasksource.Ticket{}, tasksource.ErrTaskNotFound.Fmt(id)
	}

	return t, nil
}

func (f *fakeSource) UpdateTaskState(
	_ context.Context,
	id string,
	state tasksource.State,
) (tasksource.Ticket, error) {
	f.updates = append(f.updates, id+"="+string(state))

	t := f.tickets[id]
	t.State = state
	f.tickets[id] = t

	return t, nil
}

type fakeAlerter struct {
	scheduled map[string]time.Duration
	canceled  []string
}

func (f *fakeAlerter) Schedule(key string, after time.Duration, _, _ string) {
	f.scheduled[key] = after
}

func (f *fakeAlerter) Cancel(key string) {
	f.canceled = append(f.canceled, key)
}

type fakeHook struct {
	started []string
	err     error
}

func (f *fakeHook) TaskStarted(_ context.Context, task session.Task) error {
	f.started = append(f.started, task.ID)
	return f.err
}

func TestDispatchRoutesIntents(t *testing.T) {
	src := &fakeSource{tickets: map[string]tasksource.Ticket{
		"todo":  {ID: "todo", State: tasksource.StateTodo},
		"doing": {ID: "doing", State: tasksource.StateInProgress},
		"done":  {ID: "done", State: tasksource.StateDone},
	}}
	alerts := &fakeAlerter{scheduled: make(map[string]time.Duration)}
	hook := &fakeHook{}

	var (
		prompted  []string
		completed []string
	)

	d := New(
		WithSource(src),
		WithAlerter(alerts),
		WithHook(hook),
		WithPrompt(func(_ context.Context, id string) error {
			prompted = append(prompted, id)
			return nil
		}),
		WithCompleted(func(s session.Session) {
			completed = append(completed, s.ID)
		}),
	)

	err := d.Dispatch(context.Background(), []engine.Intent{
		engine.PromptChoice{SessionID: "s1"},
		engine.TaskStarted{Task: session.Task{ID: "t1"}},
		engine.MarkTicketStarted{TicketID: "todo"},
		engine.MarkTicketStarted{TicketID: "doing"},
		engine.MarkTicketStarted{TicketID: "done"},
		engine.MarkTicketStarted{TicketID: "JIRA-1"},
		engine.ScheduleAlert{TaskID: "t2", After: 5 * time.Minute},
		engine.CancelAlert{TaskID: "t2"},
		engine.SessionCompleted{Session: session.Session{ID: "s1"}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"s1"}, prompted)
	assert.Equal(t, []string{"t1"}, hook.started)
	assert.Equal(t, []string{"todo=in_progress"}, src.updates)
	assert.Equal(t, map[string]time.Duration{"t2": 5 * time.Minute}, alerts.scheduled)
	assert.Equal(t, []string{"t2"}, alerts.canceled)
	assert.Equal(t, []string{"s1"}, completed)
}

func TestDispatchWithoutCollaborators(t *testing.T) {
	d := New()

	err := d.Dispatch(context.Background(), []engine.Intent{
		engine.PromptChoice{SessionID: "s1"},
		engine.MarkTicketStarted{TicketID: "T1"},
		engine.ScheduleAlert{TaskID: "t", After: time.Second},
		engine.CancelAlert{TaskID: "t"},
		engine.TaskStarted{},
		engine.SessionCompleted{},
	})
	assert.NoError(t, err)
}

func TestDispatchContinuesPastFailures(t *testing.T) {
	errTracker := errors.New("tracker offline")
	errHook := errors.New("hook exited 1")

	src := &fakeSource{err: errTracker}
	hook := &fakeHook{err: errHook}
	alerts := &fakeAlerter{scheduled: make(map[string]time.Duration)}

	d := New(WithSource(src), WithHook(hook), WithAlerter(alerts))

	err := d.Dispatch(context.Background(), []engine.Intent{
		engine.TaskStarted{Task: session.Task{ID: "t1"}},
		engine.MarkTicketStarted{TicketID: "T1"},
		engine.ScheduleAlert{TaskID: "t1", After: time.Minute},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, errTracker)
	assert.ErrorIs(t, err, errHook)
	assert.Contains(t, alerts.scheduled, "t1")
}
