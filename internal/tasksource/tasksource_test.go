package tasksource

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTickets struct {
	tickets map[string]Ticket
	counter int
}

func newMemTickets() *memTickets {
	return &memTickets{tickets: make(map[string]Ticket)}
}

func (m *memTickets) LoadTickets() ([]Ticket, error) {
	out := make([]Ticket, 0, len(m.tickets))
	for _, t := range m.tickets {
		out = append(out, t)
	}

	return out, nil
}

func (m *memTickets) SaveTicket(t Ticket) error {
	m.tickets[t.ID] = t
	return nil
}

func (m *memTickets) DeleteTicket(id string) error {
	delete(m.tickets, id)
	return nil
}

func (m *memTickets) NextTicketNumber() (int, error) {
	m.counter++
	return m.counter, nil
}

var t0 = time.Date(2025, time.March, 5, 9, 0, 0, 0, time.UTC)

func newTestLocal(store TicketStore) (*Local, *time.Time) {
	now := t0

	var n int

	l := NewLocal(store,
		WithLocalClock(func() time.Time { return now }),
		WithLocalIDGenerator(func() string {
			n++
			return fmt.Sprintf("uuid-%d", n)
		}),
	)

	return l, &now
}

func durationPtr(d time.Duration) *time.Duration {
	return &d
}

func TestStateNext(t *testing.T) {
	assert.Equal(t, StateInProgress, StateTodo.Next())
	assert.Equal(t, StateDone, StateInProgress.Next())
	assert.Equal(t, StateDone, StateDone.Next())

	assert.True(t, StateInProgress.IsStarted())
	assert.False(t, StateTodo.IsStarted())
	assert.True(t, StateDone.IsCompleted())
	assert.Equal(t, "In Progress", StateInProgress.DisplayName())
}

func TestParseState(t *testing.T) {
	st, err := ParseState("in_progress")
	require.NoError(t, err)
	assert.Equal(t, StateInProgress, st)

	_, err = ParseState("blocked")
	assert.ErrorIs(t, err, errInvalidState)
}

func TestSourceKind(t *testing.T) {
	assert.False(t, SourceLocal.IsExternal())
	assert.True(t, SourceLinear.IsExternal())
	assert.True(t, SourceJira.IsExternal())
	assert.Equal(t, "Jira", SourceJira.ProviderName())
}

func TestDueDateStatus(t *testing.T) {
	day := func(offset int) *time.Time {
		d := t0.AddDate(0, 0, offset).Add(5 * time.Hour)
		return &d
	}

	cases := []struct {
		name string
		due  *time.Time
		want DueStatus
		text string
	}{
		{"none", nil, DueStatus{Kind: DueNone}, ""},
		{"overdue", day(-2), DueStatus{Kind: DueOverdue, Days: 2}, "2 days overdue"},
		{"yesterday", day(-1), DueStatus{Kind: DueOverdue, Days: 1}, "1 day overdue"},
		{"today", day(0), DueStatus{Kind: DueToday}, "due today"},
		{"tomorrow", day(1), DueStatus{Kind: DueSoon, Days: 1}, "due tomorrow"},
		{"soon", day(3), DueStatus{Kind: DueSoon, Days: 3}, "3 days left"},
		{"normal", day(10), DueStatus{Kind: DueNormal, Days: 10}, "10 days left"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DueDateStatus(tc.due, t0)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.text, got.String())
		})
	}
}

func TestCreateTask(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLocal(newMemTickets())

	first, err := l.CreateTask(ctx, CreateRequest{Title: "  Write docs "})
	require.NoError(t, err)

	assert.Equal(t, "uuid-1", first.ID)
	assert.Equal(t, "LOCAL-1", first.Identifier)
	assert.Equal(t, "Write docs", first.Title)
	assert.Equal(t, StateTodo, first.State)
	assert.Equal(t, SourceLocal, first.Source)
	assert.Equal(t, t0, first.CreatedAt)

	second, err := l.CreateTask(ctx, CreateRequest{Title: "Fix bug"})
	require.NoError(t, err)
	assert.Equal(t, "LOCAL-2", second.Identifier)

	_, err = l.CreateTask(ctx, CreateRequest{Title: "   "})
	assert.ErrorIs(t, err, errEmptyTitle)
}

func TestTicketLookup(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLocal(newMemTickets())

	created, err := l.CreateTask(ctx, CreateRequest{Title: "a"})
	require.NoError(t, err)

	byID, err := l.Ticket(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, byID)

	byIdentifier, err := l.Ticket(ctx, "local-1")
	require.NoError(t, err)
	assert.Equal(t, created, byIdentifier)

	_, err = l.Ticket(ctx, "LOCAL-99")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestFetchTasksOrder(t *testing.T) {
	ctx := context.Background()
	l, now := newTestLocal(newMemTickets())

	for i := range 10 {
		_, err := l.CreateTask(ctx, CreateRequest{Title: fmt.Sprintf("t%d", i+1)})
		require.NoError(t, err)
	}

	_, err := l.CreateTask(ctx, CreateRequest{Title: "urgent", Priority: 2})
	require.NoError(t, err)

	*now = now.Add(time.Minute)

	_, err = l.UpdateNotes(ctx, "LOCAL-3", "touched")
	require.NoError(t, err)

	tickets, err := l.FetchTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 11)

	var ids []string
	for _, tk := range tickets {
		ids = append(ids, tk.Identifier)
	}

	assert.Equal(t, []string{
		"LOCAL-11", "LOCAL-3", "LOCAL-1", "LOCAL-2", "LOCAL-4", "LOCAL-5",
		"LOCAL-6", "LOCAL-7", "LOCAL-8", "LOCAL-9", "LOCAL-10",
	}, ids)
}

func TestUpdates(t *testing.T) {
	ctx := context.Background()
	l, now := newTestLocal(newMemTickets())

	created, err := l.CreateTask(ctx, CreateRequest{Title: "a"})
	require.NoError(t, err)

	*now = now.Add(time.Hour)

	got, err := l.UpdateTaskState(ctx, "LOCAL-1", StateInProgress)
	require.NoError(t, err)
	assert.Equal(t, StateInProgress, got.State)
	assert.Equal(t, *now, got.UpdatedAt)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)

	_, err = l.UpdateTaskState(ctx, "LOCAL-1", State("blocked"))
	assert.ErrorIs(t, err, errInvalidState)

	got, err = l.SetEstimate(ctx, created.ID, durationPtr(45*time.Minute))
	require.NoError(t, err)
	require.NotNil(t, got.Estimate)
	assert.Equal(t, 45*time.Minute, *got.Estimate)

	got, err = l.SetEstimate(ctx, created.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, got.Estimate)

	_, err = l.UpdateTaskState(ctx, "nope", StateDone)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestDeleteTask(t *testing.T) {
	ctx := context.Background()
	store := newMemTickets()
	l, _ := newTestLocal(store)

	_, err := l.CreateTask(ctx, CreateRequest{Title: "a"})
	require.NoError(t, err)

	require.NoError(t, l.DeleteTask(ctx, "LOCAL-1"))
	assert.Empty(t, store.tickets)

	assert.ErrorIs(t, l.DeleteTask(ctx, "LOCAL-1"), ErrTaskNotFound)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l, _ := newTestLocal(newMemTickets())

	_, err := l.FetchTasks(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEstimator(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLocal(newMemTickets())

	_, err := l.CreateTask(ctx, CreateRequest{Title: "a", Estimate: durationPtr(time.Hour)})
	require.NoError(t, err)

	_, err = l.CreateTask(ctx, CreateRequest{Title: "b"})
	require.NoError(t, err)

	e := NewEstimator(l, 30*time.Minute)

	d, ok := e.Estimate("LOCAL-1")
	assert.True(t, ok)
	assert.Equal(t, time.Hour, d)

	d, ok = e.Estimate("LOCAL-2")
	assert.True(t, ok)
	assert.Equal(t, 30*time.Minute, d)

	d, ok = e.Estimate("JIRA-7")
	assert.True(t, ok)
	assert.Equal(t, 30*time.Minute, d)

	_, ok = NewEstimator(l, 0).Estimate("LOCAL-2")
	assert.False(t, ok)
}
