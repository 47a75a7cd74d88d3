package session

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)

func at(secs int) time.Time {
	return t0.Add(time.Duration(secs) * time.Second)
}

func ptr[T any](v T) *T {
	return &v
}

func closedTask(id string, tt TaskType, start, end int) Task {
	return Task{
		ID:        id,
		SessionID: "s1",
		Type:      tt,
		StartTime: at(start),
		EndTime:   ptr(at(end)),
	}
}

func TestIntervalsOpenClose(t *testing.T) {
	var iv Intervals

	iv, err := iv.Open(at(10))
	require.NoError(t, err)
	assert.True(t, iv.IsPaused())

	_, err = iv.Open(at(11))
	assert.ErrorIs(t, err, ErrAlreadyPaused)

	closed, err := iv.Close(at(40))
	require.NoError(t, err)
	assert.False(t, closed.IsPaused())
	assert.Equal(t, 30*time.Second, closed.TotalPaused())

	// the receiver is left untouched
	assert.True(t, iv.IsPaused())

	_, err = closed.Close(at(50))
	assert.ErrorIs(t, err, ErrNotPaused)

	_, err = Intervals(nil).Close(at(50))
	assert.ErrorIs(t, err, ErrNotPaused)
}

func TestTotalPausedExcludesOpenInterval(t *testing.T) {
	iv := Intervals{
		{Start: at(0), End: ptr(at(20))},
		{Start: at(30)},
	}

	assert.Equal(t, 20*time.Second, iv.TotalPaused())
	assert.True(t, iv.IsPaused())
}

func TestActualDuration(t *testing.T) {
	task := closedTask("a", Work("T1"), 0, 600)
	task.PausedIntervals = Intervals{
		{Start: at(100), End: ptr(at(160))},
	}

	assert.Equal(t, 540*time.Second, task.ActualDuration(at(9999)))

	active := task
	active.EndTime = nil
	assert.Equal(t, 240*time.Second, active.ActualDuration(at(300)))
}

func TestActualDurationIsNotClamped(t *testing.T) {
	task := closedTask("a", Work("T1"), 0, 10)
	task.PausedIntervals = Intervals{
		{Start: at(0), End: ptr(at(25))},
	}

	assert.Equal(t, -15*time.Second, task.ActualDuration(at(10)))
}

func TestElapsedFreezesWhilePaused(t *testing.T) {
	task := Task{ID: "a", Type: Work("T1"), StartTime: at(0)}
	task.PausedIntervals = Intervals{{Start: at(300)}}

	assert.Equal(t, 300*time.Second, task.Elapsed(at(360)))
	assert.Equal(t, 360*time.Second, task.ActualDuration(at(360)))
}

func TestRemainingUsesInitialRemainingTimeFirst(t *testing.T) {
	task := Task{ID: "a", Type: Work("T1"), StartTime: at(0)}

	_, ok := task.Remaining(at(10), nil)
	assert.False(t, ok)

	r, ok := task.Remaining(at(100), ptr(30*time.Minute))
	require.True(t, ok)
	assert.Equal(t, 30*time.Minute-100*time.Second, r)

	task.InitialRemainingTime = ptr(5 * time.Minute)
	r, ok = task.Remaining(at(100), ptr(30*time.Minute))
	require.True(t, ok)
	assert.Equal(t, 200*time.Second, r)
}

func TestClosedClosesTrailingPause(t *testing.T) {
	task := Task{ID: "a", Type: Rest(time.Minute), StartTime: at(0)}
	task.PausedIntervals = Intervals{{Start: at(30)}}

	closed := task.Closed(at(90))

	assert.False(t, closed.IsActive())
	assert.False(t, closed.IsPaused())
	assert.Equal(t, at(90), *closed.PausedIntervals[0].End)
	assert.Equal(t, 30*time.Second, closed.ActualDuration(at(1000)))

	assert.True(t, task.IsActive())
	assert.True(t, task.IsPaused())
}

func TestSessionActiveTask(t *testing.T) {
	s := Session{ID: "s1", StartTime: at(0)}

	_, ok := s.ActiveTask()
	assert.False(t, ok)

	s = s.AppendingTask(closedTask("a", Deciding(), 0, 10))
	s = s.AppendingTask(Task{ID: "b", Type: Work("T1"), StartTime: at(10)})

	active, ok := s.ActiveTask()
	require.True(t, ok)
	assert.Equal(t, "b", active.ID)
	assert.Equal(t, 1, s.ActiveTaskIndex())
}

func TestAppendingTaskLeavesOriginalUnchanged(t *testing.T) {
	s := Session{ID: "s1", StartTime: at(0)}
	s = s.AppendingTask(closedTask("a", Deciding(), 0, 10))

	next := s.AppendingTask(closedTask("b", Work("T1"), 10, 20))

	assert.Len(t, s.Tasks, 1)
	assert.Len(t, next.Tasks, 2)
}

func TestUpdatingTask(t *testing.T) {
	s := Session{ID: "s1", StartTime: at(0)}
	s = s.AppendingTask(closedTask("a", Deciding(), 0, 10))
	s = s.AppendingTask(Task{ID: "b", Type: Work("T1"), StartTime: at(10)})
	s = s.AppendingTask(closedTask("c", Rest(time.Minute), 0, 10))

	b := s.Tasks[1].WithEndTime(at(50))

	updated, ok := s.UpdatingTask(b)
	require.True(t, ok)

	assert.Equal(t, []string{"a", "b", "c"}, taskIDs(updated))
	assert.Equal(t, at(50), *updated.Tasks[1].EndTime)
	assert.Nil(t, s.Tasks[1].EndTime)

	if diff := cmp.Diff(s.Tasks[0], updated.Tasks[0]); diff != "" {
		t.Errorf("untouched task changed (-want +got):\n%s", diff)
	}

	same, ok := s.UpdatingTask(Task{ID: "missing"})
	assert.False(t, ok)

	if diff := cmp.Diff(s, same); diff != "" {
		t.Errorf("unmatched update changed the session (-want +got):\n%s", diff)
	}
}

func TestSessionWithEndTime(t *testing.T) {
	s := Session{ID: "s1", StartTime: at(0)}
	closed := s.WithEndTime(at(100))

	assert.True(t, s.IsActive())
	assert.False(t, closed.IsActive())
	assert.Equal(t, 100*time.Second, closed.TotalDuration(at(500)))
}

func TestTaskTypeAccessors(t *testing.T) {
	id, ok := Work("T1").TicketID()
	assert.True(t, ok)
	assert.Equal(t, "T1", id)

	_, ok = Rest(time.Minute).TicketID()
	assert.False(t, ok)

	d, ok := Rest(5 * time.Minute).RestDuration()
	assert.True(t, ok)
	assert.Equal(t, 5*time.Minute, d)

	from, ok := Transitioning(ptr("T2")).FromTicketID()
	assert.True(t, ok)
	assert.Equal(t, "T2", from)

	_, ok = Transitioning(nil).FromTicketID()
	assert.False(t, ok)

	assert.True(t, Deciding().IsOverhead())
	assert.True(t, Transitioning(nil).IsOverhead())
	assert.False(t, Work("T1").IsOverhead())

	assert.Equal(t, "Work", Work("T1").String())
	assert.Equal(t, "Rest", Rest(0).String())
	assert.Equal(t, "Deciding", Deciding().String())
	assert.Equal(t, "Transitioning", Transitioning(nil).String())
}

func TestTaskTypeEqual(t *testing.T) {
	assert.True(t, Work("T1").Equal(Work("T1")))
	assert.False(t, Work("T1").Equal(Work("T2")))
	assert.False(t, Work("T1").Equal(Deciding()))
	assert.True(t, Transitioning(ptr("T1")).Equal(Transitioning(ptr("T1"))))
	assert.False(t, Transitioning(ptr("T1")).Equal(Transitioning(nil)))
	assert.True(t, Transitioning(nil).Equal(Transitioning(nil)))
}

func TestTaskTypeJSON(t *testing.T) {
	cases := []struct {
		tt   TaskType
		json string
	}{
		{Work("T1"), `{"kind":"work","ticket_id":"T1"}`},
		{Rest(time.Second), `{"kind":"rest","rest_duration":1000000000}`},
		{Deciding(), `{"kind":"deciding"}`},
		{Transitioning(nil), `{"kind":"transitioning"}`},
		{Transitioning(ptr("T1")), `{"kind":"transitioning","from_ticket_id":"T1"}`},
	}

	for _, tc := range cases {
		t.Run(tc.tt.String(), func(t *testing.T) {
			b, err := json.Marshal(tc.tt)
			require.NoError(t, err)
			assert.JSONEq(t, tc.json, string(b))

			var got TaskType
			require.NoError(t, json.Unmarshal(b, &got))
			assert.True(t, tc.tt.Equal(got))
		})
	}
}

func TestTaskTypeJSONRejectsUnknownKind(t *testing.T) {
	var tt TaskType

	err := json.Unmarshal([]byte(`{"kind":"napping"}`), &tt)
	assert.ErrorIs(t, err, errUnknownTaskKind)

	err = json.Unmarshal([]byte(`{"kind":"work"}`), &tt)
	assert.ErrorIs(t, err, errMissingTicketID)
}

func TestTaskJSONKeepsAbsentAndZeroApart(t *testing.T) {
	withZero := Task{
		ID:                   "a",
		SessionID:            "s1",
		Type:                 Work("T1"),
		StartTime:            at(0),
		InitialRemainingTime: ptr(time.Duration(0)),
		PausedIntervals:      Intervals{{Start: at(5)}},
	}
	absent := withZero
	absent.InitialRemainingTime = nil

	for _, want := range []Task{withZero, absent} {
		b, err := json.Marshal(want)
		require.NoError(t, err)

		var got Task
		require.NoError(t, json.Unmarshal(b, &got))

		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func taskIDs(s Session) []string {
	ids := make([]string, len(s.Tasks))
	for i, task := range s.Tasks {
		ids[i] = task.ID
	}

	return ids
}
