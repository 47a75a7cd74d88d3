package store

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/timeattack/internal/engine"
	"github.com/ayoisaiah/timeattack/internal/session"
	"github.com/ayoisaiah/timeattack/internal/tasksource"
)

var t0 = time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)

func at(secs int) time.Time {
	return t0.Add(time.Duration(secs) * time.Second)
}

func ptr[T any](v T) *T {
	return &v
}

func newTestClient(t *testing.T) (*Client, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "timeattack.db")

	c, err := NewClient(path)
	require.NoError(t, err)

	t.Cleanup(func() {
		c.Close()
	})

	return c, path
}

func sampleSessions() []session.Session {
	return []session.Session{
		{
			ID:        "s1",
			StartTime: at(0),
			EndTime:   ptr(at(600)),
			Tasks: []session.Task{
				{
					ID:        "t1",
					SessionID: "s1",
					Type:      session.Deciding(),
					StartTime: at(0),
					EndTime:   ptr(at(20)),
				},
				{
					ID:                   "t2",
					SessionID:            "s1",
					Type:                 session.Work("T1"),
					StartTime:            at(20),
					EndTime:              ptr(at(500)),
					InitialRemainingTime: ptr(time.Duration(0)),
					PausedIntervals: session.Intervals{
						{Start: at(100), End: ptr(at(160))},
					},
				},
				{
					ID:        "t3",
					SessionID: "s1",
					Type:      session.Transitioning(ptr("T1")),
					StartTime: at(500),
					EndTime:   ptr(at(600)),
				},
			},
		},
		{
			ID:        "s2",
			StartTime: at(3600),
			Tasks: []session.Task{
				{
					ID:        "t4",
					SessionID: "s2",
					Type:      session.Rest(5 * time.Minute),
					StartTime: at(3600),
					PausedIntervals: session.Intervals{
						{Start: at(3700)},
					},
				},
			},
		},
	}
}

func TestSessionsRoundTrip(t *testing.T) {
	c, _ := newTestClient(t)

	want := sampleSessions()
	require.NoError(t, c.SaveSessions(want))

	got, err := c.LoadSessions()
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sessions mismatch (-want +got):\n%s", diff)
	}

	// saving a snapshot replaces the previous one
	require.NoError(t, c.SaveSessions(want[:1]))

	got, err = c.LoadSessions()
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSessionsKeepStartOrder(t *testing.T) {
	c, _ := newTestClient(t)

	loc := time.FixedZone("UTC-5", -5*60*60)

	sessions := []session.Session{
		{ID: "late", StartTime: at(7200).In(loc)},
		{ID: "early", StartTime: at(0)},
	}

	require.NoError(t, c.SaveSessions(sessions))

	got, err := c.LoadSessions()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "early", got[0].ID)
	assert.Equal(t, "late", got[1].ID)
}

func TestSessionsWithinOneSecondKeepStartOrder(t *testing.T) {
	c, _ := newTestClient(t)

	sessions := []session.Session{
		{ID: "b", StartTime: t0.Add(520 * time.Millisecond)},
		{ID: "a", StartTime: t0.Add(500 * time.Millisecond)},
		{ID: "c", StartTime: t0.Add(time.Second)},
	}

	require.NoError(t, c.SaveSessions(sessions))

	got, err := c.LoadSessions()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func putRaw(t *testing.T, c *Client, bucket, key, value string) {
	t.Helper()

	err := c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Put([]byte(key), []byte(value))
	})
	require.NoError(t, err)
}

func TestLoadSkipsUnreadableEntries(t *testing.T) {
	c, _ := newTestClient(t)

	require.NoError(t, c.SaveSessions(sampleSessions()))
	require.NoError(t, c.SaveSuspended(map[string]session.Suspension{
		"T1": {TicketID: "T1", RemainingTime: 1380 * time.Second, SuspendedAt: at(480)},
	}))
	require.NoError(t, c.SaveTransitionRecords([]session.TransitionRecord{
		{ID: "r1", Date: at(20), Duration: 20 * time.Second},
	}))

	putRaw(t, c, sessionBucket, "zzz", `{"id":"bad","tasks":[{"type":{"kind":"meeting"}}]}`)
	putRaw(t, c, suspendedBucket, "T2", `{"remaining_time":`)
	putRaw(t, c, transitionBucket, "zzz", `not json`)

	sessions, err := c.LoadSessions()
	require.NoError(t, err)

	if diff := cmp.Diff(sampleSessions(), sessions); diff != "" {
		t.Errorf("sessions mismatch (-want +got):\n%s", diff)
	}

	suspended, err := c.LoadSuspended()
	require.NoError(t, err)
	assert.Len(t, suspended, 1)
	assert.Contains(t, suspended, "T1")

	records, err := c.LoadTransitionRecords()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "r1", records[0].ID)

	e, err := engine.New(c)
	require.NoError(t, err)
	assert.Len(t, e.Sessions(), 2)
}

func TestSuspendedRoundTrip(t *testing.T) {
	c, _ := newTestClient(t)

	empty, err := c.LoadSuspended()
	require.NoError(t, err)
	assert.Empty(t, empty)

	want := map[string]session.Suspension{
		"T1": {TicketID: "T1", RemainingTime: 1380 * time.Second, SuspendedAt: at(480)},
		"T2": {TicketID: "T2", RemainingTime: 0, SuspendedAt: at(900)},
	}

	require.NoError(t, c.SaveSuspended(want))

	got, err := c.LoadSuspended()
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("suspended mismatch (-want +got):\n%s", diff)
	}

	delete(want, "T1")
	require.NoError(t, c.SaveSuspended(want))

	got, err = c.LoadSuspended()
	require.NoError(t, err)
	assert.NotContains(t, got, "T1")
}

func TestTransitionRecordsRoundTrip(t *testing.T) {
	c, _ := newTestClient(t)

	want := []session.TransitionRecord{
		{ID: "r1", Date: at(20), Duration: 20 * time.Second},
		{ID: "r2", Date: at(600), Duration: 100 * time.Second, FromTicketID: ptr("T1")},
	}

	require.NoError(t, c.SaveTransitionRecords(want))

	got, err := c.LoadTransitionRecords()
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestTickets(t *testing.T) {
	c, _ := newTestClient(t)

	n, err := c.NextTicketNumber()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = c.NextTicketNumber()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	tk := tasksource.Ticket{
		ID:         "uuid-1",
		Identifier: "LOCAL-1",
		Title:      "Write docs",
		State:      tasksource.StateTodo,
		Source:     tasksource.SourceLocal,
		Estimate:   ptr(30 * time.Minute),
		CreatedAt:  t0,
		UpdatedAt:  t0,
	}

	require.NoError(t, c.SaveTicket(tk))

	got, err := c.LoadTickets()
	require.NoError(t, err)
	require.Len(t, got, 1)

	if diff := cmp.Diff(tk, got[0]); diff != "" {
		t.Errorf("ticket mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, c.DeleteTicket("uuid-1"))
	require.NoError(t, c.DeleteTicket("uuid-1"))

	got, err = c.LoadTickets()
	require.NoError(t, err)
	assert.Empty(t, got)

	// numbers are not reused after a delete
	n, err = c.NextTicketNumber()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestDataSurvivesReopen(t *testing.T) {
	c, path := newTestClient(t)

	require.NoError(t, c.SaveSessions(sampleSessions()))
	require.NoError(t, c.Close())

	reopened, err := NewClient(path)
	require.NoError(t, err)

	defer reopened.Close()

	got, err := reopened.LoadSessions()
	require.NoError(t, err)
	assert.Len(t, got, 2)

	v, err := reopened.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, schemaVersion, v)
}

func TestSecondOpenReportsRunning(t *testing.T) {
	_, path := newTestClient(t)

	_, err := NewClient(path)
	assert.ErrorIs(t, err, ErrRunning)
}

func writeLegacy(t *testing.T, path string, entries map[string]string) {
	t.Helper()

	db, err := bolt.Open(path, 0o600, nil)
	require.NoError(t, err)

	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(sessionBucket))
		if err != nil {
			return err
		}

		for k, v := range entries {
			if err := b.Put([]byte(k), []byte(v)); err != nil {
				return err
			}
		}

		return nil
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestMigrateLegacySessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.db")

	closed, err := json.Marshal(map[string]any{
		"id":         "old-1",
		"ticket_id":  "T9",
		"start_time": at(0),
		"end_time":   at(300),
		"paused_intervals": []map[string]any{
			{"start": at(100), "end": at(130)},
			{"start": at(250)},
		},
	})
	require.NoError(t, err)

	open, err := json.Marshal(map[string]any{
		"id":         "old-2",
		"ticket_id":  "T10",
		"start_time": at(1000),
	})
	require.NoError(t, err)

	writeLegacy(t, path, map[string]string{
		"2025-03-03T09:00:00Z": string(closed),
		"2025-03-03T09:16:40Z": string(open),
		"garbage":              "{not json",
	})

	c, err := NewClient(path)
	require.NoError(t, err)

	defer c.Close()

	sessions, err := c.LoadSessions()
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	first := sessions[0]
	assert.Equal(t, "old-1", first.ID)
	require.NotNil(t, first.EndTime)
	require.Len(t, first.Tasks, 1)

	task := first.Tasks[0]
	assert.True(t, task.Type.Equal(session.Work("T9")))
	assert.Equal(t, "old-1", task.SessionID)
	assert.False(t, task.IsPaused())
	assert.Equal(t, 220*time.Second, task.ActualDuration(at(5000)))

	second := sessions[1]
	assert.True(t, second.IsActive())
	assert.True(t, second.Tasks[0].IsActive())

	v, err := c.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, schemaVersion, v)
}

func TestMigrationRunsOnce(t *testing.T) {
	c, path := newTestClient(t)
	require.NoError(t, c.Close())

	legacy := `{"id":"late","ticket_id":"T1","start_time":"2025-03-03T09:00:00Z"}`
	writeLegacy(t, path, map[string]string{"late": legacy})

	reopened, err := NewClient(path)
	require.NoError(t, err)

	defer reopened.Close()

	// entries written after the migration are not rewritten
	got, err := reopened.LoadSessions()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Tasks)
}
