package session

import (
	"slices"
	"time"
)

// Task is a single typed, timed segment within a session.
type Task struct {
	StartTime            time.Time      `json:"start_time"`
	EndTime              *time.Time     `json:"end_time,omitempty"`
	InitialRemainingTime *time.Duration `json:"initial_remaining_time,omitempty"`
	Type                 TaskType       `json:"type"`
	ID                   string         `json:"id"`
	SessionID            string         `json:"session_id"`
	PausedIntervals      Intervals      `json:"paused_intervals"`
}

// IsActive reports whether the task has not ended.
func (t Task) IsActive() bool {
	return t.EndTime == nil
}

// IsPaused reports whether the task's last pause interval is open.
func (t Task) IsPaused() bool {
	return t.PausedIntervals.IsPaused()
}

// TotalPausedTime sums the closed pause intervals.
func (t Task) TotalPausedTime() time.Duration {
	return t.PausedIntervals.TotalPaused()
}

// ActualDuration is the time spent on the task excluding closed pauses. Active
// tasks are measured up to now. The result is not clamped: a negative value
// means the recorded pauses exceed the task's wall-clock span.
func (t Task) ActualDuration(now time.Time) time.Duration {
	end := now
	if t.EndTime != nil {
		end = *t.EndTime
	}

	return end.Sub(t.StartTime) - t.TotalPausedTime()
}

// Elapsed is the time counted against the task's budget as of now. Time in a
// pause that is still open is not counted.
func (t Task) Elapsed(now time.Time) time.Duration {
	if t.IsPaused() {
		now = t.PausedIntervals[len(t.PausedIntervals)-1].Start
	}

	return t.ActualDuration(now)
}

// Budget returns the time allowed for the task: the remaining time inherited
// from a suspension if present, otherwise the given estimate.
func (t Task) Budget(estimate *time.Duration) (time.Duration, bool) {
	if t.InitialRemainingTime != nil {
		return *t.InitialRemainingTime, true
	}

	if estimate != nil {
		return *estimate, true
	}

	return 0, false
}

// Remaining returns budget minus elapsed time. It may be negative when the
// task overruns. The bool is false when the task has no budget.
func (t Task) Remaining(now time.Time, estimate *time.Duration) (time.Duration, bool) {
	budget, ok := t.Budget(estimate)
	if !ok {
		return 0, false
	}

	return budget - t.Elapsed(now), true
}

// WithEndTime returns a copy of the task ended at the given time.
func (t Task) WithEndTime(end time.Time) Task {
	t.EndTime = &end
	t.PausedIntervals = slices.Clone(t.PausedIntervals)

	return t
}

// WithPausedIntervals returns a copy of the task with the given pause
// history.
func (t Task) WithPausedIntervals(iv Intervals) Task {
	t.PausedIntervals = slices.Clone(iv)

	return t
}

// Closed returns a copy of the task ended at the given time, closing a
// trailing open pause first.
func (t Task) Closed(at time.Time) Task {
	if t.IsPaused() {
		iv, _ := t.PausedIntervals.Close(at)
		t = t.WithPausedIntervals(iv)
	}

	return t.WithEndTime(at)
}
