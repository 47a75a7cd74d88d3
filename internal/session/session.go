// Package session defines the value types tracked by timeattack: sessions,
// their tasks, pause intervals, suspensions and transition records.
package session

import (
	"slices"
	"time"
)

// Session is one continuous tracked work period. Tasks are kept in start
// order and only ever appended.
type Session struct {
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	ID        string     `json:"id"`
	Tasks     []Task     `json:"tasks"`
}

// IsActive reports whether the session has not been closed.
func (s Session) IsActive() bool {
	return s.EndTime == nil
}

// ActiveTask returns the task that has not ended, if any.
func (s Session) ActiveTask() (Task, bool) {
	i := s.ActiveTaskIndex()
	if i < 0 {
		return Task{}, false
	}

	return s.Tasks[i], true
}

// ActiveTaskIndex returns the position of the active task or -1.
func (s Session) ActiveTaskIndex() int {
	return slices.IndexFunc(s.Tasks, Task.IsActive)
}

// TotalDuration is the wall-clock span of the session as of now.
func (s Session) TotalDuration(now time.Time) time.Duration {
	end := now
	if s.EndTime != nil {
		end = *s.EndTime
	}

	return end.Sub(s.StartTime)
}

// WithEndTime returns a copy of the session closed at the given time.
func (s Session) WithEndTime(end time.Time) Session {
	s.EndTime = &end
	s.Tasks = slices.Clone(s.Tasks)

	return s
}

// AppendingTask returns a copy of the session with task added last.
func (s Session) AppendingTask(task Task) Session {
	tasks := make([]Task, len(s.Tasks), len(s.Tasks)+1)
	copy(tasks, s.Tasks)

	s.Tasks = append(tasks, task)

	return s
}

// UpdatingTask returns a copy of the session with the task sharing task.ID
// replaced. The bool is false, and the session returned unchanged, when no
// task matches.
func (s Session) UpdatingTask(task Task) (Session, bool) {
	i := slices.IndexFunc(s.Tasks, func(t Task) bool {
		return t.ID == task.ID
	})
	if i < 0 {
		return s, false
	}

	s.Tasks = slices.Clone(s.Tasks)
	s.Tasks[i] = task

	return s, true
}

// Clone returns a deep enough copy of the session that modifying the copy's
// task list does not affect s.
func (s Session) Clone() Session {
	s.Tasks = slices.Clone(s.Tasks)

	return s
}
