package session

import (
	"slices"
	"time"
)

// PausedInterval is a span of time during which a task was paused. A nil End
// means the task is still paused.
type PausedInterval struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

// IsOpen reports whether the interval has not been closed yet.
func (p PausedInterval) IsOpen() bool {
	return p.End == nil
}

// Duration returns the length of a closed interval. Open intervals report
// zero.
func (p PausedInterval) Duration() time.Duration {
	if p.End == nil {
		return 0
	}

	return p.End.Sub(p.Start)
}

// Intervals is the pause history of a task. Only the last element may be
// open.
type Intervals []PausedInterval

// IsPaused reports whether the last interval is open.
func (iv Intervals) IsPaused() bool {
	if len(iv) == 0 {
		return false
	}

	return iv[len(iv)-1].IsOpen()
}

// Open returns a copy of the intervals with a new open interval starting at
// the given time.
func (iv Intervals) Open(at time.Time) (Intervals, error) {
	if iv.IsPaused() {
		return iv, ErrAlreadyPaused
	}

	out := make(Intervals, len(iv), len(iv)+1)
	copy(out, iv)

	return append(out, PausedInterval{Start: at}), nil
}

// Close returns a copy of the intervals with the trailing open interval
// ended at the given time.
func (iv Intervals) Close(at time.Time) (Intervals, error) {
	if !iv.IsPaused() {
		return iv, ErrNotPaused
	}

	out := slices.Clone(iv)

	end := at
	out[len(out)-1].End = &end

	return out, nil
}

// TotalPaused sums the durations of all closed intervals.
func (iv Intervals) TotalPaused() time.Duration {
	var total time.Duration

	for _, p := range iv {
		total += p.Duration()
	}

	return total
}
