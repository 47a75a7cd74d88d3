package timer

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ayoisaiah/timeattack/internal/session"
	"github.com/ayoisaiah/timeattack/internal/timeutil"
)

// Status is the state of the active task as last seen by the live view. It
// is written to a file so that other processes can report it while the
// database is locked.
type Status struct {
	UpdatedAt time.Time      `json:"updated_at"`
	Remaining *time.Duration `json:"remaining,omitempty"`
	Label     string         `json:"label"`
	Elapsed   time.Duration  `json:"elapsed"`
	Paused    bool           `json:"paused"`
}

// NewStatus describes task as of now.
func NewStatus(
	task session.Task,
	estimate func(ticketID string) (time.Duration, bool),
	now time.Time,
) Status {
	s := Status{
		UpdatedAt: now,
		Label:     task.Type.String(),
		Elapsed:   task.Elapsed(now),
		Paused:    task.IsPaused(),
	}

	if id, ok := task.Type.TicketID(); ok {
		s.Label += " " + id
	}

	if budget, ok := Budget(task, estimate); ok {
		r := budget - s.Elapsed
		s.Remaining = &r
	}

	return s
}

// Line renders the status as of now. A running task keeps counting from
// the time the status was written.
func (s Status) Line(now time.Time) string {
	since := time.Duration(0)
	if !s.Paused {
		since = now.Sub(s.UpdatedAt)
	}

	text := fmt.Sprintf("[%s]", s.Label)
	if s.Paused {
		text += " [Paused]"
	}

	if s.Remaining == nil {
		return fmt.Sprintf("%s: %s elapsed", text, timeutil.Clock(s.Elapsed+since))
	}

	return fmt.Sprintf("%s: %s", text, timeutil.Clock(*s.Remaining-since))
}

// WriteStatus replaces the status file at path.
func WriteStatus(path string, s Status) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}

// ReadStatus loads the status file at path.
func ReadStatus(path string) (Status, error) {
	var s Status

	b, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}

	if err := json.Unmarshal(b, &s); err != nil {
		return s, errDecodeStatus.Wrap(err)
	}

	return s, nil
}
