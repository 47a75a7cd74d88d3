package engine

import (
	"time"

	"github.com/ayoisaiah/timeattack/internal/session"
)

// Intent is a best-effort side effect requested by a transition. Intents are
// returned to the caller and executed outside the engine.
type Intent interface {
	intent()
}

// PromptChoice asks the presentation layer to let the user choose what to do
// in a freshly started session.
type PromptChoice struct {
	SessionID string
}

// MarkTicketStarted asks the task source to move a ticket to its in-progress
// state unless it is already in progress or completed.
type MarkTicketStarted struct {
	TicketID string
}

// ScheduleAlert asks for a one-shot alert once After has elapsed.
type ScheduleAlert struct {
	TaskID string
	After  time.Duration
}

// CancelAlert cancels a pending alert.
type CancelAlert struct {
	TaskID string
}

// TaskStarted reports a newly opened task.
type TaskStarted struct {
	Task session.Task
}

// SessionCompleted hands a closed session to the reporting collaborator.
type SessionCompleted struct {
	Session session.Session
}

func (PromptChoice) intent()      {}
func (MarkTicketStarted) intent() {}
func (ScheduleAlert) intent()     {}
func (CancelAlert) intent()       {}
func (TaskStarted) intent()       {}
func (SessionCompleted) intent()  {}
