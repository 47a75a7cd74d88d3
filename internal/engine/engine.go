// Package engine is the session lifecycle controller. It owns the session
// timeline and the suspension map, applies every transition, and saves a
// snapshot after each one.
package engine

import (
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/ayoisaiah/timeattack/internal/session"
	"github.com/ayoisaiah/timeattack/internal/suspend"
)

// Snapshotter loads and saves the engine's state.
type Snapshotter interface {
	SaveSessions(sessions []session.Session) error
	LoadSessions() ([]session.Session, error)
	SaveSuspended(entries map[string]session.Suspension) error
	LoadSuspended() (map[string]session.Suspension, error)
	SaveTransitionRecords(records []session.TransitionRecord) error
	LoadTransitionRecords() ([]session.TransitionRecord, error)
}

// Engine is the single mutator of session state. Its methods are safe for
// concurrent use; each transition and the save that follows it run under one
// lock.
type Engine struct {
	store     Snapshotter
	estimator Estimator
	clock     func() time.Time
	newID     func() string
	logger    *slog.Logger
	suspended *suspend.Store
	sessions  []session.Session
	records   []session.TransitionRecord
	// current is the index of the open session in sessions, or -1.
	current int
	// pending holds the parts of the snapshot whose last save failed.
	pending dirty
	mu      sync.Mutex
}

// dirty tracks which parts of the snapshot a transition touched.
type dirty struct {
	sessions  bool
	suspended bool
	records   bool
}

func (d dirty) or(o dirty) dirty {
	return dirty{
		sessions:  d.sessions || o.sessions,
		suspended: d.suspended || o.suspended,
		records:   d.records || o.records,
	}
}

// New builds an engine from the state held in store.
func New(store Snapshotter, opts ...Option) (*Engine, error) {
	e := defaults()
	e.store = store

	for _, opt := range opts {
		opt(e)
	}

	sessions, err := store.LoadSessions()
	if err != nil {
		return nil, errLoadSnapshot.Fmt("sessions").Wrap(err)
	}

	suspended, err := store.LoadSuspended()
	if err != nil {
		return nil, errLoadSnapshot.Fmt("suspended tasks").Wrap(err)
	}

	records, err := store.LoadTransitionRecords()
	if err != nil {
		return nil, errLoadSnapshot.Fmt("transition records").Wrap(err)
	}

	e.sessions = sessions
	e.suspended = suspend.New(suspended)
	e.records = records

	for i := len(e.sessions) - 1; i >= 0; i-- {
		if e.sessions[i].IsActive() {
			e.current = i
			break
		}
	}

	return e, nil
}

// StartSession opens a new session with a Deciding task. It does nothing if a
// session is already open.
func (e *Engine) StartSession() ([]Intent, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current >= 0 {
		return nil, nil
	}

	intents := e.startSession(e.clock())

	return intents, e.save(dirty{sessions: true})
}

// StartTask closes the active task, if any, and opens a new one of the given
// type. initialRemaining overrides the ticket estimate for work tasks.
func (e *Engine) StartTask(
	tt session.TaskType,
	initialRemaining *time.Duration,
) ([]Intent, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := validate(tt); err != nil {
		return nil, err
	}

	if e.current < 0 {
		return nil, ErrNoSession
	}

	d, intents, err := e.switchTo(e.clock(), tt, initialRemaining)
	if err != nil {
		return nil, err
	}

	return intents, e.save(d)
}

// EndActiveTask closes the active task without opening another one or
// closing the session.
func (e *Engine) EndActiveTask() ([]Intent, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current < 0 {
		return nil, ErrNoSession
	}

	d, intents, closed := e.closeActive(e.clock())
	if !closed {
		return nil, ErrNoActiveTask
	}

	return intents, e.save(d)
}

// EndSession closes the active task and then the session itself.
func (e *Engine) EndSession() ([]Intent, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current < 0 {
		return nil, ErrNoSession
	}

	now := e.clock()

	d, intents, _ := e.closeActive(now)

	s := e.sessions[e.current].WithEndTime(now)
	e.sessions[e.current] = s
	e.current = -1

	e.logger.Info("session ended",
		slog.String("session_id", s.ID),
		slog.Int("tasks", len(s.Tasks)),
	)

	intents = append(intents, SessionCompleted{Session: s.Clone()})
	d.sessions = true

	return intents, e.save(d)
}

// SuspendCurrentTask records the remaining time of the active work task's
// ticket. The task itself keeps running.
func (e *Engine) SuspendCurrentTask(remaining time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	task, err := e.activeTask()
	if err != nil {
		return err
	}

	ticketID, ok := task.Type.TicketID()
	if !ok {
		return ErrNotAWorkTask
	}

	e.suspend(ticketID, remaining, e.clock())

	return e.save(dirty{suspended: true})
}

// SuspendAndTransition suspends the active work task with whatever budget it
// has left and opens a Transitioning task. An active rest task is ended
// without a suspension.
func (e *Engine) SuspendAndTransition() ([]Intent, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	task, err := e.activeTask()
	if err != nil {
		return nil, err
	}

	now := e.clock()

	var (
		from *string
		d    dirty
	)

	switch task.Type.Kind() {
	case session.KindWork:
		ticketID, _ := task.Type.TicketID()

		var estimate *time.Duration
		if est, ok := e.estimator.Estimate(ticketID); ok {
			estimate = &est
		}

		budget, _ := task.Budget(estimate)
		remaining := max(0, budget-task.Elapsed(now))

		e.suspend(ticketID, remaining, now)

		from = &ticketID
		d.suspended = true
	case session.KindRest:
	case session.KindDeciding, session.KindTransitioning:
		return nil, ErrNotAWorkTask
	}

	sd, intents, err := e.switchTo(now, session.Transitioning(from), nil)
	if err != nil {
		return nil, err
	}

	d.sessions = sd.sessions
	d.records = sd.records

	return intents, e.save(d)
}

// ResumeWorkTask starts a work task on ticketID, opening a session first if
// needed. A suspended ticket continues with the remaining time recorded at
// suspension, and its suspension is removed.
func (e *Engine) ResumeWorkTask(ticketID string) ([]Intent, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if ticketID == "" {
		return nil, errEmptyTicketID
	}

	now := e.clock()

	var (
		intents []Intent
		d       dirty
	)

	if e.current < 0 {
		intents = e.startSession(now)
		d.sessions = true
	}

	var initial *time.Duration

	entry, resumed := e.suspended.Take(ticketID)
	if resumed {
		remaining := entry.RemainingTime
		initial = &remaining
		d.suspended = true
	}

	sd, more, err := e.switchTo(now, session.Work(ticketID), initial)
	if err != nil {
		if resumed {
			e.suspended.Restore(entry)
		}

		return nil, err
	}

	if resumed {
		e.logger.Info("work resumed from suspension",
			slog.String("ticket_id", ticketID),
			slog.Duration("remaining", entry.RemainingTime),
		)
	}

	d.sessions = true
	d.records = sd.records

	return append(intents, more...), e.save(d)
}

// TogglePause pauses the active task, or resumes it if it is paused.
func (e *Engine) TogglePause() ([]Intent, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	task, err := e.activeTask()
	if err != nil {
		return nil, err
	}

	now := e.clock()

	var (
		iv      session.Intervals
		intents []Intent
	)

	if task.IsPaused() {
		iv, err = task.PausedIntervals.Close(now)
	} else {
		iv, err = task.PausedIntervals.Open(now)
	}

	if err != nil {
		return nil, err
	}

	updated := task.WithPausedIntervals(iv)

	if err := e.replaceTask(updated); err != nil {
		return nil, err
	}

	if d, ok := updated.Type.RestDuration(); ok {
		if updated.IsPaused() {
			intents = append(intents, CancelAlert{TaskID: updated.ID})
		} else if r := d - updated.Elapsed(now); r > 0 {
			intents = append(intents, ScheduleAlert{TaskID: updated.ID, After: r})
		}
	}

	return intents, e.save(dirty{sessions: true})
}

// CurrentSession returns the open session, if any.
func (e *Engine) CurrentSession() (session.Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current < 0 {
		return session.Session{}, false
	}

	return e.sessions[e.current].Clone(), true
}

// ActiveTask returns the active task of the open session, if any.
func (e *Engine) ActiveTask() (session.Task, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	task, err := e.activeTask()

	return task, err == nil
}

// Suspended returns every suspension keyed by ticket id.
func (e *Engine) Suspended() map[string]session.Suspension {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.suspended.All()
}

// Suspension returns the suspension recorded for a ticket.
func (e *Engine) Suspension(ticketID string) (session.Suspension, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.suspended.Get(ticketID)
}

// Sessions returns every known session, oldest first.
func (e *Engine) Sessions() []session.Session {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]session.Session, len(e.sessions))
	for i := range e.sessions {
		out[i] = e.sessions[i].Clone()
	}

	return out
}

// TransitionRecords returns the overhead log, oldest first.
func (e *Engine) TransitionRecords() []session.TransitionRecord {
	e.mu.Lock()
	defer e.mu.Unlock()

	return slices.Clone(e.records)
}

// Estimate returns the budget source used for a ticket.
func (e *Engine) Estimate(ticketID string) (time.Duration, bool) {
	return e.estimator.Estimate(ticketID)
}

func (e *Engine) startSession(now time.Time) []Intent {
	s := session.Session{
		ID:        e.newID(),
		StartTime: now,
	}

	task := e.newTask(s.ID, session.Deciding(), now, nil)
	s = s.AppendingTask(task)

	e.sessions = append(e.sessions, s)
	e.current = len(e.sessions) - 1

	e.logger.Info("session started", slog.String("session_id", s.ID))

	return []Intent{
		TaskStarted{Task: task},
		PromptChoice{SessionID: s.ID},
	}
}

// switchTo closes the active task and opens a new one in the open session.
func (e *Engine) switchTo(
	now time.Time,
	tt session.TaskType,
	initialRemaining *time.Duration,
) (dirty, []Intent, error) {
	s := e.sessions[e.current]
	if !s.IsActive() {
		return dirty{}, nil, ErrSessionClosed
	}

	d, intents, _ := e.closeActive(now)

	task := e.newTask(s.ID, tt, now, initialRemaining)
	e.sessions[e.current] = e.sessions[e.current].AppendingTask(task)
	d.sessions = true

	intents = append(intents, TaskStarted{Task: task})

	switch tt.Kind() {
	case session.KindWork:
		ticketID, _ := tt.TicketID()
		intents = append(intents, MarkTicketStarted{TicketID: ticketID})
	case session.KindRest:
		if r, _ := tt.RestDuration(); r > 0 {
			intents = append(intents, ScheduleAlert{TaskID: task.ID, After: r})
		}
	case session.KindDeciding, session.KindTransitioning:
	}

	e.logger.Debug("task started",
		slog.String("session_id", s.ID),
		slog.String("task_id", task.ID),
		slog.String("type", tt.String()),
	)

	return d, intents, nil
}

// closeActive ends the open session's active task. The bool reports whether
// there was a task to close.
func (e *Engine) closeActive(now time.Time) (dirty, []Intent, bool) {
	s := e.sessions[e.current]

	i := s.ActiveTaskIndex()
	if i < 0 {
		return dirty{}, nil, false
	}

	task := s.Tasks[i].Closed(now)
	s.Tasks = slices.Clone(s.Tasks)
	s.Tasks[i] = task
	e.sessions[e.current] = s

	d := dirty{sessions: true}

	var intents []Intent

	switch task.Type.Kind() {
	case session.KindRest:
		intents = append(intents, CancelAlert{TaskID: task.ID})
	case session.KindDeciding, session.KindTransitioning:
		if dur := task.ActualDuration(now); dur > 0 {
			rec := session.TransitionRecord{
				ID:       e.newID(),
				Date:     now,
				Duration: dur,
			}

			if from, ok := task.Type.FromTicketID(); ok {
				rec.FromTicketID = &from
			}

			e.records = append(e.records, rec)
			d.records = true
		}
	case session.KindWork:
	}

	return d, intents, true
}

func (e *Engine) newTask(
	sessionID string,
	tt session.TaskType,
	now time.Time,
	initialRemaining *time.Duration,
) session.Task {
	task := session.Task{
		ID:        e.newID(),
		SessionID: sessionID,
		Type:      tt,
		StartTime: now,
	}

	if initialRemaining != nil {
		r := *initialRemaining
		task.InitialRemainingTime = &r
	}

	return task
}

func (e *Engine) activeTask() (session.Task, error) {
	if e.current < 0 {
		return session.Task{}, ErrNoActiveTask
	}

	task, ok := e.sessions[e.current].ActiveTask()
	if !ok {
		return session.Task{}, ErrNoActiveTask
	}

	return task, nil
}

func (e *Engine) replaceTask(task session.Task) error {
	s, ok := e.sessions[e.current].UpdatingTask(task)
	if !ok {
		return errTaskMismatch.Fmt(task.ID, e.sessions[e.current].ID)
	}

	e.sessions[e.current] = s

	return nil
}

func (e *Engine) suspend(ticketID string, remaining time.Duration, now time.Time) {
	e.suspended.Suspend(ticketID, remaining, now)

	e.logger.Info("work suspended",
		slog.String("ticket_id", ticketID),
		slog.Duration("remaining", remaining),
	)
}

// save writes the touched parts of the snapshot. A failed save leaves the
// in-memory state as it is; the next successful save catches up.
func (e *Engine) save(d dirty) error {
	d = d.or(e.pending)
	e.pending = dirty{}

	var errs []error

	if d.sessions {
		if err := e.store.SaveSessions(e.sessions); err != nil {
			e.pending.sessions = true
			errs = append(errs, err)
		}
	}

	if d.suspended {
		if err := e.store.SaveSuspended(e.suspended.All()); err != nil {
			e.pending.suspended = true
			errs = append(errs, err)
		}
	}

	if d.records {
		if err := e.store.SaveTransitionRecords(e.records); err != nil {
			e.pending.records = true
			errs = append(errs, err)
		}
	}

	if len(errs) == 0 {
		return nil
	}

	err := errors.Join(errs...)

	e.logger.Error("saving snapshot failed", slog.Any("error", err))

	return ErrNotPersisted.Wrap(err)
}

func validate(tt session.TaskType) error {
	switch tt.Kind() {
	case session.KindWork:
		if id, _ := tt.TicketID(); id == "" {
			return errEmptyTicketID
		}
	case session.KindRest, session.KindDeciding, session.KindTransitioning:
	default:
		return errInvalidTaskType
	}

	return nil
}
