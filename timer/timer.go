// Package timer renders the live view of the active task and lets the user
// pause or switch it from the keyboard.
package timer

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayoisaiah/timeattack/internal/engine"
	"github.com/ayoisaiah/timeattack/internal/session"
)

const (
	padding  = 2
	maxWidth = 80
)

// Controller is the part of the engine the view drives.
type Controller interface {
	CurrentSession() (session.Session, bool)
	ActiveTask() (session.Task, bool)
	Estimate(ticketID string) (time.Duration, bool)
	TogglePause() ([]engine.Intent, error)
	SuspendAndTransition() ([]engine.Intent, error)
}

// Dispatcher executes the intents returned by a transition.
type Dispatcher interface {
	Dispatch(ctx context.Context, intents []engine.Intent) error
}

// Timer is the bubbletea model behind the watch command.
type Timer struct {
	ctx        context.Context
	ctrl       Controller
	dispatcher Dispatcher
	clock      func() time.Time
	style      Style
	help       help.Model
	progress   progress.Model
	err        error
	interval   time.Duration
	clockFmt   string
	statusPath string
	logger     *slog.Logger
}

// Option configures a Timer.
type Option func(*Timer)

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) Option {
	return func(t *Timer) {
		t.clock = clock
	}
}

// WithTwentyFourHour shows end times on a 24 hour clock.
func WithTwentyFourHour(on bool) Option {
	return func(t *Timer) {
		if on {
			t.clockFmt = "15:04:05"
		}
	}
}

// WithStyle overrides the default dark theme.
func WithStyle(s Style) Option {
	return func(t *Timer) {
		t.style = s
	}
}

// WithStatusFile keeps a status file at path up to date while the view runs.
// The file is removed on quit.
func WithStatusFile(path string) Option {
	return func(t *Timer) {
		t.statusPath = path
	}
}

// WithLogger sets the logger used for status file failures.
func WithLogger(l *slog.Logger) Option {
	return func(t *Timer) {
		t.logger = l
	}
}

// WithRefresh sets how often the view is redrawn.
func WithRefresh(d time.Duration) Option {
	return func(t *Timer) {
		t.interval = d
	}
}

// New returns a Timer that reads from and acts on ctrl.
func New(
	ctx context.Context,
	ctrl Controller,
	d Dispatcher,
	opts ...Option,
) *Timer {
	t := &Timer{
		ctx:        ctx,
		ctrl:       ctrl,
		dispatcher: d,
		clock:      time.Now,
		style:      NewStyle(true),
		help:       help.New(),
		progress:   progress.New(progress.WithDefaultGradient()),
		interval:   time.Second,
		clockFmt:   "03:04:05 PM",
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

type (
	tickMsg   time.Time
	actionMsg struct {
		err error
	}
)

func (t *Timer) tick() tea.Cmd {
	return tea.Tick(t.interval, func(now time.Time) tea.Msg {
		return tickMsg(now)
	})
}

func (t *Timer) Init() tea.Cmd {
	t.writeStatus()

	return t.tick()
}

func (t *Timer) writeStatus() {
	if t.statusPath == "" {
		return
	}

	task, ok := t.ctrl.ActiveTask()
	if !ok {
		t.removeStatus()
		return
	}

	err := WriteStatus(t.statusPath, NewStatus(task, t.ctrl.Estimate, t.clock()))
	if err != nil {
		t.logger.Warn("writing status file failed",
			slog.String("path", t.statusPath),
			slog.Any("error", err),
		)

		t.err = errWriteStatus.Wrap(err)
	}
}

func (t *Timer) removeStatus() {
	err := os.Remove(t.statusPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		t.logger.Warn("removing status file failed",
			slog.String("path", t.statusPath),
			slog.Any("error", err),
		)

		t.err = errWriteStatus.Wrap(err)
	}
}

func (t *Timer) quit() tea.Cmd {
	if t.statusPath != "" {
		t.removeStatus()
	}

	return tea.Quit
}

// Budget returns the time allowed for a task: the rest length for rest
// tasks, the inherited or estimated budget for work tasks.
func Budget(
	task session.Task,
	estimate func(ticketID string) (time.Duration, bool),
) (time.Duration, bool) {
	if d, ok := task.Type.RestDuration(); ok {
		return d, true
	}

	id, ok := task.Type.TicketID()
	if !ok {
		return 0, false
	}

	var est *time.Duration
	if d, ok := estimate(id); ok {
		est = &d
	}

	return task.Budget(est)
}

// Progress is the share of the budget already used, capped to [0, 1].
func Progress(elapsed, budget time.Duration) float64 {
	if budget <= 0 {
		return 0
	}

	p := float64(elapsed) / float64(budget)

	return min(max(p, 0), 1)
}

// act runs a transition now and dispatches its intents in the background.
func (t *Timer) act(op func() ([]engine.Intent, error)) tea.Cmd {
	intents, err := op()
	if len(intents) == 0 {
		return func() tea.Msg {
			return actionMsg{err: err}
		}
	}

	return func() tea.Msg {
		derr := t.dispatcher.Dispatch(t.ctx, intents)
		if err == nil {
			err = derr
		}

		return actionMsg{err: err}
	}
}
