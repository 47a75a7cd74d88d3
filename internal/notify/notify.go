// Package notify shows desktop notifications, immediately or after a delay.
package notify

import (
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/gen2brain/beeep"
)

// Notifier delivers alerts to the user.
type Notifier interface {
	Notify(title, msg string) error
	Schedule(key string, after time.Duration, title, msg string)
	Cancel(key string)
}

type sendFunc func(title, msg, icon string) error

// Desktop sends notifications through the operating system.
type Desktop struct {
	send    sendFunc
	logger  *slog.Logger
	timers  map[string]*time.Timer
	icon    string
	enabled bool
	mu      sync.Mutex
}

// Option configures a Desktop notifier.
type Option func(*Desktop)

func WithLogger(l *slog.Logger) Option {
	return func(d *Desktop) {
		d.logger = l
	}
}

// WithIcon sets the icon path. It defaults to static/icon.png in the data
// directory, if present.
func WithIcon(path string) Option {
	return func(d *Desktop) {
		d.icon = path
	}
}

func withSender(fn sendFunc) Option {
	return func(d *Desktop) {
		d.send = fn
	}
}

// NewDesktop returns a notifier. When enabled is false every alert is
// dropped.
func NewDesktop(appDir string, enabled bool, opts ...Option) *Desktop {
	// pathToIcon will be an empty string if file is not found
	pathToIcon, _ := xdg.SearchDataFile(
		filepath.Join(appDir, "static", "icon.png"),
	)

	d := &Desktop{
		send:    beeep.Notify,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		timers:  make(map[string]*time.Timer),
		icon:    pathToIcon,
		enabled: enabled,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Enabled reports whether notifications are shown.
func (d *Desktop) Enabled() bool {
	return d.enabled
}

// Notify shows a notification now.
func (d *Desktop) Notify(title, msg string) error {
	if !d.enabled {
		return nil
	}

	if err := d.send(title, msg, d.icon); err != nil {
		return errNotify.Wrap(err)
	}

	return nil
}

// Schedule shows a notification after the given delay. Scheduling a key
// that is already pending replaces it.
func (d *Desktop) Schedule(key string, after time.Duration, title, msg string) {
	if !d.enabled {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[key]; ok {
		t.Stop()
	}

	var timer *time.Timer

	timer = time.AfterFunc(after, func() {
		d.mu.Lock()
		if d.timers[key] == timer {
			delete(d.timers, key)
		}
		d.mu.Unlock()

		if err := d.Notify(title, msg); err != nil {
			d.logger.Error("notification failed",
				slog.String("key", key),
				slog.Any("error", err),
			)
		}
	})

	d.timers[key] = timer

	d.logger.Debug("notification scheduled",
		slog.String("key", key),
		slog.Duration("after", after),
	)
}

// Cancel drops a pending notification.
func (d *Desktop) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[key]; ok {
		t.Stop()
		delete(d.timers, key)
	}
}

// Pending returns the number of scheduled notifications.
func (d *Desktop) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.timers)
}

// Stop drops every pending notification.
func (d *Desktop) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
	}
}
