package engine

import (
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Estimator looks up the estimated duration of a ticket.
type Estimator interface {
	Estimate(ticketID string) (time.Duration, bool)
}

// EstimatorFunc adapts a function to the Estimator interface.
type EstimatorFunc func(ticketID string) (time.Duration, bool)

func (f EstimatorFunc) Estimate(ticketID string) (time.Duration, bool) {
	return f(ticketID)
}

type noEstimates struct{}

func (noEstimates) Estimate(string) (time.Duration, bool) {
	return 0, false
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the source of transition timestamps.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithIDGenerator sets the function used to create session, task and record
// ids.
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) {
		e.newID = newID
	}
}

// WithLogger sets the engine's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithEstimator sets the ticket estimate lookup used when suspending work.
func WithEstimator(est Estimator) Option {
	return func(e *Engine) {
		e.estimator = est
	}
}

func defaults() *Engine {
	return &Engine{
		clock:     time.Now,
		newID:     uuid.NewString,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		estimator: noEstimates{},
		current:   -1,
	}
}
