package tasksource

import (
	"context"
	"time"
)

// Estimator supplies the time budget of a work task from its ticket's
// estimate, falling back to a default for tickets without one.
type Estimator struct {
	src      Source
	fallback time.Duration
}

func NewEstimator(src Source, fallback time.Duration) *Estimator {
	return &Estimator{
		src:      src,
		fallback: fallback,
	}
}

func (e *Estimator) Estimate(ticketID string) (time.Duration, bool) {
	if e.src != nil {
		t, err := e.src.Ticket(context.Background(), ticketID)
		if err == nil && t.Estimate != nil {
			return *t.Estimate, true
		}
	}

	if e.fallback > 0 {
		return e.fallback, true
	}

	return 0, false
}
