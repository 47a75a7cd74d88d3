package store

import (
	"github.com/ayoisaiah/timeattack/internal/engine"
	"github.com/ayoisaiah/timeattack/internal/tasksource"
)

// DB is the database storage interface.
type DB interface {
	// engine state: sessions, suspensions and transition records
	engine.Snapshotter
	// local tickets
	tasksource.TicketStore
	// SchemaVersion reports the version of the stored data layout
	SchemaVersion() (int, error)
	// Close ends the database connection
	Close() error
}

var _ DB = (*Client)(nil)
