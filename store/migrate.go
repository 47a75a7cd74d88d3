package store

import (
	"encoding/json"
	"log/slog"
	"slices"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/timeattack/internal/session"
)

// legacySession is how sessions were stored before schema version 1: one
// ticket timer per entry.
type legacySession struct {
	StartTime       time.Time         `json:"start_time"`
	EndTime         *time.Time        `json:"end_time"`
	TicketID        *string           `json:"ticket_id"`
	Tasks           json.RawMessage   `json:"tasks"`
	ID              string            `json:"id"`
	PausedIntervals session.Intervals `json:"paused_intervals"`
}

func (l *legacySession) isLegacy() bool {
	return l.Tasks == nil && l.TicketID != nil
}

// upgrade turns a legacy entry into a session holding a single work task.
func (l *legacySession) upgrade() session.Session {
	task := session.Task{
		ID:              l.ID + "-work",
		SessionID:       l.ID,
		Type:            session.Work(*l.TicketID),
		StartTime:       l.StartTime,
		EndTime:         l.EndTime,
		PausedIntervals: l.PausedIntervals,
	}

	if l.EndTime != nil {
		task = task.Closed(*l.EndTime)
	}

	return session.Session{
		ID:        l.ID,
		StartTime: l.StartTime,
		EndTime:   task.EndTime,
		Tasks:     []session.Task{task},
	}
}

func (c *Client) migrateSessionsV0(tx *bolt.Tx) error {
	bucket := tx.Bucket([]byte(sessionBucket))

	type entry struct {
		key   []byte
		value []byte
	}

	// bolt cursors must not be used while the bucket is modified
	var (
		upgraded []entry
		dropped  [][]byte
	)

	err := bucket.ForEach(func(k, v []byte) error {
		var l legacySession
		if err := json.Unmarshal(v, &l); err != nil {
			c.logger.Warn("dropping unreadable session",
				slog.String("key", string(k)),
				slog.Any("error", err),
			)

			dropped = append(dropped, slices.Clone(k))

			return nil
		}

		if !l.isLegacy() {
			return nil
		}

		s := l.upgrade()

		value, err := json.Marshal(s)
		if err != nil {
			return err
		}

		dropped = append(dropped, slices.Clone(k))
		upgraded = append(upgraded, entry{key: sessionKey(&s), value: value})

		return nil
	})
	if err != nil {
		return err
	}

	for _, k := range dropped {
		if err := bucket.Delete(k); err != nil {
			return err
		}
	}

	for _, e := range upgraded {
		if err := bucket.Put(e.key, e.value); err != nil {
			return err
		}
	}

	if len(upgraded) > 0 {
		c.logger.Info("upgraded legacy sessions", slog.Int("count", len(upgraded)))
	}

	return nil
}

// migrate brings the data layout up to schemaVersion. A sessions bucket
// that cannot be read is discarded so the program can still start.
func (c *Client) migrate(tx *bolt.Tx) error {
	version, err := readSchemaVersion(tx)
	if err != nil {
		c.logger.Warn("unreadable schema version, assuming 0", slog.Any("error", err))

		version = 0
	}

	if version >= schemaVersion {
		return nil
	}

	if err := c.migrateSessionsV0(tx); err != nil {
		c.logger.Warn("discarding sessions that could not be migrated",
			slog.Any("error", err),
		)

		if err := replaceBucket(tx, sessionBucket, nil); err != nil {
			return err
		}
	}

	return tx.Bucket([]byte(metaBucket)).Put(
		[]byte(schemaVersionKey),
		[]byte(strconv.Itoa(schemaVersion)),
	)
}
