// Package store persists sessions, suspensions, transition records and
// local tickets in a BoltDB file.
package store

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/timeattack/internal/session"
	"github.com/ayoisaiah/timeattack/internal/tasksource"
	"github.com/ayoisaiah/timeattack/internal/timeutil"
)

const (
	sessionBucket    = "sessions"
	suspendedBucket  = "suspended"
	transitionBucket = "transitions"
	ticketBucket     = "tickets"
	metaBucket       = "meta"

	schemaVersionKey = "schema_version"
	schemaVersion    = 1
)

var buckets = []string{
	sessionBucket,
	suspendedBucket,
	transitionBucket,
	ticketBucket,
	metaBucket,
}

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// open creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, ErrRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient opens the database at dbPath, creates any missing buckets and
// upgrades data written by older versions.
func NewClient(dbPath string, opts ...Option) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	c := &Client{
		DB:     db,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}

		return c.migrate(tx)
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return c, nil
}

func sessionKey(s *session.Session) []byte {
	return append(timeutil.ToKey(s.StartTime.UTC()), []byte("_"+s.ID)...)
}

func recordKey(r *session.TransitionRecord) []byte {
	return append(timeutil.ToKey(r.Date.UTC()), []byte("_"+r.ID)...)
}

// replaceBucket empties the named bucket and fills it with entries.
func replaceBucket(tx *bolt.Tx, name string, entries map[string][]byte) error {
	if err := tx.DeleteBucket([]byte(name)); err != nil &&
		!errors.Is(err, bolt.ErrBucketNotFound) {
		return err
	}

	b, err := tx.CreateBucket([]byte(name))
	if err != nil {
		return err
	}

	for k, v := range entries {
		if err := b.Put([]byte(k), v); err != nil {
			return err
		}
	}

	return nil
}

// dropUnreadable logs a snapshot entry that cannot be decoded. The entry is
// left out of the loaded collection.
func (c *Client) dropUnreadable(bucket string, k []byte, err error) {
	c.logger.Warn("dropping unreadable entry",
		slog.String("bucket", bucket),
		slog.String("key", string(k)),
		slog.Any("error", err),
	)
}

// SaveSessions replaces the stored sessions with sessions.
func (c *Client) SaveSessions(sessions []session.Session) error {
	entries := make(map[string][]byte, len(sessions))

	for i := range sessions {
		v, err := json.Marshal(sessions[i])
		if err != nil {
			return err
		}

		entries[string(sessionKey(&sessions[i]))] = v
	}

	return c.Update(func(tx *bolt.Tx) error {
		return replaceBucket(tx, sessionBucket, entries)
	})
}

// LoadSessions returns every stored session, oldest first. Entries that
// cannot be decoded are skipped.
func (c *Client) LoadSessions() ([]session.Session, error) {
	var sessions []session.Session

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(sessionBucket)).ForEach(func(k, v []byte) error {
			var s session.Session
			if err := json.Unmarshal(v, &s); err != nil {
				c.dropUnreadable(sessionBucket, k, err)
				return nil
			}

			sessions = append(sessions, s)

			return nil
		})
	})

	return sessions, err
}

// SaveSuspended replaces the stored suspensions with entries.
func (c *Client) SaveSuspended(entries map[string]session.Suspension) error {
	values := make(map[string][]byte, len(entries))

	for id, e := range entries {
		v, err := json.Marshal(e)
		if err != nil {
			return err
		}

		values[id] = v
	}

	return c.Update(func(tx *bolt.Tx) error {
		return replaceBucket(tx, suspendedBucket, values)
	})
}

// LoadSuspended returns the stored suspensions keyed by ticket id, skipping
// entries that cannot be decoded.
func (c *Client) LoadSuspended() (map[string]session.Suspension, error) {
	entries := make(map[string]session.Suspension)

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(suspendedBucket)).ForEach(func(k, v []byte) error {
			var e session.Suspension
			if err := json.Unmarshal(v, &e); err != nil {
				c.dropUnreadable(suspendedBucket, k, err)
				return nil
			}

			entries[string(k)] = e

			return nil
		})
	})

	return entries, err
}

// SaveTransitionRecords replaces the stored transition records.
func (c *Client) SaveTransitionRecords(records []session.TransitionRecord) error {
	entries := make(map[string][]byte, len(records))

	for i := range records {
		v, err := json.Marshal(records[i])
		if err != nil {
			return err
		}

		entries[string(recordKey(&records[i]))] = v
	}

	return c.Update(func(tx *bolt.Tx) error {
		return replaceBucket(tx, transitionBucket, entries)
	})
}

// LoadTransitionRecords returns the stored transition records, oldest
// first. Entries that cannot be decoded are skipped.
func (c *Client) LoadTransitionRecords() ([]session.TransitionRecord, error) {
	var records []session.TransitionRecord

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(transitionBucket)).ForEach(func(k, v []byte) error {
			var r session.TransitionRecord
			if err := json.Unmarshal(v, &r); err != nil {
				c.dropUnreadable(transitionBucket, k, err)
				return nil
			}

			records = append(records, r)

			return nil
		})
	})

	return records, err
}

// LoadTickets returns every local ticket.
func (c *Client) LoadTickets() ([]tasksource.Ticket, error) {
	var tickets []tasksource.Ticket

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(ticketBucket)).ForEach(func(k, v []byte) error {
			var t tasksource.Ticket
			if err := json.Unmarshal(v, &t); err != nil {
				return errDecode.Fmt(ticketBucket, k).Wrap(err)
			}

			tickets = append(tickets, t)

			return nil
		})
	})

	return tickets, err
}

// SaveTicket creates or overwrites a ticket.
func (c *Client) SaveTicket(t tasksource.Ticket) error {
	v, err := json.Marshal(t)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(ticketBucket)).Put([]byte(t.ID), v)
	})
}

// DeleteTicket removes a ticket. Deleting an unknown ticket is not an error.
func (c *Client) DeleteTicket(id string) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(ticketBucket)).Delete([]byte(id))
	})
}

// NextTicketNumber returns the next local ticket number. Numbers are never
// reused, even after a ticket is deleted.
func (c *Client) NextTicketNumber() (int, error) {
	var n uint64

	err := c.Update(func(tx *bolt.Tx) error {
		var err error

		n, err = tx.Bucket([]byte(ticketBucket)).NextSequence()

		return err
	})

	return int(n), err
}

// SchemaVersion returns the version of the stored data layout.
func (c *Client) SchemaVersion() (int, error) {
	var v int

	err := c.View(func(tx *bolt.Tx) error {
		var err error

		v, err = readSchemaVersion(tx)

		return err
	})

	return v, err
}

func readSchemaVersion(tx *bolt.Tx) (int, error) {
	raw := tx.Bucket([]byte(metaBucket)).Get([]byte(schemaVersionKey))
	if raw == nil {
		return 0, nil
	}

	return strconv.Atoi(string(raw))
}
