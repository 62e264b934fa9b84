package duckdb

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/bgunnarsson/qbuf/internal/db"
)

// Conn is one in-process engine instance plus a session on top of it. It
// owns both native handles and every temp file materialized through it.
// A Conn is single-caller and never shared across queries in flight.
type Conn struct {
	handle    database
	session   connection
	tempFiles []string
	closed    bool
}

// Open creates a fresh in-memory engine instance and attaches a session.
func Open() (*Conn, error) {
	if !Available() {
		return nil, fmt.Errorf("%w: %v", db.ErrLibraryNotLoaded, LoadErr())
	}

	var dbh database
	if duckdbOpen(":memory:", &dbh) == stateError {
		return nil, fmt.Errorf("%w: opening in-memory database", db.ErrConnectionOpenFailed)
	}

	var sess connection
	if duckdbConnect(dbh, &sess) == stateError {
		duckdbClose(&dbh)
		return nil, fmt.Errorf("%w: attaching session", db.ErrConnectionOpenFailed)
	}

	slog.Debug("engine connection opened")
	return &Conn{handle: dbh, session: sess}, nil
}

// Close releases the session, then the database, then sweeps temp files.
// It is idempotent; calling it twice is a no-op. The session must go
// before the database handle or the native layer reads freed memory.
func (c *Conn) Close() {
	if c.closed {
		return
	}
	c.closed = true

	if c.session != 0 {
		duckdbDisconnect(&c.session)
		c.session = 0
	}
	if c.handle != 0 {
		duckdbClose(&c.handle)
		c.handle = 0
	}

	for _, p := range c.tempFiles {
		if err := os.Remove(p); err != nil {
			slog.Debug("temp file not removed", "path", p, "err", err)
		}
	}
	c.tempFiles = nil
	slog.Debug("engine connection closed")
}

// Exec runs a statement and discards its result.
func (c *Conn) Exec(sql string) error {
	if c.closed {
		return db.ErrConnectionClosed
	}

	var res result
	if duckdbQuery(c.session, sql, &res) == stateError {
		msg := duckdbResultError(&res)
		duckdbDestroyResult(&res)
		return &db.QueryError{Message: msg}
	}
	duckdbDestroyResult(&res)
	return nil
}
