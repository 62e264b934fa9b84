// Package history persists executed queries to a small sqlite database in
// the user's cache directory. History is an observer: failures here are
// logged and never fail the query that produced the entry.
package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // register driver
)

const schema = `
CREATE TABLE IF NOT EXISTS history (
	id          TEXT PRIMARY KEY,
	executed_at INTEGER NOT NULL,
	sql_text    TEXT NOT NULL,
	row_count   INTEGER NOT NULL DEFAULT 0,
	duration_ms INTEGER NOT NULL DEFAULT 0,
	error       TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS history_executed_at ON history (executed_at DESC);
`

// Entry is one executed query.
type Entry struct {
	ID         string
	SQL        string
	RowCount   uint64
	Duration   time.Duration
	Err        string
	ExecutedAt time.Time
}

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the default history database under the
// user cache dir.
func Open() (*Store, error) {
	cache, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(cache, "qbuf")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return OpenAt(filepath.Join(dir, "history.db"))
}

// OpenAt opens a history database at an explicit path.
func OpenAt(path string) (*Store, error) {
	sqldb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	sqldb.SetMaxOpenConns(1)

	if _, err := sqldb.Exec(schema); err != nil {
		_ = sqldb.Close()
		return nil, err
	}
	return &Store{db: sqldb}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Add records one executed query. A zero ID and ExecutedAt are filled in.
func (s *Store) Add(ctx context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.ExecutedAt.IsZero() {
		e.ExecutedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history (id, executed_at, sql_text, row_count, duration_ms, error)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.ExecutedAt.UnixMilli(), e.SQL, int64(e.RowCount), e.Duration.Milliseconds(), e.Err,
	)
	return err
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, executed_at, sql_text, row_count, duration_ms, error
		FROM history
		ORDER BY executed_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e          Entry
			executedAt int64
			durationMS int64
			rowCount   int64
		)
		if err := rows.Scan(&e.ID, &executedAt, &e.SQL, &rowCount, &durationMS, &e.Err); err != nil {
			return nil, err
		}
		e.ExecutedAt = time.UnixMilli(executedAt)
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.RowCount = uint64(rowCount)
		out = append(out, e)
	}
	return out, rows.Err()
}
