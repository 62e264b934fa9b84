package duckdb

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/bgunnarsson/qbuf/internal/buffer"
	"github.com/bgunnarsson/qbuf/internal/db"
)

// LoadBuffer writes the buffer's text verbatim to a temp file and creates
// a relation from it in this connection's session. The temp file is owned
// by the connection and removed on Close.
func (c *Conn) LoadBuffer(relation string, buf buffer.Info) error {
	if c.closed {
		return db.ErrConnectionClosed
	}

	var ext, reader, extra string
	switch buf.Format {
	case buffer.FormatCSV:
		ext, reader = ".csv", "read_csv_auto"
	case buffer.FormatJSON:
		ext, reader = ".json", "read_json_auto"
	case buffer.FormatJSONL:
		ext, reader = ".jsonl", "read_json_auto"
		extra = ", format='newline_delimited'"
	default:
		return fmt.Errorf("%w: %q", db.ErrUnsupportedFormat, buf.Format)
	}

	f, err := os.CreateTemp("", "qbuf-*"+ext)
	if err != nil {
		return fmt.Errorf("%w: %v", db.ErrTempFile, err)
	}
	// Track before writing so a failed write still gets swept on Close.
	c.tempFiles = append(c.tempFiles, f.Name())

	if _, err := f.WriteString(buf.Content); err != nil {
		f.Close()
		return fmt.Errorf("%w: %v", db.ErrTempFile, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", db.ErrTempFile, err)
	}

	stmt := fmt.Sprintf(
		"CREATE OR REPLACE TABLE %s AS SELECT * FROM %s(%s%s)",
		relation, reader, quoteLiteral(f.Name()), extra,
	)
	if err := c.Exec(stmt); err != nil {
		return err
	}

	slog.Debug("buffer materialized", "buffer", buf.Name, "relation", relation, "bytes", buf.Size)
	return nil
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
