package duckdb

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bgunnarsson/qbuf/internal/buffer"
	"github.com/bgunnarsson/qbuf/internal/db"
)

// A Conn with zero handles exercises the lifecycle logic without the
// shared library: Close skips native release for null handles.

func TestCloseIsIdempotent(t *testing.T) {
	c := &Conn{}
	c.Close()
	c.Close() // second close must be a no-op

	if !c.closed {
		t.Fatal("closed flag not set")
	}
	if c.handle != 0 || c.session != 0 {
		t.Fatal("handles not nulled after close")
	}
}

func TestCloseSweepsTempFiles(t *testing.T) {
	dir := t.TempDir()
	tracked := filepath.Join(dir, "a.csv")
	gone := filepath.Join(dir, "already-gone.csv")
	if err := os.WriteFile(tracked, []byte("a\n1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// A missing file must not abort the sweep of the ones after it.
	c := &Conn{tempFiles: []string{gone, tracked}}
	c.Close()

	if _, err := os.Stat(tracked); !os.IsNotExist(err) {
		t.Errorf("temp file survived close: %v", err)
	}
	if c.tempFiles != nil {
		t.Errorf("tempFiles not cleared: %v", c.tempFiles)
	}
}

func TestClosedConnectionGuards(t *testing.T) {
	c := &Conn{}
	c.Close()

	if _, err := c.Query(context.Background(), "SELECT 1"); !errors.Is(err, db.ErrConnectionClosed) {
		t.Errorf("Query after close: %v, want ErrConnectionClosed", err)
	}
	if err := c.Exec("SELECT 1"); !errors.Is(err, db.ErrConnectionClosed) {
		t.Errorf("Exec after close: %v, want ErrConnectionClosed", err)
	}
	buf := buffer.New(1, "a.csv", "a\n1\n")
	if err := c.LoadBuffer("a", buf); !errors.Is(err, db.ErrConnectionClosed) {
		t.Errorf("LoadBuffer after close: %v, want ErrConnectionClosed", err)
	}
}

func TestLoadBufferRejectsUnknownFormat(t *testing.T) {
	if !Available() {
		t.Skip("duckdb library not available")
	}

	conn, err := Open()
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	buf := buffer.Info{Number: 1, Name: "scratch", Format: buffer.FormatUnknown}
	if err := conn.LoadBuffer("scratch", buf); !errors.Is(err, db.ErrUnsupportedFormat) {
		t.Errorf("LoadBuffer: %v, want ErrUnsupportedFormat", err)
	}
}

func TestQueryErrorMessagePassesThrough(t *testing.T) {
	if !Available() {
		t.Skip("duckdb library not available")
	}

	conn, err := Open()
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	_, err = conn.Query(context.Background(), "SELECT * FROM not_a_relation")
	var qe *db.QueryError
	if !errors.As(err, &qe) {
		t.Fatalf("want *db.QueryError, got %v", err)
	}
	if qe.Message == "" {
		t.Error("engine message was empty")
	}
	if qe.Error() != qe.Message {
		t.Error("Error() must return the engine message verbatim")
	}
}
