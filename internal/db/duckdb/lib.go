package duckdb

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/ebitengine/purego"
)

// The shared library is process-wide state: resolved once, never reloaded.
var (
	libOnce sync.Once
	libErr  error
)

// EnvLibPath overrides the library search list when set.
const EnvLibPath = "QBUF_DUCKDB_LIB"

func load() {
	names := libNames()
	if p := os.Getenv(EnvLibPath); p != "" {
		names = []string{p}
	}

	var handle uintptr
	for _, name := range names {
		h, err := openLibrary(name)
		if err != nil {
			libErr = err
			continue
		}
		handle = h
		libErr = nil
		slog.Debug("duckdb library loaded", "path", name)
		break
	}
	if handle == 0 {
		if libErr == nil {
			libErr = fmt.Errorf("no duckdb library candidates for this platform")
		}
		libErr = fmt.Errorf("loading duckdb: %w (set %s to the library path)", libErr, EnvLibPath)
		return
	}

	libErr = register(handle)
}

// register resolves every entry point. purego reports a missing symbol or
// an unsupported signature by panicking at registration time; that must
// degrade to Available() == false, never take down the process.
func register(handle uintptr) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("resolving duckdb entry points: %v", r)
		}
	}()

	purego.RegisterLibFunc(&duckdbOpen, handle, "duckdb_open")
	purego.RegisterLibFunc(&duckdbClose, handle, "duckdb_close")
	purego.RegisterLibFunc(&duckdbConnect, handle, "duckdb_connect")
	purego.RegisterLibFunc(&duckdbDisconnect, handle, "duckdb_disconnect")
	purego.RegisterLibFunc(&duckdbQuery, handle, "duckdb_query")
	purego.RegisterLibFunc(&duckdbDestroyResult, handle, "duckdb_destroy_result")
	purego.RegisterLibFunc(&duckdbColumnCount, handle, "duckdb_column_count")
	purego.RegisterLibFunc(&duckdbColumnName, handle, "duckdb_column_name")
	purego.RegisterLibFunc(&duckdbColumnType, handle, "duckdb_column_type")
	purego.RegisterLibFunc(&duckdbRowsChanged, handle, "duckdb_rows_changed")
	purego.RegisterLibFunc(&duckdbResultError, handle, "duckdb_result_error")
	purego.RegisterLibFunc(&duckdbLibraryVersion, handle, "duckdb_library_version")

	registerFetch(handle)
	return nil
}

// Available reports whether the engine library resolved. Every native call
// site checks this before touching an entry point.
func Available() bool {
	libOnce.Do(load)
	return libErr == nil
}

// LoadErr returns the library resolution failure, if any.
func LoadErr() error {
	libOnce.Do(load)
	return libErr
}

// Version reports the engine library version string.
func Version() (string, error) {
	if !Available() {
		return "", LoadErr()
	}
	return duckdbLibraryVersion(), nil
}
