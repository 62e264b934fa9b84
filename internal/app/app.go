package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bgunnarsson/qbuf/internal/buffer"
	"github.com/bgunnarsson/qbuf/internal/history"
)

// LoadBuffers reads each file into an in-memory buffer snapshot. Buffer
// numbers are assigned in argument order, starting at 1; the first file
// becomes the current buffer.
func LoadBuffers(paths []string) (*buffer.Registry, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no buffers given")
	}

	reg := buffer.NewRegistry()
	for i, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		reg.Add(buffer.New(i+1, filepath.Base(path), string(content)))
	}
	return reg, nil
}

// openHistory is best-effort: a broken history store degrades to nil and
// the session runs without it.
func openHistory() *history.Store {
	store, err := history.Open()
	if err != nil {
		slog.Warn("query history unavailable", "err", err)
		return nil
	}
	return store
}
