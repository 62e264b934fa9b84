package app

import (
	"context"
	"os"
	"time"

	"github.com/bgunnarsson/qbuf/internal/db"
	"github.com/bgunnarsson/qbuf/internal/history"
	"github.com/bgunnarsson/qbuf/internal/print"
	"github.com/bgunnarsson/qbuf/internal/query"
	"github.com/bgunnarsson/qbuf/internal/ui"
)

// RunNonInteractive loads the given files as buffers, runs one query and
// prints the result table to stdout.
func RunNonInteractive(ctx context.Context, paths []string, sqlText string) error {
	if sqlText == "" {
		// default behaviour: peek at the current buffer
		sqlText = "SELECT * FROM buffer LIMIT 50"
	}

	reg, err := LoadBuffers(paths)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := query.Run(ctx, reg, sqlText)
	recordHistory(ctx, sqlText, res, err, time.Since(start))
	if err != nil {
		return err
	}

	print.RenderTable(os.Stdout, res, print.Options{MaxWidth: 60})
	return nil
}

// RunInteractive loads the given files as buffers and starts the TUI.
func RunInteractive(ctx context.Context, paths []string) error {
	reg, err := LoadBuffers(paths)
	if err != nil {
		return err
	}

	store := openHistory()
	if store != nil {
		defer store.Close()
	}

	return ui.Run(ctx, reg, store)
}

func recordHistory(ctx context.Context, sqlText string, res *db.Result, err error, elapsed time.Duration) {
	store := openHistory()
	if store == nil {
		return
	}
	defer store.Close()

	e := history.Entry{SQL: sqlText, Duration: elapsed}
	if err != nil {
		e.Err = err.Error()
	} else if res != nil {
		e.RowCount = res.RowCount
	}
	_ = store.Add(ctx, e)
}
