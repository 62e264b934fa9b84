// Package query is the single entry point for running SQL against
// buffers: it opens a private engine connection, materializes every
// referenced buffer, rewrites the query, executes it and extracts the
// result, releasing the connection on every exit path.
package query

import (
	"context"

	"github.com/bgunnarsson/qbuf/internal/buffer"
	"github.com/bgunnarsson/qbuf/internal/db"
	"github.com/bgunnarsson/qbuf/internal/db/duckdb"
	"github.com/bgunnarsson/qbuf/internal/rewrite"
)

// Run executes sqlText against the buffers in reg.
func Run(ctx context.Context, reg *buffer.Registry, sqlText string) (*db.Result, error) {
	conn, err := duckdb.Open()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	refs := rewrite.ExtractRefs(sqlText)

	relations := make(map[string]string, len(refs))
	taken := make(map[string]bool, len(refs))
	loaded := make(map[int]string, len(refs)) // buffer number -> relation

	for _, ref := range refs {
		info, err := resolve(reg, ref)
		if err != nil {
			return nil, err
		}

		// Two reference spellings of the same buffer share one relation.
		rel, ok := loaded[info.Number]
		if !ok {
			rel = rewrite.RelationName(info.Name, taken)
			taken[rel] = true
			if err := conn.LoadBuffer(rel, info); err != nil {
				return nil, err
			}
			loaded[info.Number] = rel
		}
		relations[ref.Key()] = rel
	}

	return conn.Query(ctx, rewrite.Rewrite(sqlText, relations))
}

func resolve(reg *buffer.Registry, ref rewrite.Ref) (buffer.Info, error) {
	switch {
	case ref.Implicit:
		return reg.Current()
	case ref.Numeric:
		return reg.ByNumber(ref.Number)
	default:
		return reg.ByName(ref.Name)
	}
}

// ValidationResult reports whether a buffer parses cleanly in the engine.
// On failure Message is the engine's own diagnostic, untouched, so
// downstream consumers can pull line/column info out of it.
type ValidationResult struct {
	OK      bool
	Message string
}

// Validate materializes a single buffer and probes it with a count query.
func Validate(ctx context.Context, info buffer.Info) ValidationResult {
	conn, err := duckdb.Open()
	if err != nil {
		return ValidationResult{Message: err.Error()}
	}
	defer conn.Close()

	rel := rewrite.RelationName(info.Name, nil)
	if err := conn.LoadBuffer(rel, info); err != nil {
		return ValidationResult{Message: err.Error()}
	}
	if _, err := conn.Query(ctx, "SELECT COUNT(*) FROM "+rel); err != nil {
		return ValidationResult{Message: err.Error()}
	}
	return ValidationResult{OK: true}
}
