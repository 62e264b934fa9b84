//go:build !darwin

package duckdb

import "github.com/ebitengine/purego"

// duckdb_fetch_chunk takes duckdb_result by value, which purego cannot
// pass on this platform (RegisterLibFunc panics at registration time).
// Extraction reads the materialized column arrays through the
// pointer-taking deprecated API instead.
const chunkedFetch = false

func registerFetch(handle uintptr) {
	purego.RegisterLibFunc(&duckdbRowCount, handle, "duckdb_row_count")
	purego.RegisterLibFunc(&duckdbColumnData, handle, "duckdb_column_data")
	purego.RegisterLibFunc(&duckdbNullmaskData, handle, "duckdb_nullmask_data")
}
