package duckdb

import "github.com/ebitengine/purego"

// purego passes struct arguments on darwin, so results stream through the
// chunked protocol here.
const chunkedFetch = true

func registerFetch(handle uintptr) {
	purego.RegisterLibFunc(&duckdbFetchChunk, handle, "duckdb_fetch_chunk")
	purego.RegisterLibFunc(&duckdbDataChunkGetSize, handle, "duckdb_data_chunk_get_size")
	purego.RegisterLibFunc(&duckdbDataChunkGetVector, handle, "duckdb_data_chunk_get_vector")
	purego.RegisterLibFunc(&duckdbDestroyDataChunk, handle, "duckdb_destroy_data_chunk")
	purego.RegisterLibFunc(&duckdbVectorGetData, handle, "duckdb_vector_get_data")
	purego.RegisterLibFunc(&duckdbVectorGetValidity, handle, "duckdb_vector_get_validity")
}
