package duckdb

import "unsafe"

// Opaque engine handles. The C API hands these out as pointers; they are
// never dereferenced on the Go side.
type (
	database   uintptr
	connection uintptr
	dataChunk  uintptr
	vector     uintptr
)

// duckdb_state
const stateError = 1

// duckdb_type values, per duckdb.h. UHUGEINT was appended after the
// original block, hence the out-of-order value.
const (
	typeInvalid = iota
	typeBoolean
	typeTinyint
	typeSmallint
	typeInteger
	typeBigint
	typeUTinyint
	typeUSmallint
	typeUInteger
	typeUBigint
	typeFloat
	typeDouble
	typeTimestamp
	typeDate
	typeTime
	typeInterval
	typeHugeint
	typeVarchar
	typeBlob
	typeDecimal
	typeTimestampS
	typeTimestampMS
	typeTimestampNS
	typeEnum
	typeList
	typeStruct
	typeMap
	typeUUID
	typeUnion
	typeBit
	typeTimeTZ
	typeTimestampTZ
	typeUHugeint
)

var typeNames = map[uint32]string{
	typeInvalid:     "INVALID",
	typeBoolean:     "BOOLEAN",
	typeTinyint:     "TINYINT",
	typeSmallint:    "SMALLINT",
	typeInteger:     "INTEGER",
	typeBigint:      "BIGINT",
	typeUTinyint:    "UTINYINT",
	typeUSmallint:   "USMALLINT",
	typeUInteger:    "UINTEGER",
	typeUBigint:     "UBIGINT",
	typeFloat:       "FLOAT",
	typeDouble:      "DOUBLE",
	typeTimestamp:   "TIMESTAMP",
	typeDate:        "DATE",
	typeTime:        "TIME",
	typeInterval:    "INTERVAL",
	typeHugeint:     "HUGEINT",
	typeVarchar:     "VARCHAR",
	typeBlob:        "BLOB",
	typeDecimal:     "DECIMAL",
	typeTimestampS:  "TIMESTAMP_S",
	typeTimestampMS: "TIMESTAMP_MS",
	typeTimestampNS: "TIMESTAMP_NS",
	typeEnum:        "ENUM",
	typeList:        "LIST",
	typeStruct:      "STRUCT",
	typeMap:         "MAP",
	typeUUID:        "UUID",
	typeUnion:       "UNION",
	typeBit:         "BIT",
	typeTimeTZ:      "TIME_TZ",
	typeTimestampTZ: "TIMESTAMP_TZ",
	typeUHugeint:    "UHUGEINT",
}

func typeName(t uint32) string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return "UNKNOWN"
}

// result mirrors duckdb_result. The leading fields are deprecated in the C
// API but still part of the struct, and duckdb_fetch_chunk takes the whole
// thing by value, so the layout must match duckdb.h exactly.
type result struct {
	deprecatedColumnCount  uint64
	deprecatedRowCount     uint64
	deprecatedRowsChanged  uint64
	deprecatedColumns      uintptr
	deprecatedErrorMessage uintptr
	internalData           uintptr
}

// stringInlineCap is the inline payload capacity of duckdb_string_t.
const stringInlineCap = 12

// stringT mirrors duckdb_string_t: a 16-byte descriptor where payloads of
// up to stringInlineCap bytes live inline in data, and longer payloads keep
// a 4-byte prefix in data[0:4] followed by a pointer to the full payload.
type stringT struct {
	length uint32
	data   [12]byte
}

// bytes resolves the descriptor to its payload. The returned slice aliases
// either the descriptor or engine-owned memory; copy before the chunk is
// destroyed.
func (s *stringT) bytes() []byte {
	n := int(s.length)
	if n <= stringInlineCap {
		return s.data[:n]
	}
	p := *(*unsafe.Pointer)(unsafe.Pointer(&s.data[4]))
	return unsafe.Slice((*byte)(p), n)
}

// interval mirrors duckdb_interval.
type interval struct {
	months int32
	days   int32
	micros int64
}

// hugeint mirrors duckdb_hugeint (low word first).
type hugeint struct {
	lower uint64
	upper int64
}

// uhugeint mirrors duckdb_uhugeint.
type uhugeint struct {
	lower uint64
	upper uint64
}

// Entry points resolved from the shared library at load time. All calls
// must be guarded by Available().
//
// duckdb_fetch_chunk takes duckdb_result by value, and purego can only
// pass struct arguments on darwin. The chunked entry points below are
// therefore registered on darwin only; everywhere else extraction goes
// through the pointer-taking deprecated column API (duckdb_row_count,
// duckdb_column_data, duckdb_nullmask_data), which the engine still
// materializes for every result. registerFetch in fetch_darwin.go /
// fetch_other.go wires up whichever set the platform uses.
var (
	duckdbOpen           func(path string, out *database) int32
	duckdbClose          func(db *database)
	duckdbConnect        func(db database, out *connection) int32
	duckdbDisconnect     func(conn *connection)
	duckdbQuery          func(conn connection, sql string, out *result) int32
	duckdbDestroyResult  func(res *result)
	duckdbColumnCount    func(res *result) uint64
	duckdbColumnName     func(res *result, col uint64) string
	duckdbColumnType     func(res *result, col uint64) uint32
	duckdbRowsChanged    func(res *result) uint64
	duckdbResultError    func(res *result) string
	duckdbLibraryVersion func() string

	// chunked protocol (darwin)
	duckdbFetchChunk         func(res result) dataChunk
	duckdbDataChunkGetSize   func(chunk dataChunk) uint64
	duckdbDataChunkGetVector func(chunk dataChunk, col uint64) vector
	duckdbDestroyDataChunk   func(chunk *dataChunk)
	duckdbVectorGetData      func(vec vector) uintptr
	duckdbVectorGetValidity  func(vec vector) uintptr

	// materialized column protocol (everywhere else)
	duckdbRowCount     func(res *result) uint64
	duckdbColumnData   func(res *result, col uint64) uintptr
	duckdbNullmaskData func(res *result, col uint64) uintptr
)
