package duckdb

import (
	"context"
	"time"
	"unsafe"

	"github.com/bgunnarsson/qbuf/internal/db"
)

// Query executes sql and materializes the whole result row by row.
//
// The ctx parameter keeps the call shape uniform with the rest of the
// codebase; the native call itself is not interruptible, so a running
// query ignores cancellation.
func (c *Conn) Query(ctx context.Context, sql string) (*db.Result, error) {
	if c.closed {
		return nil, db.ErrConnectionClosed
	}

	var res result
	if duckdbQuery(c.session, sql, &res) == stateError {
		msg := duckdbResultError(&res)
		duckdbDestroyResult(&res)
		return nil, &db.QueryError{Message: msg}
	}
	defer duckdbDestroyResult(&res)

	colCount := duckdbColumnCount(&res)
	out := &db.Result{
		ColumnCount: colCount,
		RowsChanged: duckdbRowsChanged(&res),
		Columns:     make([]string, colCount),
	}

	// Column metadata is fixed for the whole result; read it once.
	types := make([]uint32, colCount)
	for i := uint64(0); i < colCount; i++ {
		out.Columns[i] = duckdbColumnName(&res, i)
		types[i] = duckdbColumnType(&res, i)
	}

	if chunkedFetch {
		// Chunks stream until the engine hands back a null chunk.
		for {
			chunk := duckdbFetchChunk(res)
			if chunk == 0 {
				break
			}
			appendChunkRows(out, chunk, types)
			duckdbDestroyDataChunk(&chunk)
		}
	} else {
		appendColumnRows(out, &res, types)
	}

	out.RowCount = uint64(len(out.Rows))
	return out, nil
}

// colView is one column's worth of result memory. Chunked results carry
// vector data plus a validity bitmap; materialized results carry the
// engine's legacy column arrays plus a per-row bool nullmask, with
// strings stored as NUL-terminated C string pointers instead of
// duckdb_string_t descriptors.
type colView struct {
	data     uintptr
	validity uintptr // bitmap, chunked protocol
	nullmask uintptr // bool per row, materialized protocol
	typ      uint32
	cstrings bool
}

func appendChunkRows(out *db.Result, chunk dataChunk, types []uint32) {
	n := duckdbDataChunkGetSize(chunk)

	cols := make([]colView, len(types))
	for i := range types {
		vec := duckdbDataChunkGetVector(chunk, uint64(i))
		cols[i] = colView{
			data:     duckdbVectorGetData(vec),
			validity: duckdbVectorGetValidity(vec),
			typ:      types[i],
		}
	}

	appendRows(out, cols, n)
}

func appendColumnRows(out *db.Result, res *result, types []uint32) {
	n := duckdbRowCount(res)

	cols := make([]colView, len(types))
	for i := range types {
		cols[i] = colView{
			data:     duckdbColumnData(res, uint64(i)),
			nullmask: duckdbNullmaskData(res, uint64(i)),
			typ:      types[i],
			cstrings: true,
		}
	}

	appendRows(out, cols, n)
}

func appendRows(out *db.Result, cols []colView, n uint64) {
	for r := uint64(0); r < n; r++ {
		row := make(db.Row, len(cols))
		for i, cv := range cols {
			row[i] = cv.value(r)
		}
		out.Rows = append(out.Rows, row)
	}
}

// null reports whether the row is marked invalid, consulting whichever
// mask this column carries. No mask at all means every row is valid.
func (v colView) null(row uint64) bool {
	if v.nullmask != 0 {
		return *(*bool)(unsafe.Pointer(v.nullmask + uintptr(row)))
	}
	if v.validity == 0 {
		return false
	}
	word := *(*uint64)(unsafe.Pointer(v.validity + uintptr(row/64)*8))
	return word&(1<<(row%64)) == 0
}

// value decodes one cell. The null check runs first and short-circuits
// the type decode regardless of the bytes underneath.
func (v colView) value(row uint64) any {
	if v.null(row) {
		return nil
	}
	if v.cstrings && v.typ == typeVarchar {
		p := *(*uintptr)(at(v.data, row, unsafe.Sizeof(uintptr(0))))
		return goString(p)
	}
	return decodeValue(v.typ, v.data, row)
}

// goString copies a NUL-terminated C string.
func goString(p uintptr) string {
	if p == 0 {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Pointer(p + uintptr(n))) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(unsafe.Pointer(p)), n))
}

// at computes the address of one row's slot in a vector. The memory is
// engine-owned; the arithmetic never touches Go-managed pointers.
func at(base uintptr, row uint64, size uintptr) unsafe.Pointer {
	return unsafe.Pointer(base + uintptr(row)*size)
}

func decodeValue(typ uint32, base uintptr, row uint64) any {
	switch typ {
	case typeBoolean:
		return *(*bool)(at(base, row, 1))
	case typeTinyint:
		return *(*int8)(at(base, row, 1))
	case typeSmallint:
		return *(*int16)(at(base, row, 2))
	case typeInteger:
		return *(*int32)(at(base, row, 4))
	case typeBigint:
		return *(*int64)(at(base, row, 8))
	case typeUTinyint:
		return *(*uint8)(at(base, row, 1))
	case typeUSmallint:
		return *(*uint16)(at(base, row, 2))
	case typeUInteger:
		return *(*uint32)(at(base, row, 4))
	case typeUBigint:
		return *(*uint64)(at(base, row, 8))
	case typeFloat:
		return *(*float32)(at(base, row, 4))
	case typeDouble:
		return *(*float64)(at(base, row, 8))
	case typeVarchar:
		s := (*stringT)(at(base, row, 16))
		return string(s.bytes())
	case typeDate:
		return db.Date(*(*int32)(at(base, row, 4)))
	case typeTime:
		return db.Time(*(*int64)(at(base, row, 8)))
	case typeTimestamp:
		us := *(*int64)(at(base, row, 8))
		return time.UnixMicro(us).UTC()
	case typeInterval:
		iv := *(*interval)(at(base, row, 16))
		return db.Interval{Months: iv.months, Days: iv.days, Micros: iv.micros}
	case typeHugeint:
		h := *(*hugeint)(at(base, row, 16))
		return db.Hugeint{Lower: h.lower, Upper: h.upper}
	case typeUHugeint:
		h := *(*uhugeint)(at(base, row, 16))
		return db.UHugeint{Lower: h.lower, Upper: h.upper}
	default:
		return db.Unsupported{TypeName: typeName(typ)}
	}
}
