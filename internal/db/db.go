package db

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Row is one result row, one entry per column. A nil entry is SQL NULL.
type Row []any

// Result is a fully materialized query result.
type Result struct {
	Columns     []string
	Rows        []Row
	RowCount    uint64
	ColumnCount uint64
	RowsChanged uint64
}

var (
	ErrLibraryNotLoaded     = errors.New("duckdb library not loaded")
	ErrConnectionOpenFailed = errors.New("could not open connection")
	ErrConnectionClosed     = errors.New("connection is closed")
	ErrUnsupportedFormat    = errors.New("unsupported buffer format")
	ErrTempFile             = errors.New("temp file error")
	ErrBufferNotFound       = errors.New("buffer not found")
)

// QueryError carries the engine's own diagnostic. The message is passed
// through untouched so callers can parse line/column info out of it.
type QueryError struct {
	Message string
}

func (e *QueryError) Error() string {
	return e.Message
}

// Date is a DATE value, stored as days since 1970-01-01.
type Date int32

func (d Date) Time() time.Time {
	return time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, int(d))
}

func (d Date) String() string {
	return d.Time().Format("2006-01-02")
}

// Time is a TIME value, stored as microseconds since midnight.
type Time int64

func (t Time) String() string {
	micros := int64(t)
	sec, frac := micros/1e6, micros%1e6
	s := fmt.Sprintf("%02d:%02d:%02d", sec/3600, sec/60%60, sec%60)
	if frac != 0 {
		s += strings.TrimRight(fmt.Sprintf(".%06d", frac), "0")
	}
	return s
}

// Interval is an INTERVAL value in the engine's native decomposition.
type Interval struct {
	Months int32
	Days   int32
	Micros int64
}

func (iv Interval) String() string {
	var parts []string
	if iv.Months != 0 {
		parts = append(parts, plural(int64(iv.Months), "month"))
	}
	if iv.Days != 0 {
		parts = append(parts, plural(int64(iv.Days), "day"))
	}
	if iv.Micros != 0 || len(parts) == 0 {
		parts = append(parts, Time(iv.Micros).String())
	}
	return strings.Join(parts, " ")
}

func plural(n int64, unit string) string {
	if n == 1 || n == -1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// Hugeint is a 128-bit signed integer: Upper*2^64 + Lower.
type Hugeint struct {
	Lower uint64
	Upper int64
}

// Int64 reports the value as an int64 when it fits.
func (h Hugeint) Int64() (int64, bool) {
	if h.Upper == int64(h.Lower)>>63 {
		return int64(h.Lower), true
	}
	return 0, false
}

func (h Hugeint) String() string {
	if v, ok := h.Int64(); ok {
		return strconv.FormatInt(v, 10)
	}
	return fmt.Sprintf("%d*2^64 + %d", h.Upper, h.Lower)
}

// UHugeint is a 128-bit unsigned integer: Upper*2^64 + Lower.
type UHugeint struct {
	Lower uint64
	Upper uint64
}

func (h UHugeint) Uint64() (uint64, bool) {
	if h.Upper == 0 {
		return h.Lower, true
	}
	return 0, false
}

func (h UHugeint) String() string {
	if v, ok := h.Uint64(); ok {
		return strconv.FormatUint(v, 10)
	}
	return fmt.Sprintf("%d*2^64 + %d", h.Upper, h.Lower)
}

// Unsupported stands in for values of types the extractor has no decode
// rule for. The query still succeeds; only the cell is opaque.
type Unsupported struct {
	TypeName string
}

func (u Unsupported) String() string {
	return "[" + u.TypeName + "]"
}
