package print

import (
	"strings"
	"testing"
	"time"

	"github.com/bgunnarsson/qbuf/internal/db"
)

func TestRenderTable(t *testing.T) {
	res := &db.Result{
		Columns:     []string{"name", "value"},
		Rows:        []db.Row{{"test", int64(123)}, {nil, float64(1.5)}},
		RowCount:    2,
		ColumnCount: 2,
	}

	var sb strings.Builder
	RenderTable(&sb, res, Options{})
	out := sb.String()

	for _, want := range []string{"name", "value", "test", "123", "NULL", "1.5", "(2 rows)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTableNoColumns(t *testing.T) {
	var sb strings.Builder
	RenderTable(&sb, &db.Result{}, Options{})
	if !strings.Contains(sb.String(), "(no columns)") {
		t.Errorf("output = %q", sb.String())
	}
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		in   any
		want string
	}{
		{nil, "NULL"},
		{"plain", "plain"},
		{int64(-7), "-7"},
		{float64(2.5), "2.5"},
		{ts, "2024-03-01 12:30:00"},
		{db.Date(0), "1970-01-01"},
		{db.Hugeint{Lower: 9, Upper: 0}, "9"},
		{db.Unsupported{TypeName: "LIST"}, "[LIST]"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
