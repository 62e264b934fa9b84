package print

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bgunnarsson/qbuf/internal/db"
)

type Options struct {
	MaxWidth int // max width for each column, 0 = no limit
}

func RenderTable(w io.Writer, res *db.Result, opts Options) {
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = 40
	}

	cols := len(res.Columns)
	if cols == 0 {
		fmt.Fprintln(w, "(no columns)")
		return
	}

	// compute widths
	widths := make([]int, cols)
	for i, col := range res.Columns {
		widths[i] = len(col)
	}

	for _, r := range res.Rows {
		for i, cell := range r {
			s := FormatValue(cell)
			if l := len(s); l > widths[i] {
				if l > opts.MaxWidth {
					l = opts.MaxWidth
				}
				widths[i] = l
			}
		}
	}

	// helpers
	sep := func(ch string) string {
		var b strings.Builder
		b.WriteString("+")
		for i := range widths {
			b.WriteString(strings.Repeat(ch, widths[i]+2))
			b.WriteString("+")
		}
		return b.String()
	}

	writeRow := func(cells []string) {
		var b strings.Builder
		b.WriteString("|")
		for i, c := range cells {
			cut := truncate(c, widths[i])
			b.WriteString(" ")
			b.WriteString(padRight(cut, widths[i]))
			b.WriteString(" |")
		}
		fmt.Fprintln(w, b.String())
	}

	// header
	fmt.Fprintln(w, sep("-"))
	writeRow(res.Columns)
	fmt.Fprintln(w, sep("="))

	// data
	for _, r := range res.Rows {
		cells := make([]string, cols)
		for i, cell := range r {
			cells[i] = FormatValue(cell)
		}
		writeRow(cells)
	}
	fmt.Fprintln(w, sep("-"))
	fmt.Fprintf(w, "(%d rows)\n", res.RowCount)
}

// FormatValue renders one cell for display. The tagged value types carry
// their own String; timestamps use the engine's usual layout.
func FormatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	switch t := v.(type) {
	case string:
		return t
	case time.Time:
		return t.Format("2006-01-02 15:04:05.999999")
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	default:
		return fmt.Sprint(t)
	}
}

func padRight(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}

func truncate(s string, w int) string {
	if len(s) <= w {
		return s
	}
	if w <= 1 {
		return s[:w]
	}
	if w == 2 {
		return s[:2]
	}
	return s[:w-3] + "..."
}
