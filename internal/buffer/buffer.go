package buffer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bgunnarsson/qbuf/internal/db"
)

// Format is a detected buffer content format.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatJSON    Format = "json"
	FormatJSONL   Format = "jsonl"
	FormatUnknown Format = ""
)

// Info is an immutable snapshot of one queryable buffer. It is taken once
// per query and discarded when the call finishes.
type Info struct {
	Number  int
	Name    string
	Format  Format
	Content string
	Size    int
}

// New snapshots a buffer, detecting its format from name and content.
func New(number int, name, content string) Info {
	return Info{
		Number:  number,
		Name:    name,
		Format:  Detect(name, content),
		Content: content,
		Size:    len(content),
	}
}

// Detect picks a format from the buffer name's extension, falling back to
// sniffing the content.
func Detect(name, content string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV
	case ".json":
		return FormatJSON
	case ".jsonl", ".ndjson":
		return FormatJSONL
	}
	return sniff(content)
}

func sniff(content string) Format {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return FormatUnknown
	}
	switch trimmed[0] {
	case '[':
		return FormatJSON
	case '{':
		if looksLineDelimited(trimmed) {
			return FormatJSONL
		}
		return FormatJSON
	}
	return FormatCSV
}

// looksLineDelimited treats content as JSONL when at least two lines each
// hold their own object.
func looksLineDelimited(s string) bool {
	lines := strings.Split(s, "\n")
	objects := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "{") || !strings.HasSuffix(line, "}") {
			return false
		}
		objects++
	}
	return objects >= 2
}

// Registry tracks the buffers available to one session, in load order.
type Registry struct {
	bufs    []Info
	current int
}

func NewRegistry() *Registry {
	return &Registry{current: -1}
}

// Add registers a buffer. The first one added becomes the current buffer.
func (r *Registry) Add(info Info) {
	r.bufs = append(r.bufs, info)
	if r.current < 0 {
		r.current = 0
	}
}

// All returns the buffers in load order.
func (r *Registry) All() []Info {
	return r.bufs
}

// Current returns the active buffer.
func (r *Registry) Current() (Info, error) {
	if r.current < 0 || r.current >= len(r.bufs) {
		return Info{}, fmt.Errorf("%w: no current buffer", db.ErrBufferNotFound)
	}
	return r.bufs[r.current], nil
}

// SetCurrent switches the active buffer by number.
func (r *Registry) SetCurrent(number int) error {
	for i, b := range r.bufs {
		if b.Number == number {
			r.current = i
			return nil
		}
	}
	return fmt.Errorf("%w: buffer %d", db.ErrBufferNotFound, number)
}

// ByNumber resolves a buffer by its number.
func (r *Registry) ByNumber(number int) (Info, error) {
	for _, b := range r.bufs {
		if b.Number == number {
			return b, nil
		}
	}
	return Info{}, fmt.Errorf("%w: buffer %d", db.ErrBufferNotFound, number)
}

// ByName resolves a buffer by exact name, then by base name.
func (r *Registry) ByName(name string) (Info, error) {
	for _, b := range r.bufs {
		if b.Name == name {
			return b, nil
		}
	}
	for _, b := range r.bufs {
		if filepath.Base(b.Name) == name {
			return b, nil
		}
	}
	return Info{}, fmt.Errorf("%w: %q", db.ErrBufferNotFound, name)
}
