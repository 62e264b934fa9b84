// Package rewrite expands symbolic buffer references inside SQL text into
// materialized relation names. It is a macro pass over the raw query
// string, kept separate so the pattern rules could later be swapped for a
// real tokenizer without touching execution.
package rewrite

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	// Explicit forms: buffer('name'), buffer("name"), buffer(N).
	refPattern = regexp.MustCompile(`\bbuffer\s*\(\s*(?:'([^']*)'|"([^"]*)"|(\d+))\s*\)`)
	// Bare keyword, whole-word: never matches inside identifiers such as
	// `buffers` or `my_buffer`.
	barePattern = regexp.MustCompile(`\bbuffer\b`)

	nonIdent = regexp.MustCompile(`[^a-z0-9_]+`)
)

// Ref is one buffer reference found in a query.
type Ref struct {
	Name     string
	Number   int
	Numeric  bool
	Implicit bool
}

// Key is a stable identity for deduplication and relation mapping.
func (r Ref) Key() string {
	switch {
	case r.Implicit:
		return "@current"
	case r.Numeric:
		return "#" + strconv.Itoa(r.Number)
	default:
		return "'" + r.Name
	}
}

// ExtractRefs returns the buffer references in sql, unique, in first-seen
// order. When no explicit form appears but the bare keyword does, the
// current buffer is the sole implicit reference.
func ExtractRefs(sql string) []Ref {
	var refs []Ref
	seen := make(map[string]bool)

	for _, m := range refPattern.FindAllStringSubmatch(sql, -1) {
		r := refFromMatch(m)
		if k := r.Key(); !seen[k] {
			seen[k] = true
			refs = append(refs, r)
		}
	}

	if len(refs) == 0 && barePattern.MatchString(sql) {
		refs = append(refs, Ref{Implicit: true})
	}
	return refs
}

func refFromMatch(m []string) Ref {
	if m[3] != "" {
		n, err := strconv.Atoi(m[3])
		if err != nil {
			// A literal too large for int can never name a real buffer.
			// Carry it as a name so resolution fails with the literal in
			// the message instead of a silently clamped number.
			return Ref{Name: m[3]}
		}
		return Ref{Number: n, Numeric: true}
	}
	if strings.Contains(m[0], `"`) {
		return Ref{Name: m[2]}
	}
	return Ref{Name: m[1]}
}

// Rewrite substitutes each buffer reference span with its relation name.
// relations maps Ref.Key() to relation names; spans without a mapping are
// left untouched. When exactly one distinct relation was materialized,
// leftover bare `buffer` keywords resolve to it as well, which covers the
// implicit single-buffer case.
func Rewrite(sql string, relations map[string]string) string {
	out := refPattern.ReplaceAllStringFunc(sql, func(span string) string {
		m := refPattern.FindStringSubmatch(span)
		if rel, ok := relations[refFromMatch(m).Key()]; ok {
			return rel
		}
		return span
	})

	if rel, ok := singleRelation(relations); ok {
		out = barePattern.ReplaceAllString(out, rel)
	}
	return out
}

func singleRelation(relations map[string]string) (string, bool) {
	var rel string
	for _, v := range relations {
		if rel != "" && v != rel {
			return "", false
		}
		rel = v
	}
	return rel, rel != ""
}

// RelationName derives a deterministic relation name from a buffer name,
// skipping names already taken. "orders.csv" becomes "orders"; anything
// that sanitizes to nothing falls back to "buffer"; collisions get a
// numeric suffix in first-seen order.
func RelationName(name string, taken map[string]bool) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = nonIdent.ReplaceAllString(strings.ToLower(base), "_")
	base = strings.Trim(base, "_")
	if base == "" {
		base = "buffer"
	}
	if base[0] >= '0' && base[0] <= '9' {
		base = "b_" + base
	}

	candidate := base
	for i := 2; taken[candidate]; i++ {
		candidate = fmt.Sprintf("%s_%d", base, i)
	}
	return candidate
}
