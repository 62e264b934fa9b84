package buffer

import (
	"errors"
	"testing"

	"github.com/bgunnarsson/qbuf/internal/db"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Format
	}{
		{"orders.csv", "a,b\n1,2\n", FormatCSV},
		{"orders.CSV", "a,b\n1,2\n", FormatCSV},
		{"data.json", "[]", FormatJSON},
		{"events.jsonl", "{}\n{}\n", FormatJSONL},
		{"events.ndjson", "{}\n{}\n", FormatJSONL},
		// no extension: sniff content
		{"scratch", `[{"a": 1}]`, FormatJSON},
		{"scratch", `{"a": 1}`, FormatJSON},
		{"scratch", "{\"a\": 1}\n{\"a\": 2}\n", FormatJSONL},
		{"scratch", "a,b\n1,2\n", FormatCSV},
		{"scratch", "plain text", FormatCSV},
		{"scratch", "   ", FormatUnknown},
	}

	for _, tt := range tests {
		if got := Detect(tt.name, tt.content); got != tt.want {
			t.Errorf("Detect(%q, %q) = %q, want %q", tt.name, tt.content, got, tt.want)
		}
	}
}

func TestNewSnapshotsContent(t *testing.T) {
	info := New(1, "orders.csv", "a,b\n1,2\n")

	if info.Number != 1 || info.Name != "orders.csv" {
		t.Errorf("unexpected identity: %+v", info)
	}
	if info.Format != FormatCSV {
		t.Errorf("Format = %q, want csv", info.Format)
	}
	if info.Size != len(info.Content) {
		t.Errorf("Size = %d, want %d", info.Size, len(info.Content))
	}
}

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry()
	reg.Add(New(1, "orders.csv", "a\n1\n"))
	reg.Add(New(2, "customers.json", "[]"))

	if cur, err := reg.Current(); err != nil || cur.Name != "orders.csv" {
		t.Fatalf("Current() = %+v, %v; want first buffer", cur, err)
	}

	if err := reg.SetCurrent(2); err != nil {
		t.Fatalf("SetCurrent(2): %v", err)
	}
	if cur, _ := reg.Current(); cur.Name != "customers.json" {
		t.Errorf("Current() after SetCurrent = %q", cur.Name)
	}

	if b, err := reg.ByNumber(1); err != nil || b.Name != "orders.csv" {
		t.Errorf("ByNumber(1) = %+v, %v", b, err)
	}
	if b, err := reg.ByName("customers.json"); err != nil || b.Number != 2 {
		t.Errorf("ByName = %+v, %v", b, err)
	}
}

func TestRegistryNotFound(t *testing.T) {
	reg := NewRegistry()

	if _, err := reg.Current(); !errors.Is(err, db.ErrBufferNotFound) {
		t.Errorf("Current() on empty registry: %v, want ErrBufferNotFound", err)
	}
	if _, err := reg.ByNumber(9); !errors.Is(err, db.ErrBufferNotFound) {
		t.Errorf("ByNumber(9): %v, want ErrBufferNotFound", err)
	}
	if _, err := reg.ByName("nope.csv"); !errors.Is(err, db.ErrBufferNotFound) {
		t.Errorf("ByName: %v, want ErrBufferNotFound", err)
	}
	if err := reg.SetCurrent(1); !errors.Is(err, db.ErrBufferNotFound) {
		t.Errorf("SetCurrent(1): %v, want ErrBufferNotFound", err)
	}
}

func TestRegistryByBaseName(t *testing.T) {
	reg := NewRegistry()
	reg.Add(New(1, "data/orders.csv", "a\n1\n"))

	if b, err := reg.ByName("orders.csv"); err != nil || b.Number != 1 {
		t.Errorf("ByName(base) = %+v, %v", b, err)
	}
}
