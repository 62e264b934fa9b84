package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenAt(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAddAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	entries := []Entry{
		{SQL: "SELECT 1", RowCount: 1, ExecutedAt: base},
		{SQL: "SELECT 2", RowCount: 2, ExecutedAt: base.Add(time.Minute)},
		{SQL: "SELECT broken", Err: "Parser Error: syntax error", ExecutedAt: base.Add(2 * time.Minute)},
	}
	for _, e := range entries {
		if err := store.Add(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	got, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("Recent returned %d entries, want 3", len(got))
	}

	// newest first
	if got[0].SQL != "SELECT broken" || got[2].SQL != "SELECT 1" {
		t.Errorf("unexpected order: %q … %q", got[0].SQL, got[2].SQL)
	}
	if got[0].Err == "" {
		t.Error("error text not persisted")
	}
	if got[1].RowCount != 2 {
		t.Errorf("RowCount = %d, want 2", got[1].RowCount)
	}
	if got[0].ID == "" {
		t.Error("ID was not assigned")
	}
}

func TestRecentLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 5; i++ {
		e := Entry{SQL: "SELECT 1", ExecutedAt: base.Add(time.Duration(i) * time.Second)}
		if err := store.Add(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	got, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("Recent(2) returned %d entries", len(got))
	}
}
