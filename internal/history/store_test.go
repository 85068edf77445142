// # internal/history/store_test.go
package history

import (
	"path/filepath"
	"testing"
	"time"
)

func TestAppendAndRecent(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	first, err := store.Append(Snapshot{
		Timestamp:         time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
		FileCount:         3,
		SymbolCount:       42,
		RelationshipCount: 17,
		ErrorCount:        1,
		Duration:          250 * time.Millisecond,
	})
	if err != nil {
		t.Fatal(err)
	}
	if first == "" {
		t.Fatal("expected generated run id")
	}

	second, err := store.Append(Snapshot{
		Timestamp:   time.Date(2026, 1, 1, 11, 0, 0, 0, time.UTC),
		FileCount:   4,
		SymbolCount: 50,
	})
	if err != nil {
		t.Fatal(err)
	}

	snaps, err := store.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 2 {
		t.Fatalf("Recent = %d snapshots, want 2", len(snaps))
	}
	if snaps[0].RunID != second || snaps[1].RunID != first {
		t.Fatalf("order = %s, %s", snaps[0].RunID, snaps[1].RunID)
	}
	if snaps[1].SymbolCount != 42 || snaps[1].Duration != 250*time.Millisecond {
		t.Fatalf("roundtrip = %+v", snaps[1])
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestSchemaIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	store.Close()

	// Reopening must not re-run migrations destructively.
	store, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	if _, err := store.Append(Snapshot{}); err != nil {
		t.Fatal(err)
	}
}
