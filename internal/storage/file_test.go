package storage

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"verkskra/internal/core"
)

func sampleProjects() []core.Project {
	return []core.Project{
		{
			ID:         "20240115093000-abc123",
			Name:       "Baðherbergi",
			Client:     "Jón",
			HourlyRate: 12000,
			Status:     core.StatusActive,
			CreatedAt:  "2024-01-15T09:30:00Z",
			WorkEntries: []core.WorkEntry{
				{ID: "w1", Date: "2024-01-15", StartTime: "09:00", EndTime: "17:30", Hours: 8.5, Notes: "Flísalögn"},
			},
			Materials: []core.MaterialEntry{
				{ID: "m1", Date: "2024-01-15", Name: "Flísar", Quantity: "10 m2", Amount: 50000},
			},
		},
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "verkefni.json")
	store := NewFile(path)
	ctx := context.Background()

	want := sampleProjects()
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestFileLoadMissing(t *testing.T) {
	store := NewFile(filepath.Join(t.TempDir(), "missing.json"))

	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("missing file must load as empty: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty collection, got %d projects", len(got))
	}
}

func TestFileLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFile(path).Load(context.Background()); err == nil {
		t.Error("expected error for corrupt file")
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	want := sampleProjects()
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Error("round trip mismatch")
	}

	// Mutating the returned slice must not leak into the store
	got[0].Name = "changed"
	again, _ := store.Load(ctx)
	if again[0].Name != "Baðherbergi" {
		t.Error("store state must be isolated from callers")
	}
}
