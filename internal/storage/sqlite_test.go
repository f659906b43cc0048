package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/guard-patrol/internal/patrol"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRun(mapID string, visited int) RunRecord {
	return RunRecord{
		MapID:      mapID,
		MapHash:    "hash-" + mapID,
		Width:      10,
		Height:     10,
		Visited:    visited,
		Placements: 6,
		Elapsed:    1500 * time.Microsecond,
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "runs.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(sampleRun("sample", 41))
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id == "" {
		t.Fatal("SaveRun() should assign an ID")
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got.MapID != "sample" || got.Visited != 41 || got.Placements != 6 {
		t.Errorf("unexpected record %+v", got)
	}
	if got.Elapsed != 1500*time.Microsecond {
		t.Errorf("Elapsed = %v, expected 1.5ms", got.Elapsed)
	}
	if got.Looped {
		t.Error("Looped should be false")
	}
}

func TestStoreRecentRunsOrder(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 5; i++ {
		if _, err := store.SaveRun(sampleRun("a", i)); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	store.SaveRun(sampleRun("b", 99))

	runs, err := store.RecentRuns("a", 3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Visited != 5 || runs[1].Visited != 4 || runs[2].Visited != 3 {
		t.Errorf("runs not newest first: %v", runs)
	}

	all, err := store.AllRuns(100)
	if err != nil {
		t.Fatalf("AllRuns() failed: %v", err)
	}
	if len(all) != 6 || all[0].MapID != "b" {
		t.Errorf("AllRuns() = %d runs, first %q", len(all), all[0].MapID)
	}
}

func TestStoreLatestRunAndCount(t *testing.T) {
	store := openTestStore(t)

	latest, err := store.LatestRun("none")
	if err != nil {
		t.Fatalf("LatestRun() failed: %v", err)
	}
	if latest != nil {
		t.Error("expected nil for a map without runs")
	}

	store.SaveRun(sampleRun("m", 1))
	store.SaveRun(sampleRun("m", 2))

	latest, err = store.LatestRun("m")
	if err != nil || latest == nil || latest.Visited != 2 {
		t.Errorf("LatestRun() = %+v, %v", latest, err)
	}

	n, err := store.RunCount("m")
	if err != nil || n != 2 {
		t.Errorf("RunCount() = %d, %v; expected 2", n, err)
	}
}

func TestStoreMapIDsAndDelete(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(sampleRun("zeta", 1))
	store.SaveRun(sampleRun("alpha", 1))
	store.SaveRun(sampleRun("alpha", 2))

	ids, err := store.MapIDs()
	if err != nil {
		t.Fatalf("MapIDs() failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "alpha" || ids[1] != "zeta" {
		t.Errorf("MapIDs() = %v", ids)
	}

	if err := store.DeleteRuns("alpha"); err != nil {
		t.Fatalf("DeleteRuns() failed: %v", err)
	}
	if n, _ := store.RunCount("alpha"); n != 0 {
		t.Errorf("expected 0 alpha runs after delete, got %d", n)
	}
	if n, _ := store.RunCount("zeta"); n != 1 {
		t.Errorf("zeta runs should be untouched, got %d", n)
	}
}

func TestStoreRunByIDMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.RunByID("does-not-exist")
	if !IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestStorePersistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.SaveRun(sampleRun("kept", 7))
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer store.Close()

	if n, _ := store.RunCount("kept"); n != 1 {
		t.Errorf("expected run to persist, got %d", n)
	}
}

func TestNewRunRecord(t *testing.T) {
	res := patrol.Result{Visited: 41, Placements: 6, Looped: false, Elapsed: 2 * time.Millisecond}
	rec := NewRunRecord("sample", "abc", 10, 12, res)

	if rec.ID != "" {
		t.Errorf("expected empty ID before saving, got %q", rec.ID)
	}
	if rec.Height != 10 || rec.Width != 12 {
		t.Errorf("expected 10x12, got %dx%d", rec.Height, rec.Width)
	}
	if rec.Visited != 41 || rec.Placements != 6 || rec.Elapsed != 2*time.Millisecond {
		t.Errorf("result not carried over: %+v", rec)
	}
}
