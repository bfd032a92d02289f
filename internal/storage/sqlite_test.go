package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/replay"
	"github.com/vovakirdan/neon-runner/internal/runner"
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

func testTrace() replay.Trace {
	cfg := config.DefaultRunnerConfig()
	cfg.Physics.InitialSpeed = 6.5
	return replay.Trace{
		Config: cfg,
		Field:  runner.FieldFromConfig(cfg),
		Events: []replay.Event{
			{Kind: replay.KindAdvance, Delta: 16 * time.Millisecond},
			{Kind: replay.KindJump},
			{Kind: replay.KindAdvance, Delta: 17 * time.Millisecond},
			{Kind: replay.KindResize, Field: runner.Field{Width: 640, Height: 240, GroundHeight: 16}},
			{Kind: replay.KindReset},
		},
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if err := store.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	id, err := store.SaveRun(testTrace())
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := store.LoadRun(id); err != nil {
		t.Errorf("LoadRun() after reopen failed: %v", err)
	}
}

func TestStoreSaveLoadRun(t *testing.T) {
	store := openTestStore(t)
	want := testTrace()

	id, err := store.SaveRun(want)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, err := store.LoadRun(id)
	if err != nil {
		t.Fatalf("LoadRun() failed: %v", err)
	}

	if got.Config != want.Config {
		t.Errorf("config mismatch:\ngot  %+v\nwant %+v", got.Config, want.Config)
	}
	if got.Field != want.Field {
		t.Errorf("field = %+v, expected %+v", got.Field, want.Field)
	}
	if len(got.Events) != len(want.Events) {
		t.Fatalf("expected %d events, got %d", len(want.Events), len(got.Events))
	}
	for i := range want.Events {
		if got.Events[i] != want.Events[i] {
			t.Errorf("event %d = %+v, expected %+v", i, got.Events[i], want.Events[i])
		}
	}
}

func TestStoreLoadedRunReplays(t *testing.T) {
	store := openTestStore(t)

	cfg := config.DefaultRunnerConfig()
	rec, err := replay.NewRecorder(cfg, runner.FieldFromConfig(cfg))
	if err != nil {
		t.Fatalf("NewRecorder() failed: %v", err)
	}
	for i := 0; i < 600; i++ {
		if i%80 == 0 {
			rec.Jump()
		}
		rec.Advance(time.Duration(14+i%5) * time.Millisecond)
	}

	id, err := store.SaveRun(rec.Trace())
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	tr, err := store.LoadRun(id)
	if err != nil {
		t.Fatalf("LoadRun() failed: %v", err)
	}

	sim, err := replay.Play(tr)
	if err != nil {
		t.Fatalf("Play() failed: %v", err)
	}
	if !sim.Snapshot().Equal(rec.Sim().Snapshot()) {
		t.Error("stored run does not replay to the recorded state")
	}
}

func TestStoreLoadRunNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.LoadRun(42)
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestStoreListRuns(t *testing.T) {
	store := openTestStore(t)

	tr := testTrace()
	var ids []int64
	for i := 0; i < 3; i++ {
		tr.Events = append(tr.Events, replay.Event{Kind: replay.KindAdvance, Delta: time.Second})
		id, err := store.SaveRun(tr)
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
		ids = append(ids, id)
	}

	runs, err := store.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}

	// Newest first
	for i, r := range runs {
		wantID := ids[len(ids)-1-i]
		if r.ID != wantID {
			t.Errorf("runs[%d].ID = %d, expected %d", i, r.ID, wantID)
		}
	}

	newest := runs[0]
	if newest.EventCount != len(tr.Events) {
		t.Errorf("EventCount = %d, expected %d", newest.EventCount, len(tr.Events))
	}
	if newest.Duration != tr.Duration() {
		t.Errorf("Duration = %v, expected %v", newest.Duration, tr.Duration())
	}
	if newest.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStoreListRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.SaveRun(testTrace()); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.ListRuns(3)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("Expected 3 runs with limit, got %d", len(runs))
	}
}

func TestStoreDeleteRun(t *testing.T) {
	store := openTestStore(t)

	keep, _ := store.SaveRun(testTrace())
	drop, _ := store.SaveRun(testTrace())

	if err := store.DeleteRun(drop); err != nil {
		t.Fatalf("DeleteRun() failed: %v", err)
	}

	if _, err := store.LoadRun(drop); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("deleted run should be gone, got %v", err)
	}
	if _, err := store.LoadRun(keep); err != nil {
		t.Errorf("other runs should not be affected: %v", err)
	}

	if err := store.DeleteRun(drop); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("deleting twice should report ErrRunNotFound, got %v", err)
	}
}

func TestStoreDeleteRemovesEvents(t *testing.T) {
	store := openTestStore(t)

	id, _ := store.SaveRun(testTrace())
	if err := store.DeleteRun(id); err != nil {
		t.Fatalf("DeleteRun() failed: %v", err)
	}

	var n int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM run_events WHERE run_id = ?", id).Scan(&n); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected events to be deleted, %d remain", n)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.neonrun/runs.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".neonrun", "runs.db")); err != nil {
		t.Errorf("database not created under home: %v", err)
	}
}
