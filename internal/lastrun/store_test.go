package lastrun

import (
	"context"
	"path/filepath"
	"testing"

	"addaudio/internal/testsupport"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestLoadEmptyStore(t *testing.T) {
	store := openStore(t)

	record, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil record, got %+v", record)
	}
}

func TestSaveAndLoad(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	record := NewRecord("movie.mkv", "commentary.m4a", "out.mkv")
	if record.RunID == "" {
		t.Fatal("NewRecord should assign a run id")
	}
	record.PrimaryStreamsJSON = `[{"index":0}]`
	record.CommandLine = "ffmpeg -i movie.mkv"
	record.Status = StatusSucceeded

	if err := store.Save(ctx, record); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected a record")
	}
	if loaded.RunID != record.RunID || loaded.Status != StatusSucceeded {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
	if loaded.PrimaryStreamsJSON != record.PrimaryStreamsJSON {
		t.Fatalf("streams json mismatch: %q", loaded.PrimaryStreamsJSON)
	}
	if loaded.CreatedAt.IsZero() {
		t.Fatal("created_at not restored")
	}
}

func TestSaveOverwritesPreviousRecord(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first := NewRecord("a.mkv", "a.m4a", "a-out.mkv")
	first.Status = StatusFailed
	first.ErrorMessage = "ffmpeg exploded"
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("save first: %v", err)
	}

	second := NewRecord("b.mkv", "b.m4a", "b-out.mkv")
	second.Status = StatusDeclined
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.RunID != second.RunID {
		t.Fatalf("expected second record, got %+v", loaded)
	}
	if loaded.ErrorMessage != "" {
		t.Fatalf("error message should be cleared, got %q", loaded.ErrorMessage)
	}
}

func TestSaveNilRecord(t *testing.T) {
	store := openStore(t)
	if err := store.Save(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil record")
	}
}

func TestStorePathUnderStateDir(t *testing.T) {
	store := openStore(t)
	if filepath.Base(store.Path()) != "lastrun.db" {
		t.Fatalf("unexpected db path: %s", store.Path())
	}
}
