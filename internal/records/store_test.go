package records

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"mediareel/internal/catalog"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRecord(artifactKey string, audioIndex int) Record {
	images := []catalog.Asset{
		{Path: "/m/a.jpg", Kind: catalog.KindImage, SizeBytes: 100, ModTime: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)},
		{Path: "/m/b.jpg", Kind: catalog.KindImage, SizeBytes: 200, ModTime: time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)},
	}
	videos := []catalog.Asset{
		{Path: "/m/clip.mp4", Kind: catalog.KindVideo, DurationMS: 4200, Width: 1920, Height: 1080, HasAudio: true},
	}
	audio := catalog.Asset{Path: "/m/track.mp3", Kind: catalog.KindAudio, DurationMS: 21500}
	rec := NewRecord(artifactKey, images, videos, audio, Window{0, 2}, Window{0, 1}, audioIndex)
	rec.Destinations = []string{"local"}
	return rec
}

func TestStoreStartsEmpty(t *testing.T) {
	store := newTestStore(t)

	if got := store.Len(); got != 0 {
		t.Fatalf("Len() = %d, want 0", got)
	}
	if _, ok := store.Peek(); ok {
		t.Fatal("Peek on empty store returned a record")
	}
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load on fresh store: %v", err)
	}
	if got := store.Len(); got != 0 {
		t.Fatalf("Len() after load = %d, want 0", got)
	}
}

func TestStorePeekReturnsMostRecent(t *testing.T) {
	store := newTestStore(t)

	first := sampleRecord("0001.mp4", 0)
	second := sampleRecord("0002.mp4", 1)
	if err := store.Push(first); err != nil {
		t.Fatalf("Push first: %v", err)
	}
	if err := store.Push(second); err != nil {
		t.Fatalf("Push second: %v", err)
	}

	top, ok := store.Peek()
	if !ok {
		t.Fatal("Peek returned no record")
	}
	if top.ArtifactKey != "0002.mp4" {
		t.Fatalf("Peek returned %q, want most recent", top.ArtifactKey)
	}
	if store.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", store.Len())
	}
}

func TestStorePushRejectsInvalidRecord(t *testing.T) {
	store := newTestStore(t)

	bad := sampleRecord("0001.mp4", 0)
	bad.NextAudioIndex = bad.AudioIndex + 3
	if err := store.Push(bad); err == nil {
		t.Fatal("expected push of invalid record to fail")
	}
	if store.Len() != 0 {
		t.Fatalf("Len() = %d after rejected push, want 0", store.Len())
	}
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "records.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	want := []Record{sampleRecord("0001.mp4", 0), sampleRecord("0002.mp4", 1), sampleRecord("0003.mp4", 2)}
	for _, rec := range want {
		if err := store.Push(rec); err != nil {
			t.Fatalf("Push: %v", err)
		}
	}
	if err := store.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()
	if err := reopened.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := reopened.All()
	if len(got) != len(want) {
		t.Fatalf("loaded %d records, want %d", len(got), len(want))
	}
	for i := range want {
		got[i].ID = 0
		expected := want[i]
		expected.CreatedAt = expected.CreatedAt.UTC()
		if !reflect.DeepEqual(got[i], expected) {
			t.Errorf("record %d mismatch:\n got  %+v\n want %+v", i, got[i], expected)
		}
	}

	top, ok := reopened.Peek()
	if !ok || top.ArtifactKey != "0003.mp4" {
		t.Fatalf("Peek after reload = %+v, %v", top, ok)
	}
}

func TestStoreSaveOverwritesPreviousContents(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "records.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Push(sampleRecord("0001.mp4", 0)); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if err := store.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Push(sampleRecord("0002.mp4", 1)); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if err := store.Save(ctx); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	if err := store.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("Len() after reload = %d, want 2", store.Len())
	}
}

func TestStoreAudioIndexAdvancesAcrossRecords(t *testing.T) {
	store := newTestStore(t)

	audioIndex := 0
	for i := 0; i < 4; i++ {
		rec := sampleRecord("artifact.mp4", audioIndex)
		if err := store.Push(rec); err != nil {
			t.Fatalf("Push: %v", err)
		}
		audioIndex = rec.NextAudioIndex
	}

	all := store.All()
	for i := 1; i < len(all); i++ {
		if all[i].AudioIndex != all[i-1].NextAudioIndex {
			t.Fatalf("record %d audio index %d does not resume from %d", i, all[i].AudioIndex, all[i-1].NextAudioIndex)
		}
	}
}

func TestOpenRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.db")
	if err := os.WriteFile(path, []byte("this is not a store file"), 0o644); err != nil {
		t.Fatalf("write garbage: %v", err)
	}

	store, err := Open(path)
	if err == nil {
		_ = store.Close()
		t.Fatal("expected corrupt store error")
	}
	if !errors.Is(err, ErrCorruptStore) {
		t.Fatalf("error = %v, want ErrCorruptStore", err)
	}

	raw, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("reread garbage file: %v", readErr)
	}
	if string(raw) != "this is not a store file" {
		t.Fatal("corrupt file was modified")
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for blank path")
	}
}
