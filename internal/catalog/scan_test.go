package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mediareel/internal/media/ffprobe"
)

func stubProbe(t *testing.T) {
	t.Helper()
	restore := SetProbeForTests(func(_ context.Context, _ string, path string) (ffprobe.Result, error) {
		switch {
		case strings.HasSuffix(path, ".jpg"), strings.HasSuffix(path, ".png"):
			return ffprobe.Result{Streams: []ffprobe.Stream{{CodecType: "video", Width: 1600, Height: 900}}}, nil
		case strings.HasSuffix(path, ".mp4"):
			return ffprobe.Result{
				Streams: []ffprobe.Stream{
					{CodecType: "video", Width: 1920, Height: 1080},
					{CodecType: "audio", Channels: 2},
				},
				Format: ffprobe.Format{Duration: "6.500000"},
			}, nil
		case strings.HasSuffix(path, ".mp3"):
			return ffprobe.Result{Format: ffprobe.Format{Duration: "40.000000"}}, nil
		default:
			return ffprobe.Result{}, os.ErrInvalid
		}
	})
	t.Cleanup(restore)
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for i, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
		// Spread modification times so modtime ordering is observable.
		stamp := time.Now().Add(time.Duration(i-len(names)) * time.Minute)
		if err := os.Chtimes(path, stamp, stamp); err != nil {
			t.Fatal(err)
		}
	}
}

func TestScanClassifiesAndProbes(t *testing.T) {
	stubProbe(t)
	dir := t.TempDir()
	writeFiles(t, dir, "a.jpg", "b.mp4", "c.mp3", "notes.txt")

	cat, err := Scan(context.Background(), Options{Dir: dir, SortKey: "name", SortDirection: "asc"})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(cat.Images) != 1 || len(cat.Videos) != 1 || len(cat.Audio) != 1 {
		t.Fatalf("unexpected catalog sizes: %d/%d/%d", len(cat.Images), len(cat.Videos), len(cat.Audio))
	}
	img := cat.Images[0]
	if img.Width != 1600 || img.Height != 900 {
		t.Fatalf("image size not probed: %+v", img)
	}
	vid := cat.Videos[0]
	if vid.DurationMS != 6500 || !vid.HasAudio {
		t.Fatalf("video metadata not probed: %+v", vid)
	}
	aud := cat.Audio[0]
	if aud.DurationMS != 40000 {
		t.Fatalf("audio duration not probed: %+v", aud)
	}
	if aud.DurationSeconds() != 40 {
		t.Fatalf("DurationSeconds = %v, want 40", aud.DurationSeconds())
	}
}

func TestScanSkipsOutputDirectory(t *testing.T) {
	stubProbe(t)
	dir := t.TempDir()
	writeFiles(t, dir, "a.jpg", filepath.Join("output", "1700000000.mp4"))

	cat, err := Scan(context.Background(), Options{Dir: dir, SortKey: "name", SortDirection: "asc"})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(cat.Videos) != 0 {
		t.Fatalf("rendered output should not re-enter the catalog: %+v", cat.Videos)
	}
}

func TestScanAudioDirRestrictsAudioSearch(t *testing.T) {
	stubProbe(t)
	dir := t.TempDir()
	audioDir := t.TempDir()
	writeFiles(t, dir, "a.jpg", "ignored.mp3")
	writeFiles(t, audioDir, "track.mp3")

	cat, err := Scan(context.Background(), Options{Dir: dir, AudioDir: audioDir, SortKey: "name", SortDirection: "asc"})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(cat.Audio) != 1 {
		t.Fatalf("expected exactly one audio asset, got %d", len(cat.Audio))
	}
	if filepath.Base(cat.Audio[0].Path) != "track.mp3" {
		t.Fatalf("audio should come from the audio dir, got %s", cat.Audio[0].Path)
	}
}

func TestScanKindFilter(t *testing.T) {
	stubProbe(t)
	dir := t.TempDir()
	writeFiles(t, dir, "a.jpg", "b.mp4", "c.mp3")

	cat, err := Scan(context.Background(), Options{Dir: dir, Kinds: []Kind{KindImage}, SortKey: "name", SortDirection: "asc"})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(cat.Images) != 1 || len(cat.Videos) != 0 || len(cat.Audio) != 0 {
		t.Fatalf("kind filter ignored: %d/%d/%d", len(cat.Images), len(cat.Videos), len(cat.Audio))
	}
}

func TestScanSkipsUnprobeableFiles(t *testing.T) {
	stubProbe(t)
	dir := t.TempDir()
	// .wav is routed to the stub's error branch.
	writeFiles(t, dir, "a.jpg", "broken.wav")

	cat, err := Scan(context.Background(), Options{Dir: dir, SortKey: "name", SortDirection: "asc"})
	if err != nil {
		t.Fatalf("Scan should tolerate probe failures: %v", err)
	}
	if len(cat.Audio) != 0 {
		t.Fatalf("broken file should be skipped, got %+v", cat.Audio)
	}
	if len(cat.Images) != 1 {
		t.Fatal("healthy files should survive a sibling probe failure")
	}
}

func TestScanRequiresDir(t *testing.T) {
	if _, err := Scan(context.Background(), Options{}); err == nil {
		t.Fatal("expected error when source dir missing")
	}
}
