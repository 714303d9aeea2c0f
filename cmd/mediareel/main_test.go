package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mediareel/internal/catalog"
	"mediareel/internal/media/ffprobe"
	"mediareel/internal/records"
	"mediareel/internal/testsupport"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("output missing %q:\n%s", needle, haystack)
	}
}

func writeTestConfig(t *testing.T, sourceDir string) string {
	t.Helper()

	base := t.TempDir()
	content := fmt.Sprintf(`[paths]
source_dir = %q
store_file = %q
log_dir = %q
`, sourceDir, filepath.Join(base, "records.db"), filepath.Join(base, "logs"))

	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigInitAndValidate(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, _, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("second init without --overwrite should fail")
	}
	if _, _, err := runCLI(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("init with --overwrite: %v", err)
	}

	out, _, err = runCLI(t, "config", "validate", "--config", target)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
}

func TestScanCommandListsCatalog(t *testing.T) {
	restore := catalog.SetProbeForTests(func(_ context.Context, _ string, path string) (ffprobe.Result, error) {
		switch filepath.Ext(path) {
		case ".jpg":
			return ffprobe.Result{Streams: []ffprobe.Stream{{CodecType: "video", Width: 4000, Height: 3000}}}, nil
		case ".mp3":
			return ffprobe.Result{Format: ffprobe.Format{Duration: "20.0"}}, nil
		default:
			return ffprobe.Result{}, fmt.Errorf("unexpected probe: %s", path)
		}
	})
	defer restore()

	source := t.TempDir()
	stamp := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	testsupport.WriteMediaFile(t, filepath.Join(source, "a.jpg"), 64, stamp)
	testsupport.WriteMediaFile(t, filepath.Join(source, "b.jpg"), 64, stamp.Add(time.Minute))
	testsupport.WriteMediaFile(t, filepath.Join(source, "track.mp3"), 64, stamp)

	cfgPath := writeTestConfig(t, source)
	out, _, err := runCLI(t, "scan", "--config", cfgPath)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, "a.jpg")
	requireContains(t, out, "2 images, 0 videos, 1 audio tracks")
}

func TestHistoryCommandShowsResumePoint(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cat := testsupport.ImageCatalog(6, 20000)

	store := testsupport.MustOpenStore(t, cfg)
	rec := records.NewRecord("1700000000.mp4", cat.Images[:3], nil, cat.Audio[0],
		records.Window{Start: 0, End: 3}, records.Window{}, 0)
	if err := store.Push(rec); err != nil {
		t.Fatalf("push: %v", err)
	}
	if err := store.Save(context.Background()); err != nil {
		t.Fatalf("save: %v", err)
	}

	content := fmt.Sprintf(`[paths]
source_dir = %q
store_file = %q
log_dir = %q
`, cfg.Paths.SourceDir, cfg.Paths.StoreFile, cfg.Paths.LogDir)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, _, err := runCLI(t, "history", "--config", cfgPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "1700000000.mp4")
	requireContains(t, out, "[0, 3)")
	requireContains(t, out, "Next render resumes at images 3, videos 0, audio track 1")
}

func TestHistoryCommandEmptyStore(t *testing.T) {
	cfgPath := writeTestConfig(t, t.TempDir())

	out, _, err := runCLI(t, "history", "--config", cfgPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No renders recorded yet")
}

func TestScanRejectsUnknownKind(t *testing.T) {
	cfgPath := writeTestConfig(t, t.TempDir())

	if _, _, err := runCLI(t, "scan", "--config", cfgPath, "--kind", "hologram"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
