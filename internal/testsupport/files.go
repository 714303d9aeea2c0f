package testsupport

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// WriteMediaFile creates a placeholder media file of the requested size
// with a fixed modification time, so catalog ordering in tests is
// deterministic. A size <= 0 writes a single byte.
func WriteMediaFile(t testing.TB, path string, size int64, modTime time.Time) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}

	const chunkSize = 32 * 1024
	buf := make([]byte, chunkSize)
	for i := range buf {
		buf[i] = 0x42
	}

	remaining := size
	for remaining > 0 {
		toWrite := int64(chunkSize)
		if remaining < toWrite {
			toWrite = remaining
		}
		if _, err := f.Write(buf[:toWrite]); err != nil {
			_ = f.Close()
			t.Fatalf("write %s: %v", path, err)
		}
		remaining -= toWrite
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close %s: %v", path, err)
	}

	if !modTime.IsZero() {
		if err := os.Chtimes(path, modTime, modTime); err != nil {
			t.Fatalf("chtimes %s: %v", path, err)
		}
	}
}
