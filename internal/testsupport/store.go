package testsupport

import (
	"fmt"
	"testing"

	"mediareel/internal/catalog"
	"mediareel/internal/config"
	"mediareel/internal/records"
)

// MustOpenStore opens a records.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *records.Store {
	t.Helper()

	store, err := records.Open(cfg.Paths.StoreFile)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// ImageCatalog builds a catalog of n images plus the given audio track
// durations, enough for allocator and runner tests.
func ImageCatalog(n int, audioDurationsMS ...float64) *catalog.Catalog {
	cat := &catalog.Catalog{}
	for i := 0; i < n; i++ {
		cat.Images = append(cat.Images, catalog.Asset{
			Path:   testAssetPath("image", i, ".jpg"),
			Kind:   catalog.KindImage,
			Width:  4000,
			Height: 3000,
		})
	}
	for i, d := range audioDurationsMS {
		cat.Audio = append(cat.Audio, catalog.Asset{
			Path:       testAssetPath("track", i, ".mp3"),
			Kind:       catalog.KindAudio,
			DurationMS: d,
		})
	}
	return cat
}

func testAssetPath(stem string, i int, ext string) string {
	return fmt.Sprintf("/media/%s-%03d%s", stem, i, ext)
}
