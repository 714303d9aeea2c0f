package catalog

import (
	"path/filepath"
	"sort"
)

// sortAssets orders a sequence in place by the given key and direction.
// Ties fall back to the file name so ordering stays total and stable across
// runs, which the resumable windows depend on.
func sortAssets(assets []Asset, key, direction string) {
	less := lessFunc(key)
	sort.SliceStable(assets, func(i, j int) bool {
		if direction == "desc" {
			i, j = j, i
		}
		return less(assets[i], assets[j])
	})
}

func lessFunc(key string) func(a, b Asset) bool {
	switch key {
	case "size":
		return func(a, b Asset) bool {
			if a.SizeBytes != b.SizeBytes {
				return a.SizeBytes < b.SizeBytes
			}
			return nameLess(a, b)
		}
	case "name":
		return nameLess
	default: // modtime
		return func(a, b Asset) bool {
			if !a.ModTime.Equal(b.ModTime) {
				return a.ModTime.Before(b.ModTime)
			}
			return nameLess(a, b)
		}
	}
}

func nameLess(a, b Asset) bool {
	return filepath.Base(a.Path) < filepath.Base(b.Path)
}
