// Package catalog discovers the source media inventory for a run.
//
// Scan walks the source directory once, classifies files by extension,
// probes intrinsic metadata through ffprobe, and returns three ordered
// sequences (images, videos, audio). The catalog is read-only for the
// lifetime of the process; window indices held in render records refer to
// positions in these sequences, so ordering must be deterministic for
// identical filesystem state.
package catalog
