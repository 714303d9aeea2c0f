// Package render materializes a planned timeline into a single video
// file with FFmpeg. The scheduler hands it resolved placements and one
// audio track; everything about codecs, filter graphs, and container
// format stays inside this package.
package render
