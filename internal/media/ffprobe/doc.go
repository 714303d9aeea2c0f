// Package ffprobe shells out to ffprobe and decodes the subset of its JSON
// output the catalog needs: container duration, pixel dimensions, and stream
// presence. Images are probed the same way as videos; ffprobe reports their
// dimensions through a single video stream.
package ffprobe
