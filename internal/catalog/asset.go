package catalog

import (
	"strings"
	"time"
)

// Kind classifies an asset by media type.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
)

// ParseKind converts a string into a known Kind.
func ParseKind(value string) (Kind, bool) {
	normalized := Kind(strings.ToLower(strings.TrimSpace(value)))
	switch normalized {
	case KindImage, KindVideo, KindAudio:
		return normalized, true
	}
	return "", false
}

// Asset describes one source media file. Immutable once produced by Scan.
type Asset struct {
	Path       string    `json:"path"`
	Kind       Kind      `json:"kind"`
	DurationMS float64   `json:"duration_ms,omitempty"`
	Width      int       `json:"width,omitempty"`
	Height     int       `json:"height,omitempty"`
	HasAudio   bool      `json:"has_audio,omitempty"`
	ModTime    time.Time `json:"mod_time"`
	SizeBytes  int64     `json:"size_bytes"`
}

// DurationSeconds returns the asset duration in seconds.
func (a Asset) DurationSeconds() float64 {
	return a.DurationMS / 1000
}

// Catalog holds the ordered media sequences for a run.
type Catalog struct {
	Images []Asset
	Videos []Asset
	Audio  []Asset
}

// TotalVisual returns the combined number of image and video assets.
func (c *Catalog) TotalVisual() int {
	if c == nil {
		return 0
	}
	return len(c.Images) + len(c.Videos)
}

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".bmp":  {},
	".gif":  {},
	".webp": {},
	".tiff": {},
}

var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".mov":  {},
	".mkv":  {},
	".avi":  {},
	".webm": {},
	".m4v":  {},
}

var audioExtensions = map[string]struct{}{
	".mp3":  {},
	".wav":  {},
	".flac": {},
	".m4a":  {},
	".ogg":  {},
	".aac":  {},
}

// KindForPath classifies a file path by extension.
func KindForPath(path string) (Kind, bool) {
	ext := strings.ToLower(extOf(path))
	if _, ok := imageExtensions[ext]; ok {
		return KindImage, true
	}
	if _, ok := videoExtensions[ext]; ok {
		return KindVideo, true
	}
	if _, ok := audioExtensions[ext]; ok {
		return KindAudio, true
	}
	return "", false
}

func extOf(path string) string {
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 {
		return ""
	}
	return path[idx:]
}
