package records

import (
	"fmt"
	"time"

	"mediareel/internal/catalog"
)

// Window is a half-open index range [Start, End) over an asset sequence.
type Window struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Count returns the number of indices covered by the window.
func (w Window) Count() int {
	if w.End <= w.Start {
		return 0
	}
	return w.End - w.Start
}

// IsEmpty reports whether the window covers no indices.
func (w Window) IsEmpty() bool {
	return w.Count() == 0
}

func (w Window) String() string {
	return fmt.Sprintf("[%d, %d)", w.Start, w.End)
}

// Record captures the outcome of one completed render. Records are
// immutable once pushed; the ranges of consecutive records tile the
// asset sequences without gaps or overlap.
type Record struct {
	ID             int64           `json:"id"`
	ArtifactKey    string          `json:"artifact_key"`
	CreatedAt      time.Time       `json:"created_at"`
	ImagesUsed     []catalog.Asset `json:"images_used"`
	VideosUsed     []catalog.Asset `json:"videos_used"`
	AudioUsed      catalog.Asset   `json:"audio_used"`
	ImagesRange    Window          `json:"images_range"`
	VideosRange    Window          `json:"videos_range"`
	AudioIndex     int             `json:"audio_index"`
	NextAudioIndex int             `json:"next_audio_index"`
	Completed      bool            `json:"completed"`
	Destinations   []string        `json:"destinations"`
}

// NewRecord builds a Record for a finished render. The next audio index
// always advances by exactly one, independent of how much visual media
// the render consumed.
func NewRecord(artifactKey string, images, videos []catalog.Asset, audio catalog.Asset, imagesRange, videosRange Window, audioIndex int) Record {
	return Record{
		ArtifactKey:    artifactKey,
		CreatedAt:      time.Now().UTC(),
		ImagesUsed:     images,
		VideosUsed:     videos,
		AudioUsed:      audio,
		ImagesRange:    imagesRange,
		VideosRange:    videosRange,
		AudioIndex:     audioIndex,
		NextAudioIndex: audioIndex + 1,
		Completed:      true,
		Destinations:   []string{},
	}
}

// Validate checks the structural invariants of a record.
func (r Record) Validate() error {
	if r.ArtifactKey == "" {
		return fmt.Errorf("record: artifact key is empty")
	}
	if r.ImagesRange.End < r.ImagesRange.Start {
		return fmt.Errorf("record: images range %s is inverted", r.ImagesRange)
	}
	if r.VideosRange.End < r.VideosRange.Start {
		return fmt.Errorf("record: videos range %s is inverted", r.VideosRange)
	}
	if r.NextAudioIndex != r.AudioIndex+1 {
		return fmt.Errorf("record: next audio index %d does not follow audio index %d", r.NextAudioIndex, r.AudioIndex)
	}
	return nil
}
