package render

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"mediareel/internal/scheduler"
)

// Timeline is a human-readable sidecar describing what went into an
// artifact, written next to the output file.
type Timeline struct {
	Artifact string         `yaml:"artifact"`
	Frame    TimelineFrame  `yaml:"frame"`
	FPS      int            `yaml:"fps"`
	Audio    string         `yaml:"audio"`
	Slots    []TimelineSlot `yaml:"slots"`
}

type TimelineFrame struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type TimelineSlot struct {
	Source   string  `yaml:"source"`
	Kind     string  `yaml:"kind"`
	Start    float64 `yaml:"start"`
	Duration float64 `yaml:"duration"`
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
}

// NewTimeline builds the sidecar content for a rendered job.
func NewTimeline(artifactPath string, job scheduler.Job, fps int) Timeline {
	tl := Timeline{
		Artifact: artifactPath,
		Frame:    TimelineFrame{Width: job.Frame.Width, Height: job.Frame.Height},
		FPS:      fps,
		Audio:    job.Audio.Path,
		Slots:    make([]TimelineSlot, 0, len(job.Placements)),
	}
	for _, p := range job.Placements {
		tl.Slots = append(tl.Slots, TimelineSlot{
			Source:   p.Asset.Path,
			Kind:     string(p.Asset.Kind),
			Start:    p.StartSeconds,
			Duration: p.Duration,
			Width:    p.TargetWidth,
			Height:   p.TargetHeight,
		})
	}
	return tl
}

// WriteTimeline marshals the timeline to path.
func WriteTimeline(path string, tl Timeline) error {
	raw, err := yaml.Marshal(tl)
	if err != nil {
		return fmt.Errorf("marshal timeline: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write timeline: %w", err)
	}
	return nil
}

// ReadTimeline loads a timeline sidecar from path.
func ReadTimeline(path string) (Timeline, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Timeline{}, fmt.Errorf("read timeline: %w", err)
	}
	var tl Timeline
	if err := yaml.Unmarshal(raw, &tl); err != nil {
		return Timeline{}, fmt.Errorf("parse timeline: %w", err)
	}
	return tl, nil
}
