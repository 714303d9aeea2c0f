package scheduler

import (
	"fmt"
	"math"

	"mediareel/internal/catalog"
	"mediareel/internal/records"
)

// Placement is one timed slot on the output timeline.
type Placement struct {
	Asset        catalog.Asset
	StartSeconds float64
	Duration     float64
	TargetWidth  int
	TargetHeight int
}

// Plan is the fully resolved input for one render: the ordered placements,
// the audio track they are cut to, and the catalog windows they consume.
type Plan struct {
	Placements  []Placement
	Audio       catalog.Asset
	AudioIndex  int
	ImagesUsed  []catalog.Asset
	VideosUsed  []catalog.Asset
	ImagesRange records.Window
	VideosRange records.Window
}

// Allocator computes the next feasible plan from the previous record and
// the catalog. It carries no mutable state; the elapsed-time clock and
// window bounds live inside each PlanNext call.
type Allocator struct {
	Catalog         *catalog.Catalog
	IntervalSeconds float64
	Frame           Frame
}

// PlanNext runs the feasibility checks and, if they pass, walks the image
// then video sequences from the previous record's boundaries until the
// accumulated placements cover the audio duration.
//
// Feasibility failures are terminal: ErrSourceExhausted when the previous
// render consumed nothing, ErrAudioExhausted when audioIndex is out of
// range, ErrInsufficientMedia when the remaining catalog cannot supply
// the minimum image count for the track.
func (a Allocator) PlanNext(prev *records.Record, audioIndex int) (Plan, error) {
	if a.Catalog == nil {
		return Plan{}, fmt.Errorf("allocator: catalog is required")
	}
	if a.IntervalSeconds <= 0 {
		return Plan{}, fmt.Errorf("allocator: interval must be positive, got %v", a.IntervalSeconds)
	}

	if prev != nil && prev.ImagesRange.IsEmpty() && prev.VideosRange.IsEmpty() {
		return Plan{}, fmt.Errorf("%w: previous render consumed no assets", ErrSourceExhausted)
	}

	if audioIndex < 0 || audioIndex >= len(a.Catalog.Audio) {
		return Plan{}, fmt.Errorf("%w: index %d of %d tracks", ErrAudioExhausted, audioIndex, len(a.Catalog.Audio))
	}
	audio := a.Catalog.Audio[audioIndex]
	audioSeconds := audio.DurationSeconds()

	imageStart, videoStart := 0, 0
	if prev != nil {
		// A shrunken catalog clamps the resume points rather than panicking.
		imageStart = min(prev.ImagesRange.End, len(a.Catalog.Images))
		videoStart = min(prev.VideosRange.End, len(a.Catalog.Videos))
	}

	minimumImages := int(math.Floor(audioSeconds / a.IntervalSeconds))
	remaining := a.Catalog.TotalVisual() - (imageStart + videoStart)
	if remaining-minimumImages <= 0 {
		return Plan{}, fmt.Errorf("%w: %d assets remain, need more than %d for %.1fs of audio",
			ErrInsufficientMedia, remaining, minimumImages, audioSeconds)
	}

	plan := Plan{Audio: audio, AudioIndex: audioIndex}
	elapsed := 0.0

	plan.ImagesRange, elapsed = a.walk(&plan, a.Catalog.Images, imageStart, audioSeconds, elapsed, false)
	plan.VideosRange, _ = a.walk(&plan, a.Catalog.Videos, videoStart, audioSeconds, elapsed, true)

	plan.ImagesUsed = a.Catalog.Images[plan.ImagesRange.Start:plan.ImagesRange.End]
	plan.VideosUsed = a.Catalog.Videos[plan.VideosRange.Start:plan.VideosRange.End]
	return plan, nil
}

// walk appends placements from assets[start:] until elapsed covers the
// audio duration. The window end stops at the first index left unused so
// the next render resumes exactly there.
func (a Allocator) walk(plan *Plan, assets []catalog.Asset, start int, audioSeconds, elapsed float64, intrinsic bool) (records.Window, float64) {
	end := start
	for i := start; i < len(assets); i++ {
		if elapsed >= audioSeconds {
			break
		}
		asset := assets[i]
		duration := a.IntervalSeconds
		if intrinsic {
			duration = asset.DurationSeconds()
		}
		width, height := FitFrame(asset.Width, asset.Height, a.Frame)
		plan.Placements = append(plan.Placements, Placement{
			Asset:        asset,
			StartSeconds: elapsed,
			Duration:     duration,
			TargetWidth:  width,
			TargetHeight: height,
		})
		elapsed += duration
		end = i + 1
	}
	return records.Window{Start: start, End: end}, elapsed
}
