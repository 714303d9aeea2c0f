package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"mediareel/internal/catalog"
	"mediareel/internal/logging"
	"mediareel/internal/records"
)

// Job is the fully resolved input handed to a Renderer.
type Job struct {
	Placements []Placement
	Audio      catalog.Asset
	Frame      Frame
	OutputDir  string
}

// Renderer turns a job into exactly one artifact file. The runner treats
// it as opaque; encoding details live with the implementation.
type Renderer interface {
	Render(ctx context.Context, job Job) (Artifact, error)
}

// Runner drives the sequential render loop: peek the last record, plan
// the next windows, render, commit the new record, persist, publish.
// At most one render is in flight at any time.
type Runner struct {
	Store           *records.Store
	Allocator       Allocator
	Renderer        Renderer
	Feed            *Feed
	Logger          *slog.Logger
	OutputDir       string
	StartAudioIndex int
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return logging.NewNop()
}

func (r *Runner) validate() error {
	if r.Store == nil {
		return fmt.Errorf("runner: record store is required")
	}
	if r.Renderer == nil {
		return fmt.Errorf("runner: renderer is required")
	}
	return nil
}

// Once performs a single render cycle and returns the committed record.
// Feasibility errors surface unchanged; a failed render never produces
// a push.
func (r *Runner) Once(ctx context.Context) (records.Record, error) {
	if err := r.validate(); err != nil {
		return records.Record{}, err
	}

	var prev *records.Record
	audioIndex := r.StartAudioIndex
	if last, ok := r.Store.Peek(); ok {
		prev = &last
		audioIndex = last.NextAudioIndex
	}

	plan, err := r.Allocator.PlanNext(prev, audioIndex)
	if err != nil {
		return records.Record{}, err
	}

	lg := r.logger()
	lg.Info("render starting",
		logging.String(logging.FieldEventType, "render_started"),
		logging.Int("audio_index", plan.AudioIndex),
		logging.String("audio", plan.Audio.Path),
		logging.Int("placements", len(plan.Placements)),
		logging.String("images_range", plan.ImagesRange.String()),
		logging.String("videos_range", plan.VideosRange.String()),
	)

	artifact, err := r.Renderer.Render(ctx, Job{
		Placements: plan.Placements,
		Audio:      plan.Audio,
		Frame:      r.Allocator.Frame,
		OutputDir:  r.OutputDir,
	})
	if err != nil {
		return records.Record{}, fmt.Errorf("render: %w", err)
	}

	rec := records.NewRecord(
		filepath.Base(artifact.Path),
		plan.ImagesUsed,
		plan.VideosUsed,
		plan.Audio,
		plan.ImagesRange,
		plan.VideosRange,
		plan.AudioIndex,
	)
	if !artifact.CreatedAt.IsZero() {
		rec.CreatedAt = artifact.CreatedAt.UTC()
	}

	if err := r.Store.Push(rec); err != nil {
		return records.Record{}, err
	}
	if err := r.Store.Save(ctx); err != nil {
		return records.Record{}, err
	}

	if r.Feed != nil {
		r.Feed.Publish(artifact)
	}

	lg.Info("render complete",
		logging.String(logging.FieldEventType, "render_completed"),
		logging.String("artifact", artifact.Path),
		logging.Int("next_audio_index", rec.NextAudioIndex),
	)
	return rec, nil
}

// Run renders continuously until a terminal feasibility error or
// cancellation. Terminal errors end the loop cleanly; render and
// persistence failures propagate. A file lock beside the store keeps
// the store single-writer across processes.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.validate(); err != nil {
		return err
	}

	lock := flock.New(r.Store.Path() + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire store lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another renderer already owns %s", r.Store.Path())
	}
	defer func() { _ = lock.Unlock() }()

	runID := uuid.NewString()
	lg := r.logger().With(logging.String(logging.FieldRunID, runID))

	rendered := 0
	for {
		select {
		case <-ctx.Done():
			lg.Info("run cancelled",
				logging.String(logging.FieldEventType, "run_cancelled"),
				logging.Int("rendered", rendered),
			)
			return ctx.Err()
		default:
		}

		if _, err := r.Once(ctx); err != nil {
			if IsTerminal(err) {
				lg.Info("source material exhausted, stopping",
					logging.String(logging.FieldEventType, "run_completed"),
					logging.Int("rendered", rendered),
					logging.String("cause", err.Error()),
				)
				return nil
			}
			return err
		}
		rendered++
	}
}
