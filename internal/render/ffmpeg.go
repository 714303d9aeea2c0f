package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"mediareel/internal/catalog"
	"mediareel/internal/logging"
	"mediareel/internal/scheduler"
)

// ErrRender indicates FFmpeg failed to produce the artifact.
var ErrRender = errors.New("render: ffmpeg failed")

// FFmpeg renders jobs by compositing all placements over a black base
// in one ffmpeg invocation. Implements scheduler.Renderer.
type FFmpeg struct {
	Binary           string
	Encoder          string
	FPS              int
	CrossfadeSeconds float64
	WriteTimeline    bool
	Logger           *slog.Logger
}

func (f *FFmpeg) binary() string {
	if f.Binary != "" {
		return f.Binary
	}
	return "ffmpeg"
}

func (f *FFmpeg) encoder() string {
	if f.Encoder != "" {
		return f.Encoder
	}
	return "libx264"
}

func (f *FFmpeg) fps() int {
	if f.FPS > 0 {
		return f.FPS
	}
	return 30
}

func (f *FFmpeg) logger() *slog.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return logging.NewNop()
}

// Render composes the job into <outputDir>/<unix-timestamp>.mp4 and
// returns the artifact path with its creation time.
func (f *FFmpeg) Render(ctx context.Context, job scheduler.Job) (scheduler.Artifact, error) {
	if len(job.Placements) == 0 {
		return scheduler.Artifact{}, fmt.Errorf("%w: no placements to render", ErrRender)
	}
	if job.Audio.Path == "" {
		return scheduler.Artifact{}, fmt.Errorf("%w: no audio track", ErrRender)
	}
	if err := os.MkdirAll(job.OutputDir, 0o755); err != nil {
		return scheduler.Artifact{}, fmt.Errorf("%w: create output directory: %v", ErrRender, err)
	}

	outputPath := filepath.Join(job.OutputDir, strconv.FormatInt(time.Now().Unix(), 10)+".mp4")
	args := f.buildArgs(job, outputPath)

	lg := f.logger()
	lg.Debug("invoking ffmpeg",
		logging.String("binary", f.binary()),
		logging.Int("inputs", len(job.Placements)+1),
		logging.String("output", outputPath),
	)

	cmd := exec.CommandContext(ctx, f.binary(), args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return scheduler.Artifact{}, fmt.Errorf("%w: %v: %s", ErrRender, err, tail(string(out), 512))
	}

	createdAt := time.Now().UTC()
	if info, err := os.Stat(outputPath); err == nil {
		createdAt = info.ModTime().UTC()
	}

	if f.WriteTimeline {
		if err := WriteTimeline(timelinePath(outputPath), NewTimeline(outputPath, job, f.fps())); err != nil {
			lg.Warn("timeline manifest not written",
				logging.String("artifact", outputPath),
				logging.Error(err),
			)
		}
	}

	return scheduler.Artifact{Path: outputPath, CreatedAt: createdAt}, nil
}

func (f *FFmpeg) buildArgs(job scheduler.Job, outputPath string) []string {
	args := []string{"-y", "-hide_banner", "-loglevel", "error"}

	for _, p := range job.Placements {
		if p.Asset.Kind == catalog.KindImage {
			args = append(args, "-loop", "1", "-t", formatSeconds(p.Duration), "-i", p.Asset.Path)
		} else {
			args = append(args, "-i", p.Asset.Path)
		}
	}
	args = append(args, "-i", job.Audio.Path)

	graph := BuildFilterGraph(job, f.fps(), f.CrossfadeSeconds)
	args = append(args,
		"-filter_complex", graph.Script,
		"-map", graph.VideoOut,
		"-map", graph.AudioOut,
		"-c:v", f.encoder(),
		"-pix_fmt", "yuv420p",
	)
	if f.encoder() == "libx264" {
		args = append(args, "-crf", "23", "-preset", "medium")
	}
	args = append(args,
		"-r", strconv.Itoa(f.fps()),
		"-t", formatSeconds(graph.TotalSeconds),
		outputPath,
	)
	return args
}

func timelinePath(artifactPath string) string {
	return strings.TrimSuffix(artifactPath, filepath.Ext(artifactPath)) + ".timeline.yaml"
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
