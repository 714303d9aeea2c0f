package preflight

import (
	"context"
	"fmt"

	"mediareel/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Source directory", cfg.Paths.SourceDir),
		CheckBinary("FFmpeg", cfg.Render.FFmpegBinary, "required for rendering"),
		CheckBinary("FFprobe", cfg.Catalog.FFprobeBinary, "required for media inspection"),
	}
	if cfg.Workflow.MinFreeGiB > 0 {
		results = append(results, CheckDiskSpace(ctx, cfg.Paths.SourceDir, float64(cfg.Workflow.MinFreeGiB)))
	}
	return results
}

// Failed collects the failing results, or nil when everything passed.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}

// FirstError converts the failing results into one error, or nil.
func FirstError(results []Result) error {
	failed := Failed(results)
	if len(failed) == 0 {
		return nil
	}
	return fmt.Errorf("preflight: %s: %s", failed[0].Name, failed[0].Detail)
}
