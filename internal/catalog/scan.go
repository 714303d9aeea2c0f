package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"mediareel/internal/logging"
	"mediareel/internal/media/ffprobe"
)

// probe is the ffprobe function used during scans.
// It is a package-level variable so tests can override it.
var probe = ffprobe.Inspect

// SetProbeForTests overrides the ffprobe runner during tests.
func SetProbeForTests(fn func(context.Context, string, string) (ffprobe.Result, error)) func() {
	previous := probe
	probe = fn
	return func() {
		probe = previous
	}
}

// Options configures a catalog scan.
type Options struct {
	// Dir is the source directory holding images, videos, and audio.
	Dir string
	// AudioDir restricts the audio search to a separate folder. Empty means Dir.
	AudioDir string
	// SortKey is one of name, modtime, or size.
	SortKey string
	// SortDirection is asc or desc.
	SortDirection string
	// Kinds filters the scan. Empty means all kinds.
	Kinds []Kind
	// FFprobeBinary overrides the ffprobe executable name.
	FFprobeBinary string
	// Workers bounds concurrent probes. Values below 1 mean 1.
	Workers int
	// Logger receives per-file diagnostics. Nil discards them.
	Logger *slog.Logger
}

// Scan builds the catalog for a run. The result is deterministic for
// identical filesystem state: files are probed concurrently but ordered by
// the configured sort key afterwards. Files that fail to probe are skipped
// with a warning rather than failing the whole scan.
func Scan(ctx context.Context, opts Options) (*Catalog, error) {
	if opts.Dir == "" {
		return nil, errors.New("catalog scan: source directory is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	wanted := kindSet(opts.Kinds)
	audioDir := opts.AudioDir
	visualOnly := audioDir != ""

	candidates, err := collectFiles(opts.Dir, wanted, visualOnly)
	if err != nil {
		return nil, err
	}
	if audioDir != "" {
		if _, ok := wanted[KindAudio]; ok {
			audioFiles, err := collectAudioFiles(audioDir)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, audioFiles...)
		}
	}

	assets, err := probeAll(ctx, opts, logger, candidates)
	if err != nil {
		return nil, err
	}

	cat := &Catalog{}
	for _, asset := range assets {
		switch asset.Kind {
		case KindImage:
			cat.Images = append(cat.Images, asset)
		case KindVideo:
			cat.Videos = append(cat.Videos, asset)
		case KindAudio:
			cat.Audio = append(cat.Audio, asset)
		}
	}

	sortAssets(cat.Images, opts.SortKey, opts.SortDirection)
	sortAssets(cat.Videos, opts.SortKey, opts.SortDirection)
	sortAssets(cat.Audio, opts.SortKey, opts.SortDirection)

	logger.Debug("catalog scan complete",
		logging.Int("images", len(cat.Images)),
		logging.Int("videos", len(cat.Videos)),
		logging.Int("audio", len(cat.Audio)),
	)
	return cat, nil
}

type candidate struct {
	path string
	kind Kind
	info fs.FileInfo
}

// collectFiles walks dir recursively, skipping the output subdirectory so
// earlier renders never feed back into the catalog.
func collectFiles(dir string, wanted map[Kind]struct{}, skipAudio bool) ([]candidate, error) {
	var found []candidate
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			if path != dir && entry.Name() == "output" {
				return filepath.SkipDir
			}
			return nil
		}
		kind, ok := KindForPath(path)
		if !ok {
			return nil
		}
		if _, ok := wanted[kind]; !ok {
			return nil
		}
		if skipAudio && kind == KindAudio {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		found = append(found, candidate{path: path, kind: kind, info: info})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return found, nil
}

func collectAudioFiles(dir string) ([]candidate, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read audio dir %s: %w", dir, err)
	}
	var found []candidate
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		kind, ok := KindForPath(path)
		if !ok || kind != KindAudio {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		found = append(found, candidate{path: path, kind: KindAudio, info: info})
	}
	return found, nil
}

func probeAll(ctx context.Context, opts Options, logger *slog.Logger, candidates []candidate) ([]Asset, error) {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	var mu sync.Mutex
	assets := make([]Asset, 0, len(candidates))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for _, cand := range candidates {
		group.Go(func() error {
			result, err := probe(groupCtx, opts.FFprobeBinary, cand.path)
			if err != nil {
				if groupCtx.Err() != nil {
					return groupCtx.Err()
				}
				logger.Warn("skipping unprobeable file",
					logging.String("path", cand.path),
					logging.Error(err),
				)
				return nil
			}

			asset := Asset{
				Path:      cand.path,
				Kind:      cand.kind,
				ModTime:   cand.info.ModTime(),
				SizeBytes: cand.info.Size(),
			}
			switch cand.kind {
			case KindImage:
				asset.Width, asset.Height = result.PixelSize()
			case KindVideo:
				asset.Width, asset.Height = result.PixelSize()
				asset.DurationMS = result.DurationSeconds() * 1000
				asset.HasAudio = result.HasAudio()
			case KindAudio:
				asset.DurationMS = result.DurationSeconds() * 1000
			}

			mu.Lock()
			assets = append(assets, asset)
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("probe catalog: %w", err)
	}
	return assets, nil
}

func kindSet(kinds []Kind) map[Kind]struct{} {
	if len(kinds) == 0 {
		kinds = []Kind{KindImage, KindVideo, KindAudio}
	}
	set := make(map[Kind]struct{}, len(kinds))
	for _, kind := range kinds {
		set[kind] = struct{}{}
	}
	return set
}
