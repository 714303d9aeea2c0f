package main

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"mediareel/internal/catalog"
	"mediareel/internal/config"
	"mediareel/internal/logging"
	"mediareel/internal/preflight"
	"mediareel/internal/records"
	"mediareel/internal/render"
	"mediareel/internal/scheduler"
)

type renderFlags struct {
	source        string
	audioDir      string
	sortKey       string
	sortDirection string
	interval      float64
	audioIndex    int
	store         string
	noStoreLoad   bool
	width         int
	height        int
	continuous    bool
}

func newRenderCommand(cmdCtx *commandContext) *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the next slideshow video from unconsumed media",
		Long: `Render selects the next unconsumed window of images and videos, cuts
it to the next audio track, and writes one video file to the output
directory. The outcome is recorded so a later run resumes where this
one stopped. With --continuous, rendering repeats until the source
material runs out.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyRenderFlags(cfg, cmd, &flags); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runRender(ctx, cmd, cfg, flags.continuous, flags.noStoreLoad)
		},
	}

	cmd.Flags().StringVarP(&flags.source, "source", "s", "", "Source media directory (overrides config)")
	cmd.Flags().StringVar(&flags.audioDir, "audio-dir", "", "Restrict audio search to this folder")
	cmd.Flags().StringVar(&flags.sortKey, "sort-key", "", "Catalog sort key: name, modtime, or size")
	cmd.Flags().StringVar(&flags.sortDirection, "sort-direction", "", "Catalog sort direction: asc or desc")
	cmd.Flags().Float64Var(&flags.interval, "interval", 0, "Seconds each image is displayed")
	cmd.Flags().IntVar(&flags.audioIndex, "audio-index", -1, "Audio track index to start from when the store is empty")
	cmd.Flags().StringVar(&flags.store, "store", "", "Record store file path (overrides config)")
	cmd.Flags().BoolVar(&flags.noStoreLoad, "no-store-load", false, "Start with an empty history instead of loading the store file")
	cmd.Flags().IntVar(&flags.width, "width", 0, "Output frame width")
	cmd.Flags().IntVar(&flags.height, "height", 0, "Output frame height")
	cmd.Flags().BoolVar(&flags.continuous, "continuous", false, "Keep rendering until the source material is exhausted")

	return cmd
}

func applyRenderFlags(cfg *config.Config, cmd *cobra.Command, flags *renderFlags) error {
	if flags.source != "" {
		expanded, err := config.ExpandPath(flags.source)
		if err != nil {
			return err
		}
		cfg.Paths.SourceDir = expanded
		cfg.Paths.OutputDir = filepath.Join(expanded, "output")
	}
	if flags.audioDir != "" {
		expanded, err := config.ExpandPath(flags.audioDir)
		if err != nil {
			return err
		}
		cfg.Catalog.AudioDir = expanded
	}
	if flags.sortKey != "" {
		cfg.Catalog.SortKey = strings.ToLower(flags.sortKey)
	}
	if flags.sortDirection != "" {
		cfg.Catalog.SortDirection = strings.ToLower(flags.sortDirection)
	}
	if cmd.Flags().Changed("interval") {
		cfg.Render.IntervalSeconds = flags.interval
	}
	if cmd.Flags().Changed("audio-index") {
		cfg.Render.StartAudioIndex = flags.audioIndex
	}
	if flags.store != "" {
		expanded, err := config.ExpandPath(flags.store)
		if err != nil {
			return err
		}
		cfg.Paths.StoreFile = expanded
	}
	if cmd.Flags().Changed("width") {
		cfg.Render.FrameWidth = flags.width
	}
	if cmd.Flags().Changed("height") {
		cfg.Render.FrameHeight = flags.height
	}
	return cfg.Validate()
}

func runRender(ctx context.Context, cmd *cobra.Command, cfg *config.Config, continuous, noStoreLoad bool) error {
	if results := preflight.RunAll(ctx, cfg); preflight.FirstError(results) != nil {
		for _, r := range preflight.Failed(results) {
			fmt.Fprintf(cmd.ErrOrStderr(), "preflight failed: %s: %s\n", r.Name, r.Detail)
		}
		return preflight.FirstError(results)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	logPath := filepath.Join(cfg.Paths.LogDir, fmt.Sprintf("mediareel-%s.log", time.Now().UTC().Format("20060102T150405Z")))
	logger, err := logging.New(logging.Options{
		Level:            cfg.Logging.Level,
		Format:           cfg.Logging.Format,
		OutputPaths:      []string{"stdout", logPath},
		ErrorOutputPaths: []string{"stderr", logPath},
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	cat, err := catalog.Scan(ctx, catalog.Options{
		Dir:           cfg.Paths.SourceDir,
		AudioDir:      cfg.Catalog.AudioDir,
		SortKey:       cfg.Catalog.SortKey,
		SortDirection: cfg.Catalog.SortDirection,
		FFprobeBinary: cfg.Catalog.FFprobeBinary,
		Workers:       cfg.Catalog.ProbeWorkers,
		Logger:        logging.WithComponent(logger, "catalog"),
	})
	if err != nil {
		return fmt.Errorf("scan source: %w", err)
	}

	store, err := records.Open(cfg.Paths.StoreFile)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	if !noStoreLoad {
		if err := store.Load(ctx); err != nil {
			return err
		}
	}

	runner := &scheduler.Runner{
		Store: store,
		Allocator: scheduler.Allocator{
			Catalog:         cat,
			IntervalSeconds: cfg.Render.IntervalSeconds,
			Frame:           scheduler.Frame{Width: cfg.Render.FrameWidth, Height: cfg.Render.FrameHeight},
		},
		Renderer: &render.FFmpeg{
			Binary:           cfg.Render.FFmpegBinary,
			Encoder:          cfg.Render.VideoEncoder,
			FPS:              cfg.Render.FPS,
			CrossfadeSeconds: cfg.Render.CrossfadeSeconds,
			WriteTimeline:    cfg.Render.WriteTimeline,
			Logger:           logging.WithComponent(logger, "render"),
		},
		Feed:            scheduler.NewFeed(),
		Logger:          logging.WithComponent(logger, "scheduler"),
		OutputDir:       cfg.Paths.OutputDir,
		StartAudioIndex: cfg.Render.StartAudioIndex,
	}

	if !continuous {
		rec, err := runner.Once(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s\n", filepath.Join(cfg.Paths.OutputDir, rec.ArtifactKey))
		return nil
	}

	feedCtx, stopFeed := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			artifact, err := runner.Feed.Next(feedCtx)
			if err != nil {
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s\n", artifact.Path)
		}
	}()

	err = runner.Run(ctx)
	stopFeed()
	<-done
	for runner.Feed.Len() > 0 {
		if artifact, ferr := runner.Feed.Next(context.Background()); ferr == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s\n", artifact.Path)
		}
	}
	return err
}
