package config

const (
	defaultStoreFile        = "~/.local/share/mediareel/records.db"
	defaultLogDir           = "~/.local/share/mediareel/logs"
	defaultSortKey          = "modtime"
	defaultSortDirection    = "asc"
	defaultProbeWorkers     = 4
	defaultFFprobeBinary    = "ffprobe"
	defaultFFmpegBinary     = "ffmpeg"
	defaultVideoEncoder     = "libx264"
	defaultIntervalSeconds  = 8.0
	defaultFrameWidth       = 1920
	defaultFrameHeight      = 1080
	defaultFPS              = 30
	defaultCrossfadeSeconds = 0.3
	defaultMinFreeGiB       = 1
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StoreFile: defaultStoreFile,
			LogDir:    defaultLogDir,
		},
		Catalog: Catalog{
			SortKey:       defaultSortKey,
			SortDirection: defaultSortDirection,
			ProbeWorkers:  defaultProbeWorkers,
			FFprobeBinary: defaultFFprobeBinary,
		},
		Render: Render{
			IntervalSeconds:  defaultIntervalSeconds,
			FrameWidth:       defaultFrameWidth,
			FrameHeight:      defaultFrameHeight,
			FPS:              defaultFPS,
			CrossfadeSeconds: defaultCrossfadeSeconds,
			FFmpegBinary:     defaultFFmpegBinary,
			VideoEncoder:     defaultVideoEncoder,
			WriteTimeline:    true,
		},
		Workflow: Workflow{
			MinFreeGiB: defaultMinFreeGiB,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
