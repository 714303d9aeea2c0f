package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCatalog()
	c.normalizeRender()
	c.normalizeWorkflow()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.SourceDir, err = expandPath(strings.TrimSpace(c.Paths.SourceDir)); err != nil {
		return fmt.Errorf("paths.source_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	// The original layout keeps rendered artifacts under <source>/output.
	if c.Paths.OutputDir == "" && c.Paths.SourceDir != "" {
		c.Paths.OutputDir = filepath.Join(c.Paths.SourceDir, "output")
	}
	if strings.TrimSpace(c.Paths.StoreFile) == "" {
		c.Paths.StoreFile = defaultStoreFile
	}
	if c.Paths.StoreFile, err = expandPath(c.Paths.StoreFile); err != nil {
		return fmt.Errorf("paths.store_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCatalog() {
	c.Catalog.SortKey = strings.ToLower(strings.TrimSpace(c.Catalog.SortKey))
	if c.Catalog.SortKey == "" {
		c.Catalog.SortKey = defaultSortKey
	}
	c.Catalog.SortDirection = strings.ToLower(strings.TrimSpace(c.Catalog.SortDirection))
	if c.Catalog.SortDirection == "" {
		c.Catalog.SortDirection = defaultSortDirection
	}
	c.Catalog.AudioDir = strings.TrimSpace(c.Catalog.AudioDir)
	if c.Catalog.AudioDir != "" {
		if expanded, err := expandPath(c.Catalog.AudioDir); err == nil {
			c.Catalog.AudioDir = expanded
		}
	}
	if c.Catalog.ProbeWorkers <= 0 {
		c.Catalog.ProbeWorkers = defaultProbeWorkers
	}
	c.Catalog.FFprobeBinary = strings.TrimSpace(c.Catalog.FFprobeBinary)
	if c.Catalog.FFprobeBinary == "" {
		c.Catalog.FFprobeBinary = defaultFFprobeBinary
	}
}

func (c *Config) normalizeRender() {
	if c.Render.IntervalSeconds <= 0 {
		c.Render.IntervalSeconds = defaultIntervalSeconds
	}
	if c.Render.FPS <= 0 {
		c.Render.FPS = defaultFPS
	}
	if c.Render.CrossfadeSeconds < 0 {
		c.Render.CrossfadeSeconds = 0
	}
	c.Render.FFmpegBinary = strings.TrimSpace(c.Render.FFmpegBinary)
	if c.Render.FFmpegBinary == "" {
		c.Render.FFmpegBinary = defaultFFmpegBinary
	}
	c.Render.VideoEncoder = strings.TrimSpace(c.Render.VideoEncoder)
	if c.Render.VideoEncoder == "" {
		c.Render.VideoEncoder = defaultVideoEncoder
	}
	if c.Render.StartAudioIndex < 0 {
		c.Render.StartAudioIndex = 0
	}
}

func (c *Config) normalizeWorkflow() {
	if c.Workflow.MinFreeGiB < 0 {
		c.Workflow.MinFreeGiB = 0
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
