package config

import (
	"errors"
	"fmt"
)

var validSortKeys = map[string]struct{}{
	"name":    {},
	"modtime": {},
	"size":    {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if _, ok := validSortKeys[c.Catalog.SortKey]; !ok {
		return fmt.Errorf("catalog.sort_key: unsupported value %q (use name, modtime, or size)", c.Catalog.SortKey)
	}
	switch c.Catalog.SortDirection {
	case "asc", "desc":
	default:
		return fmt.Errorf("catalog.sort_direction: unsupported value %q (use asc or desc)", c.Catalog.SortDirection)
	}
	return nil
}

func (c *Config) validateRender() error {
	if c.Render.FrameWidth <= 0 || c.Render.FrameHeight <= 0 {
		return errors.New("render.frame_width and render.frame_height must be positive")
	}
	if c.Render.FrameWidth%2 != 0 || c.Render.FrameHeight%2 != 0 {
		return errors.New("render.frame_width and render.frame_height must be even for yuv420p output")
	}
	if c.Render.CrossfadeSeconds >= c.Render.IntervalSeconds {
		return fmt.Errorf("render.crossfade_seconds (%.2f) must be shorter than render.interval_seconds (%.2f)",
			c.Render.CrossfadeSeconds, c.Render.IntervalSeconds)
	}
	return nil
}
