package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRender(); err != nil {
		return err
	}
	if err := c.validateVideo(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateRender() error {
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render.width and render.height must be positive (got %dx%d)", c.Render.Width, c.Render.Height)
	}
	// yuv420p needs even dimensions; catching it here beats an ffmpeg failure
	// after every frame has already been rendered.
	if c.Render.Width%2 != 0 || c.Render.Height%2 != 0 {
		return fmt.Errorf("render.width and render.height must be even for H.264 output (got %dx%d)", c.Render.Width, c.Render.Height)
	}
	if c.Render.MarkerRadius <= 0 {
		return errors.New("render.marker_radius must be positive")
	}
	if c.Render.Workers < 0 {
		return errors.New("render.workers must be >= 0 (0 selects the CPU count)")
	}
	return nil
}

func (c *Config) validateVideo() error {
	if c.Video.FPS < 1 {
		return errors.New("video.fps must be >= 1")
	}
	if strings.TrimSpace(c.Video.OutputName) == "" {
		return errors.New("video.output_name must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
