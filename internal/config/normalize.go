package config

import "strings"

// normalize expands user paths and fills zero values with defaults so the
// rest of the pipeline never re-checks for empty settings.
func (c *Config) normalize() error {
	for _, entry := range []struct {
		value    *string
		fallback string
	}{
		{&c.Paths.StagingDir, defaultStagingDir},
		{&c.Paths.OutputDir, defaultOutputDir},
		{&c.Paths.LogDir, defaultLogDir},
	} {
		if strings.TrimSpace(*entry.value) == "" {
			*entry.value = entry.fallback
		}
		expanded, err := expandPath(*entry.value)
		if err != nil {
			return err
		}
		*entry.value = expanded
	}

	if c.Render.Width == 0 {
		c.Render.Width = defaultFrameWidth
	}
	if c.Render.Height == 0 {
		c.Render.Height = defaultFrameHeight
	}
	if c.Render.MarkerRadius == 0 {
		c.Render.MarkerRadius = defaultMarkerRadius
	}
	if c.Video.FPS == 0 {
		c.Video.FPS = defaultFPS
	}
	if strings.TrimSpace(c.Video.OutputName) == "" {
		c.Video.OutputName = defaultOutputName
	}
	c.Video.FFmpegBinary = strings.TrimSpace(c.Video.FFmpegBinary)
	if c.Video.FFmpegBinary == "" {
		c.Video.FFmpegBinary = "ffmpeg"
	}
	c.Video.FFprobeBinary = strings.TrimSpace(c.Video.FFprobeBinary)
	if c.Video.FFprobeBinary == "" {
		c.Video.FFprobeBinary = "ffprobe"
	}
	if strings.TrimSpace(c.Logging.Format) == "" {
		c.Logging.Format = defaultLogFormat
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}
