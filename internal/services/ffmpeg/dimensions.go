package ffmpeg

import (
	"fmt"
	"image"
	_ "image/png"
	"os"

	"trajview/internal/services"
)

// CheckDimensions decodes each artifact's image header and verifies every
// frame shares the first frame's dimensions. ffmpeg would fail on a mismatch
// anyway, but only after consuming the sequence; checking headers first lets
// the error name the offending frame index.
func CheckDimensions(paths []string) (int, int, error) {
	if len(paths) == 0 {
		return 0, 0, services.Wrap(services.ErrEncoding, assembleStage, "check frames", "no frame artifacts to assemble", nil)
	}

	var width, height int
	for i, path := range paths {
		cfg, err := decodeConfig(path)
		if err != nil {
			return 0, 0, services.Wrap(services.ErrEncoding, assembleStage, "check frames", fmt.Sprintf("frame %d unreadable", i), err)
		}
		if i == 0 {
			width, height = cfg.Width, cfg.Height
			continue
		}
		if cfg.Width != width || cfg.Height != height {
			return 0, 0, services.Wrap(services.ErrEncoding, assembleStage, "check frames",
				fmt.Sprintf("frame %d is %dx%d, expected %dx%d", i, cfg.Width, cfg.Height, width, height), nil)
		}
	}
	return width, height, nil
}

func decodeConfig(path string) (image.Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return image.Config{}, err
	}
	defer file.Close()
	cfg, _, err := image.DecodeConfig(file)
	return cfg, err
}
