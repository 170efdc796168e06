package ffmpeg

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"trajview/internal/services"
)

const assembleStage = "assemble"

var commandContext = exec.CommandContext

// Progress captures ffmpeg progress events parsed from -progress output.
type Progress struct {
	Frame   int64
	OutTime time.Duration
	Speed   float64
	Done    bool
}

// EncodeOptions carries per-run encoding parameters.
type EncodeOptions struct {
	FPS int
}

// Client defines the video assembly behaviour the pipeline depends on.
type Client interface {
	// EncodeSequence concatenates an on-disk image sequence (printf-style
	// pattern, e.g. /tmp/run/frame_%04d.png) into outputPath.
	EncodeSequence(ctx context.Context, pattern, outputPath string, opts EncodeOptions, progress func(Progress)) error
	// EncodeStream concatenates PNG images read from frames into outputPath.
	// Used by the sequential in-memory mode.
	EncodeStream(ctx context.Context, frames io.Reader, outputPath string, opts EncodeOptions, progress func(Progress)) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// CLI wraps the ffmpeg command-line encoder.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffmpeg"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// EncodeSequence launches ffmpeg over a frame file pattern. Frames are
// consumed strictly in pattern order; no reordering, no interpolation.
func (c *CLI) EncodeSequence(ctx context.Context, pattern, outputPath string, opts EncodeOptions, progress func(Progress)) error {
	if strings.TrimSpace(pattern) == "" {
		return services.Wrap(services.ErrEncoding, assembleStage, "encode", "frame pattern required", nil)
	}
	args := append(inputArgs(opts), "-i", pattern)
	return c.run(ctx, args, nil, outputPath, progress)
}

// EncodeStream launches ffmpeg reading a PNG stream from stdin.
func (c *CLI) EncodeStream(ctx context.Context, frames io.Reader, outputPath string, opts EncodeOptions, progress func(Progress)) error {
	if frames == nil {
		return services.Wrap(services.ErrEncoding, assembleStage, "encode", "frame stream required", nil)
	}
	args := append(inputArgs(opts), "-f", "image2pipe", "-vcodec", "png", "-i", "-")
	return c.run(ctx, args, frames, outputPath, progress)
}

func inputArgs(opts EncodeOptions) []string {
	fps := opts.FPS
	if fps < 1 {
		fps = 10
	}
	return []string{"-y", "-loglevel", "error", "-framerate", strconv.Itoa(fps)}
}

func (c *CLI) run(ctx context.Context, inputArgs []string, stdin io.Reader, outputPath string, progress func(Progress)) error {
	if strings.TrimSpace(outputPath) == "" {
		return services.Wrap(services.ErrEncoding, assembleStage, "encode", "output path required", nil)
	}

	args := append([]string{}, inputArgs...)
	args = append(args,
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		"-progress", "pipe:1",
		"-nostats",
		outputPath,
	)

	cmd := commandContext(ctx, c.binary, args...)
	cmd.Stdin = stdin

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return services.Wrap(services.ErrEncoding, assembleStage, "stdout pipe", "", err)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return services.Wrap(services.ErrExternalTool, assembleStage, "start ffmpeg", c.binary, err)
	}

	var current Progress
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		if applyProgressLine(&current, scanner.Text()) && progress != nil {
			progress(current)
		}
	}
	if err := scanner.Err(); err != nil {
		_ = cmd.Wait()
		return services.Wrap(services.ErrEncoding, assembleStage, "read ffmpeg output", "", err)
	}

	if err := cmd.Wait(); err != nil {
		return services.Wrap(services.ErrEncoding, assembleStage, "ffmpeg", stderrTail(stderr.String()), err)
	}
	return nil
}

// applyProgressLine folds one key=value line into the progress snapshot and
// reports whether the snapshot is ready to surface (ffmpeg terminates each
// block with a progress= line).
func applyProgressLine(p *Progress, line string) bool {
	key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
	if !ok {
		return false
	}
	value = strings.TrimSpace(value)
	switch key {
	case "frame":
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			p.Frame = n
		}
	case "out_time_us":
		if us, err := strconv.ParseInt(value, 10, 64); err == nil {
			p.OutTime = time.Duration(us) * time.Microsecond
		}
	case "speed":
		if s, err := strconv.ParseFloat(strings.TrimSuffix(value, "x"), 64); err == nil {
			p.Speed = s
		}
	case "progress":
		p.Done = value == "end"
		return true
	}
	return false
}

func stderrTail(output string) string {
	output = strings.TrimSpace(output)
	if output == "" {
		return "ffmpeg exited with an error"
	}
	lines := strings.Split(output, "\n")
	if len(lines) > 5 {
		lines = lines[len(lines)-5:]
	}
	return strings.Join(lines, "; ")
}

var _ Client = (*CLI)(nil)
