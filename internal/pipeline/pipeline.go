package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"trajview/internal/config"
	"trajview/internal/dispatch"
	"trajview/internal/logging"
	"trajview/internal/media/ffprobe"
	"trajview/internal/render"
	"trajview/internal/scratch"
	"trajview/internal/services/ffmpeg"
	"trajview/internal/trajectory"
)

var verifyOutput = ffprobe.Verify

// Result summarizes a completed run.
type Result struct {
	OutputPath string
	Snapshots  int
	Mode       string
	Elapsed    time.Duration
}

// Runner drives the Load -> Render -> Assemble -> Cleanup pipeline. All
// run parameters travel in the immutable config value; workers never read
// process-wide state.
type Runner struct {
	cfg     *config.Config
	logger  *slog.Logger
	encoder ffmpeg.Client

	// progressWriter receives the interactive render bar; nil disables it.
	progressWriter io.Writer
}

// New constructs a Runner. A nil encoder gets the default ffmpeg CLI client;
// a nil logger is replaced with a no-op logger.
func New(cfg *config.Config, logger *slog.Logger, encoder ffmpeg.Client) *Runner {
	if encoder == nil {
		encoder = ffmpeg.NewCLI(ffmpeg.WithBinary(cfg.Video.FFmpegBinary))
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	var progressWriter io.Writer
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		progressWriter = os.Stderr
	}
	return &Runner{
		cfg:            cfg,
		logger:         logging.WithComponent(logger, "pipeline"),
		encoder:        encoder,
		progressWriter: progressWriter,
	}
}

// Run executes the full pipeline for one input file and returns the output
// video path. Any stage error aborts the run; no partial video is produced.
func (r *Runner) Run(ctx context.Context, inputPath string) (Result, error) {
	started := time.Now()

	meta, traj, err := trajectory.Load(inputPath)
	if err != nil {
		return Result{}, err
	}
	n := len(traj)
	r.logger.Info("loaded trajectory",
		logging.String("input", inputPath),
		logging.Int("snapshots", n),
		logging.Int("atoms", meta.NumAtoms),
		logging.Float64("box_length", meta.BoxLength),
	)
	if expected := meta.ExpectedSnapshots(); expected != n {
		r.logger.Warn("snapshot count differs from metadata",
			logging.Int("snapshots", n),
			logging.Int("expected", expected),
		)
	}

	renderer, err := render.New(render.Options{
		Width:            r.cfg.Render.Width,
		Height:           r.cfg.Render.Height,
		BoxLength:        meta.BoxLength,
		MarkerRadius:     r.cfg.Render.MarkerRadius,
		ElevationDeg:     r.cfg.Render.ElevationDeg,
		AzimuthDeg:       r.cfg.Render.AzimuthDeg,
		SnapshotInterval: meta.SnapshotInterval,
	})
	if err != nil {
		return Result{}, err
	}

	outputPath := filepath.Join(r.cfg.Paths.OutputDir, r.cfg.Video.OutputName)
	opts := ffmpeg.EncodeOptions{FPS: r.cfg.Video.FPS}

	mode := "parallel"
	if r.cfg.Render.Workers == 1 {
		mode = "sequential"
		err = r.runSequential(ctx, renderer, traj, outputPath, opts)
	} else {
		err = r.runParallel(ctx, renderer, traj, outputPath, opts)
	}
	if err != nil {
		return Result{}, err
	}

	if r.cfg.Video.VerifyOutput {
		if err := verifyOutput(ctx, r.cfg.Video.FFprobeBinary, outputPath, n, r.cfg.Render.Width, r.cfg.Render.Height); err != nil {
			r.removePartialOutput(outputPath)
			return Result{}, err
		}
	}

	result := Result{
		OutputPath: outputPath,
		Snapshots:  n,
		Mode:       mode,
		Elapsed:    time.Since(started),
	}
	r.logger.Info("video assembled",
		logging.String("output", result.OutputPath),
		logging.Int("frames", result.Snapshots),
		logging.Int("fps", r.cfg.Video.FPS),
		logging.String("mode", result.Mode),
		logging.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}

// runParallel renders frames into the scratch directory across the worker
// pool, then assembles them from the deterministic file pattern. Frame order
// is carried by the zero-padded file names, never by completion order.
func (r *Runner) runParallel(ctx context.Context, renderer *render.Renderer, traj trajectory.Trajectory, outputPath string, opts ffmpeg.EncodeOptions) error {
	n := len(traj)

	dir, err := scratch.New(r.cfg.Paths.StagingDir)
	if err != nil {
		return err
	}

	paths := make([]string, n)
	for i := range paths {
		paths[i] = filepath.Join(dir.Path(), render.FrameFileName(i))
		dir.Track(paths[i])
	}

	bar := r.newRenderBar(n)
	renderStarted := time.Now()
	err = dispatch.Map(ctx, n, r.cfg.Render.Workers, func(ctx context.Context, index int) error {
		if err := renderer.RenderPNG(index, traj[index], paths[index]); err != nil {
			return err
		}
		if bar != nil {
			_ = bar.Add(1)
		}
		return nil
	})
	finishBar(bar)
	if err != nil {
		return r.retainScratch(dir, err)
	}
	r.logger.Info("frames rendered",
		logging.Int("frames", n),
		logging.Duration("elapsed", time.Since(renderStarted)),
	)

	if _, _, err := ffmpeg.CheckDimensions(paths); err != nil {
		return r.retainScratch(dir, err)
	}

	pattern := filepath.Join(dir.Path(), render.FramePattern)
	if err := r.encoder.EncodeSequence(ctx, pattern, outputPath, opts, r.logEncodeProgress); err != nil {
		r.removePartialOutput(outputPath)
		return r.retainScratch(dir, err)
	}

	if r.cfg.Video.KeepFrames {
		r.logger.Info("keeping frame artifacts", logging.String("dir", dir.Path()))
		return dir.Release()
	}
	return dir.Cleanup()
}

// runSequential renders frames in index order and streams them straight to
// the encoder's stdin. No scratch files are created, so there is nothing to
// clean up. This is the fallback mode for hosts where fanning out worker
// processes is undesirable.
func (r *Runner) runSequential(ctx context.Context, renderer *render.Renderer, traj trajectory.Trajectory, outputPath string, opts ffmpeg.EncodeOptions) error {
	pr, pw := io.Pipe()
	bar := r.newRenderBar(len(traj))

	renderErr := make(chan error, 1)
	go func() {
		defer close(renderErr)
		for i, snap := range traj {
			if err := ctx.Err(); err != nil {
				pw.CloseWithError(err)
				return
			}
			if err := renderer.WritePNG(pw, i, snap); err != nil {
				// A closed pipe means the encoder already failed; its
				// error is the root cause, not this write.
				if !errors.Is(err, io.ErrClosedPipe) {
					renderErr <- err
				}
				pw.CloseWithError(err)
				return
			}
			if bar != nil {
				_ = bar.Add(1)
			}
		}
		pw.Close()
	}()

	encodeErr := r.encoder.EncodeStream(ctx, pr, outputPath, opts, r.logEncodeProgress)
	pr.Close()
	finishBar(bar)

	// A render failure breaks the stream and fails the encoder too; the
	// render error is the root cause, so it wins.
	if err := <-renderErr; err != nil {
		r.removePartialOutput(outputPath)
		return err
	}
	if encodeErr != nil {
		r.removePartialOutput(outputPath)
		return encodeErr
	}
	return nil
}

// removePartialOutput deletes whatever ffmpeg left at outputPath after a
// failed encode or verification. No partial video survives a failed run.
func (r *Runner) removePartialOutput(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		r.logger.Warn("failed to remove partial output",
			logging.String("output", path),
			logging.Error(err),
		)
	}
}

func (r *Runner) retainScratch(dir *scratch.Dir, cause error) error {
	r.logger.Error("run failed; keeping frame artifacts for inspection",
		logging.String("dir", dir.Path()),
		logging.Error(cause),
	)
	if err := dir.Release(); err != nil {
		r.logger.Warn("failed to release staging lock", logging.Error(err))
	}
	return cause
}

func (r *Runner) logEncodeProgress(p ffmpeg.Progress) {
	r.logger.Debug("encoding progress",
		logging.Int("frame", int(p.Frame)),
		logging.Duration("out_time", p.OutTime),
		logging.Float64("speed", p.Speed),
		logging.Bool("done", p.Done),
	)
}

func (r *Runner) newRenderBar(n int) *progressbar.ProgressBar {
	if r.progressWriter == nil {
		return nil
	}
	return progressbar.NewOptions(n,
		progressbar.OptionSetWriter(r.progressWriter),
		progressbar.OptionSetDescription(fmt.Sprintf("rendering %d frames", n)),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func finishBar(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Finish()
	}
}

// RunFile is a convenience wrapper used by the CLI: it wires the default
// encoder and runs the pipeline once.
func RunFile(ctx context.Context, cfg *config.Config, logger *slog.Logger, inputPath string) (Result, error) {
	return New(cfg, logger, nil).Run(ctx, inputPath)
}
