package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"trajview/internal/pipeline"
	"trajview/internal/services"
)

// runPipeline is indirected so command tests can stub the pipeline.
var runPipeline = pipeline.RunFile

const timePrecision = 10 * time.Millisecond

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var (
		outputName string
		fps        int
		workers    int
		sequential bool
		keepFrames bool
		skipVerify bool
	)

	cmd := &cobra.Command{
		Use:   "render <trajectory.json>",
		Short: "Render a trajectory file into an MP4 video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			inputPath, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve input path: %w", err)
			}

			runCfg := *cfg
			if cmd.Flags().Changed("output") {
				runCfg.Video.OutputName = outputName
			}
			if cmd.Flags().Changed("fps") {
				runCfg.Video.FPS = fps
			}
			if cmd.Flags().Changed("workers") {
				runCfg.Render.Workers = workers
			}
			if sequential {
				runCfg.Render.Workers = 1
			}
			if keepFrames {
				runCfg.Video.KeepFrames = true
			}
			if skipVerify {
				runCfg.Video.VerifyOutput = false
			}
			if err := runCfg.Validate(); err != nil {
				return services.Wrap(services.ErrConfiguration, "config", "apply flags", "", err)
			}

			logger, err := ctx.buildLogger(&runCfg)
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			result, err := runPipeline(runCtx, &runCfg, logger, inputPath)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d frames at %d fps, %s mode) in %s\n",
				result.OutputPath, result.Snapshots, runCfg.Video.FPS, result.Mode,
				result.Elapsed.Round(timePrecision))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputName, "output", "o", "", "Output video file name")
	cmd.Flags().IntVar(&fps, "fps", 0, "Output frame rate")
	cmd.Flags().IntVar(&workers, "workers", 0, "Render worker count (0 = all CPUs)")
	cmd.Flags().BoolVar(&sequential, "sequential", false, "Render in-process in index order, streaming frames to the encoder")
	cmd.Flags().BoolVar(&keepFrames, "keep-frames", false, "Keep rendered frame files after a successful run")
	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "Skip ffprobe verification of the output video")

	return cmd
}
