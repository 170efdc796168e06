package main

import (
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"trajview/internal/trajectory"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <trajectory.json>",
		Short: "Summarize a trajectory file without rendering",
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

			meta, traj, err := trajectory.Load(inputPath)
			if err != nil {
				return err
			}

			p := message.NewPrinter(language.English)
			duration := time.Duration(float64(len(traj)) / float64(cfg.Video.FPS) * float64(time.Second))
			lo, hi := coordinateRange(traj)

			rows := [][2]string{
				{"File", filepath.Base(inputPath)},
				{"Box length", fmt.Sprintf("%.4g angstrom", meta.BoxLength)},
				{"Atoms", p.Sprintf("%d", meta.NumAtoms)},
				{"Timestep", fmt.Sprintf("%.4g ps", meta.Timestep)},
				{"Total steps", p.Sprintf("%d", meta.TotalSteps)},
				{"Snapshot interval", p.Sprintf("%d", meta.SnapshotInterval)},
				{"Snapshots", p.Sprintf("%d", len(traj))},
				{"Coordinate range", fmt.Sprintf("%.4g .. %.4g", lo, hi)},
				{"Video duration", fmt.Sprintf("%s at %d fps", duration.Round(time.Millisecond), cfg.Video.FPS)},
			}
			if expected := meta.ExpectedSnapshots(); expected != len(traj) {
				rows = append(rows, [2]string{"Expected snapshots", p.Sprintf("%d", expected)})
			}

			fmt.Fprintln(cmd.OutOrStdout(), kvTable("Field", "Value", rows, true))
			return nil
		},
	}
}

// coordinateRange scans every finite coordinate; non-finite values are
// reported by render, not here.
func coordinateRange(traj trajectory.Trajectory) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, snap := range traj {
		for _, pos := range snap {
			for _, v := range []float64{pos.X, pos.Y, pos.Z} {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					continue
				}
				lo = math.Min(lo, v)
				hi = math.Max(hi, v)
			}
		}
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}
