// Package pipeline orchestrates a trajectory-to-video run.
//
// The stages form a straight line: load and validate the trajectory, render
// one frame per snapshot (parallel workers by default, an in-memory
// sequential stream as fallback), hand the ordered frames to ffmpeg, verify
// the result, and clean up the scratch artifacts. Every error is fatal to
// the run; on assembly failure the frame artifacts are deliberately kept so
// the failure can be inspected.
package pipeline
