// Package ffprobe inspects assembled video containers so the pipeline can
// confirm the output carries one frame per snapshot at the rendered
// dimensions before declaring success.
package ffprobe
