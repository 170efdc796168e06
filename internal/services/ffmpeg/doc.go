// Package ffmpeg wraps the ffmpeg command-line encoder used to assemble
// rendered frames into an H.264/MP4 video.
//
// The codec and container work is entirely delegated to the external binary;
// this package's job is supplying frames in correct order (a file pattern or
// a PNG stream), relaying progress events, and classifying failures.
package ffmpeg
