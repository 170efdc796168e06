package ffprobe

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"trajview/internal/services"
)

const verifyStage = "verify"

var commandContext = exec.CommandContext

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index     int    `json:"index"`
	CodecName string `json:"codec_name"`
	CodecType string `json:"codec_type"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	NBFrames  string `json:"nb_frames"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	Duration   string `json:"duration"`
	FormatName string `json:"format_name"`
}

// Inspect executes ffprobe against the provided path and decodes the JSON
// response.
func Inspect(ctx context.Context, binary, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, services.Wrap(services.ErrEncoding, verifyStage, "inspect", "empty path", nil)
	}

	cmd := commandContext(ctx, binary, "-v", "error", "-hide_banner", "-count_frames", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.Output()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if exitErr, ok := err.(*exec.ExitError); ok {
			detail = strings.TrimSpace(string(exitErr.Stderr))
		}
		return Result{}, services.Wrap(services.ErrExternalTool, verifyStage, "ffprobe", detail, err)
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, services.Wrap(services.ErrEncoding, verifyStage, "parse ffprobe output", "", err)
	}
	return result, nil
}

// VideoStream returns the first video stream, if any.
func (r Result) VideoStream() (Stream, bool) {
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "video") {
			return stream, true
		}
	}
	return Stream{}, false
}

// FrameCount returns the decoded frame count of the video stream, or 0 when
// unavailable.
func (r Result) FrameCount() int {
	stream, ok := r.VideoStream()
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(stream.NBFrames))
	if err != nil {
		return 0
	}
	return n
}

// DurationSeconds returns the container duration in seconds, or 0 when
// unavailable.
func (r Result) DurationSeconds() float64 {
	d, err := strconv.ParseFloat(strings.TrimSpace(r.Format.Duration), 64)
	if err != nil {
		return 0
	}
	return d
}

// Verify checks that the assembled video carries exactly the expected frame
// sequence shape: one video stream, the snapshot count, and the renderer's
// canvas dimensions.
func Verify(ctx context.Context, binary, path string, wantFrames, wantWidth, wantHeight int) error {
	result, err := Inspect(ctx, binary, path)
	if err != nil {
		return err
	}

	stream, ok := result.VideoStream()
	if !ok {
		return services.Wrap(services.ErrEncoding, verifyStage, "check output", "no video stream in container", nil)
	}
	if got := result.FrameCount(); got != wantFrames {
		return services.Wrap(services.ErrEncoding, verifyStage, "check output",
			fmt.Sprintf("video has %d frames, expected %d", got, wantFrames), nil)
	}
	if stream.Width != wantWidth || stream.Height != wantHeight {
		return services.Wrap(services.ErrEncoding, verifyStage, "check output",
			fmt.Sprintf("video is %dx%d, expected %dx%d", stream.Width, stream.Height, wantWidth, wantHeight), nil)
	}
	return nil
}
