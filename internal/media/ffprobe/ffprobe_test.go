package ffprobe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"trajview/internal/services"
)

const probeJSON = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video", "width": 640, "height": 480, "nb_frames": "2"}
  ],
  "format": {"filename": "argon_simulation.mp4", "duration": "0.200000", "format_name": "mov,mp4,m4a,3gp,3g2,mj2"}
}`

func setHelperCommand(t *testing.T, mode string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", fmt.Sprintf("FFPROBE_HELPER_MODE=%s", mode))
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	switch os.Getenv("FFPROBE_HELPER_MODE") {
	case "success":
		fmt.Print(probeJSON)
		os.Exit(0)
	case "noverify":
		fmt.Print(`{"streams": [], "format": {}}`)
		os.Exit(0)
	case "badjson":
		fmt.Print("not json")
		os.Exit(0)
	case "failure":
		fmt.Fprintln(os.Stderr, "No such file or directory")
		os.Exit(1)
	default:
		os.Exit(0)
	}
}

func TestInspectParsesStreams(t *testing.T) {
	setHelperCommand(t, "success")

	result, err := Inspect(context.Background(), "ffprobe", "argon_simulation.mp4")
	if err != nil {
		t.Fatalf("Inspect returned error: %v", err)
	}
	stream, ok := result.VideoStream()
	if !ok {
		t.Fatal("expected a video stream")
	}
	if stream.Width != 640 || stream.Height != 480 {
		t.Fatalf("unexpected dimensions %dx%d", stream.Width, stream.Height)
	}
	if result.FrameCount() != 2 {
		t.Fatalf("expected 2 frames, got %d", result.FrameCount())
	}
	if result.DurationSeconds() != 0.2 {
		t.Fatalf("expected 0.2s duration, got %f", result.DurationSeconds())
	}
}

func TestInspectEmptyPath(t *testing.T) {
	if _, err := Inspect(context.Background(), "ffprobe", ""); !errors.Is(err, services.ErrEncoding) {
		t.Fatalf("expected encoding error for empty path, got %v", err)
	}
}

func TestInspectToolFailure(t *testing.T) {
	setHelperCommand(t, "failure")
	_, err := Inspect(context.Background(), "ffprobe", "missing.mp4")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestInspectBadJSON(t *testing.T) {
	setHelperCommand(t, "badjson")
	_, err := Inspect(context.Background(), "ffprobe", "out.mp4")
	if !errors.Is(err, services.ErrEncoding) {
		t.Fatalf("expected encoding error for bad json, got %v", err)
	}
}

func TestVerifyAcceptsMatchingOutput(t *testing.T) {
	setHelperCommand(t, "success")
	if err := Verify(context.Background(), "ffprobe", "out.mp4", 2, 640, 480); err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
}

func TestVerifyRejectsFrameCountMismatch(t *testing.T) {
	setHelperCommand(t, "success")
	err := Verify(context.Background(), "ffprobe", "out.mp4", 3, 640, 480)
	if !errors.Is(err, services.ErrEncoding) {
		t.Fatalf("expected encoding error, got %v", err)
	}
	if !strings.Contains(err.Error(), "expected 3") {
		t.Fatalf("expected frame count detail, got %q", err.Error())
	}
}

func TestVerifyRejectsDimensionMismatch(t *testing.T) {
	setHelperCommand(t, "success")
	err := Verify(context.Background(), "ffprobe", "out.mp4", 2, 800, 600)
	if !errors.Is(err, services.ErrEncoding) {
		t.Fatalf("expected encoding error, got %v", err)
	}
}

func TestVerifyRejectsMissingVideoStream(t *testing.T) {
	setHelperCommand(t, "noverify")
	err := Verify(context.Background(), "ffprobe", "out.mp4", 2, 640, 480)
	if !errors.Is(err, services.ErrEncoding) {
		t.Fatalf("expected encoding error, got %v", err)
	}
	if !strings.Contains(err.Error(), "no video stream") {
		t.Fatalf("expected missing stream detail, got %q", err.Error())
	}
}
