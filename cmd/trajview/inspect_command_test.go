package main

import (
	"errors"
	"testing"

	"trajview/internal/services"
	"trajview/internal/testsupport"
)

func TestInspectSummarizesTrajectory(t *testing.T) {
	input := testsupport.WriteTrajectory(t, testsupport.DefaultTrajectory())

	out, _, err := runCLI(t, []string{"inspect", input}, writeCLIConfig(t))
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	requireContains(t, out, "Snapshots")
	requireContains(t, out, "Box length")
	requireContains(t, out, "Video duration")
	requireContains(t, out, "200ms at 10 fps") // two snapshots at the default rate
}

func TestInspectFlagsSnapshotCountMismatch(t *testing.T) {
	doc := testsupport.DefaultTrajectory()
	doc.TotalSteps = 100
	input := testsupport.WriteTrajectory(t, doc)

	out, _, err := runCLI(t, []string{"inspect", input}, writeCLIConfig(t))
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	requireContains(t, out, "Expected snapshots")
}

func TestInspectMissingFile(t *testing.T) {
	_, _, err := runCLI(t, []string{"inspect", "/nonexistent/trajectory.json"}, writeCLIConfig(t))
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("inspect error = %v, want not-found error", err)
	}
}
