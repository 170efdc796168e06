package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// TrajectoryDocument mirrors the input file schema for fixture generation.
type TrajectoryDocument struct {
	BoxLength        float64       `json:"box_length"`
	NumAtoms         int           `json:"num_atoms"`
	Timestep         float64       `json:"timestep"`
	TotalSteps       int           `json:"total_steps"`
	SnapshotInterval int           `json:"snapshot_interval"`
	Trajectory       [][][]float64 `json:"trajectory"`
}

// DefaultTrajectory returns the two-snapshot document used across tests:
// box 10, two atoms, twenty steps sampled every ten.
func DefaultTrajectory() TrajectoryDocument {
	return TrajectoryDocument{
		BoxLength:        10,
		NumAtoms:         2,
		Timestep:         0.001,
		TotalSteps:       20,
		SnapshotInterval: 10,
		Trajectory: [][][]float64{
			{{1, 1, 1}, {2, 2, 2}},
			{{3, 3, 3}, {4, 4, 4}},
		},
	}
}

// WriteTrajectory marshals doc into a temp file and returns its path.
func WriteTrajectory(t testing.TB, doc TrajectoryDocument) string {
	t.Helper()

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal trajectory fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), "simulation_data.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write trajectory fixture: %v", err)
	}
	return path
}
