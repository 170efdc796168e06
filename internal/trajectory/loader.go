package trajectory

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"trajview/internal/services"
)

const loadStage = "load"

// document mirrors the input file schema. Pointer fields distinguish missing
// keys from zero values so load errors can name the offending field.
type document struct {
	BoxLength        *float64       `json:"box_length"`
	NumAtoms         *int           `json:"num_atoms"`
	Timestep         *float64       `json:"timestep"`
	TotalSteps       *int           `json:"total_steps"`
	SnapshotInterval *int           `json:"snapshot_interval"`
	Trajectory       *[][][]float64 `json:"trajectory"`
}

// Load reads and validates a trajectory file. All structural validation
// happens here so rendering never starts on malformed data.
func Load(path string) (Metadata, Trajectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Metadata{}, nil, services.Wrap(services.ErrNotFound, loadStage, "open", fmt.Sprintf("input file %s does not exist", path), nil)
		}
		// The path exists but cannot be read (permissions, directory, I/O).
		return Metadata{}, nil, services.Wrap(services.ErrDataFormat, loadStage, "read", path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return Metadata{}, nil, services.Wrap(services.ErrDataFormat, loadStage, "parse", fmt.Sprintf("field %s has the wrong type", typeErr.Field), err)
		}
		return Metadata{}, nil, services.Wrap(services.ErrDataFormat, loadStage, "parse", "invalid JSON document", err)
	}

	meta, err := buildMetadata(doc)
	if err != nil {
		return Metadata{}, nil, err
	}

	if doc.Trajectory == nil {
		return Metadata{}, nil, missingField("trajectory")
	}
	traj, err := buildTrajectory(*doc.Trajectory, meta.NumAtoms)
	if err != nil {
		return Metadata{}, nil, err
	}

	return meta, traj, nil
}

func buildMetadata(doc document) (Metadata, error) {
	switch {
	case doc.BoxLength == nil:
		return Metadata{}, missingField("box_length")
	case doc.NumAtoms == nil:
		return Metadata{}, missingField("num_atoms")
	case doc.Timestep == nil:
		return Metadata{}, missingField("timestep")
	case doc.TotalSteps == nil:
		return Metadata{}, missingField("total_steps")
	case doc.SnapshotInterval == nil:
		return Metadata{}, missingField("snapshot_interval")
	}

	meta := Metadata{
		BoxLength:        *doc.BoxLength,
		NumAtoms:         *doc.NumAtoms,
		Timestep:         *doc.Timestep,
		TotalSteps:       *doc.TotalSteps,
		SnapshotInterval: *doc.SnapshotInterval,
	}

	for field, ok := range map[string]bool{
		"box_length":        meta.BoxLength > 0,
		"num_atoms":         meta.NumAtoms > 0,
		"timestep":          meta.Timestep > 0,
		"total_steps":       meta.TotalSteps > 0,
		"snapshot_interval": meta.SnapshotInterval > 0,
	} {
		if !ok {
			return Metadata{}, services.Wrap(services.ErrDataFormat, loadStage, "validate", fmt.Sprintf("field %s must be positive", field), nil)
		}
	}
	return meta, nil
}

func buildTrajectory(raw [][][]float64, numAtoms int) (Trajectory, error) {
	if len(raw) == 0 {
		return nil, services.Wrap(services.ErrDataFormat, loadStage, "validate", "trajectory contains no snapshots", nil)
	}

	traj := make(Trajectory, 0, len(raw))
	for i, rawSnap := range raw {
		if len(rawSnap) != numAtoms {
			return nil, services.Wrap(services.ErrShapeMismatch, loadStage, "validate",
				fmt.Sprintf("snapshot %d has %d atom positions, expected %d", i, len(rawSnap), numAtoms), nil)
		}
		snap := make(Snapshot, numAtoms)
		for j, triple := range rawSnap {
			if len(triple) != 3 {
				return nil, services.Wrap(services.ErrShapeMismatch, loadStage, "validate",
					fmt.Sprintf("snapshot %d atom %d has %d coordinates, expected 3", i, j, len(triple)), nil)
			}
			snap[j] = Position{X: triple[0], Y: triple[1], Z: triple[2]}
		}
		traj = append(traj, snap)
	}
	return traj, nil
}

func missingField(name string) error {
	return services.Wrap(services.ErrDataFormat, loadStage, "validate", fmt.Sprintf("required field %s is missing", name), nil)
}
