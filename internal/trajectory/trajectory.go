package trajectory

import "math"

// Metadata holds the simulation parameters recorded alongside the trajectory.
// Immutable once loaded.
type Metadata struct {
	BoxLength        float64
	NumAtoms         int
	Timestep         float64
	TotalSteps       int
	SnapshotInterval int
}

// ExpectedSnapshots returns the snapshot count implied by the metadata.
// The trajectory array itself remains authoritative; a mismatch is worth a
// warning, not a failure.
func (m Metadata) ExpectedSnapshots() int {
	if m.SnapshotInterval <= 0 {
		return 0
	}
	return m.TotalSteps / m.SnapshotInterval
}

// TimestepOf returns the simulation timestep number snapshot i records.
func (m Metadata) TimestepOf(i int) int {
	return i * m.SnapshotInterval
}

// Position is one atom's coordinates at a recorded instant.
type Position struct {
	X, Y, Z float64
}

// Finite reports whether all three coordinates are plottable numbers.
func (p Position) Finite() bool {
	for _, v := range []float64{p.X, p.Y, p.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Snapshot is the full set of atom positions at one recorded instant.
// Slot order carries no atom identity beyond indexing the same slot across
// snapshots.
type Snapshot []Position

// Trajectory is the ordered sequence of snapshots; index order is temporal
// order and must be preserved through rendering and assembly.
type Trajectory []Snapshot
