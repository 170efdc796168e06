// Package trajectory loads and validates precomputed molecular-dynamics
// trajectory files.
//
// The input is a JSON document carrying simulation metadata plus a dense
// [num_snapshots][num_atoms][3] position array. Shape validation is complete
// at load time: every snapshot must hold exactly num_atoms coordinate
// triples, so the renderer and assembler can trust the data they receive.
package trajectory
