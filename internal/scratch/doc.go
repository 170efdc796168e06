// Package scratch manages the per-run scratch directory holding intermediate
// frame images.
//
// Each run gets a unique run-<id> directory under the configured staging
// directory plus a staging-wide file lock. Cleanup removes exactly the
// artifact set the run tracked, so a crashed or concurrent run's files are
// never collateral damage.
package scratch
