// Package dispatch provides the synchronous parallel map used to fan frame
// rendering out over a fixed-size worker pool.
//
// Workers never communicate with each other; each takes one index to
// completion before pulling the next. A single failure aborts the whole
// batch, because a missing frame would desynchronize video playback timing.
package dispatch
