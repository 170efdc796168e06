// Package render rasterizes trajectory snapshots into 3D scatter frames.
//
// Every frame uses the same fixed axes spanning [0, box_length] on all three
// dimensions, an orthographic elevation/azimuth projection, and a title
// naming the simulated timestep, so consecutive frames animate cleanly. A
// Renderer is immutable after construction and safe to call from concurrent
// workers; each invocation owns its canvas from allocation to encode.
package render
