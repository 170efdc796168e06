// Command trajview renders molecular dynamics trajectory files into MP4
// videos. See `trajview --help` for the command surface.
package main
