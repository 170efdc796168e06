// Package services defines the error taxonomy shared by the pipeline stages.
//
// Every failure surfaced by the loader, renderer, dispatcher, or assembler is
// wrapped with one of the exported sentinels so the CLI can classify it
// without inspecting message text. All errors are fatal to a run; there is no
// retry tier.
package services
