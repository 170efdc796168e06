package main

import (
	"strings"
	"testing"
)

func TestKVTableRendersHeadersAndRows(t *testing.T) {
	out := kvTable("Field", "Value", [][2]string{
		{"Atoms", "2"},
		{"Snapshots", "1,000"},
	}, true)

	for _, want := range []string{"Field", "Value", "Atoms", "Snapshots", "1,000"} {
		requireContains(t, out, want)
	}
	if lines := strings.Split(out, "\n"); len(lines) < 4 {
		t.Fatalf("expected bordered table with header and rows, got %d lines:\n%s", len(lines), out)
	}
}

func TestKVTableEmptyRows(t *testing.T) {
	out := kvTable("Setting", "Value", nil, false)
	requireContains(t, out, "Setting")
}
