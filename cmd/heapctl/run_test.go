package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunRunPassesOnConformantTrace(t *testing.T) {
	dir := t.TempDir()
	tracePath := filepath.Join(dir, "trace.json")
	trace := `{"ops":[
		{"kind":"ALLOC","index":0,"size":32},
		{"kind":"ALLOC","index":1,"size":64},
		{"kind":"REALLOC","index":0,"size":256},
		{"kind":"FREE","index":1},
		{"kind":"FREE","index":0}
	]}`
	require.NoError(t, os.WriteFile(tracePath, []byte(trace), 0o644))

	require.NoError(t, runRun(tracePath))
}

func TestRunRunRejectsMissingFile(t *testing.T) {
	err := runRun(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
