package main

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"
)

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return buf.String(), fnErr
}

// withFlags sets the global flags for one test and restores them afterwards.
func withFlags(t *testing.T, pageSizeKiB int, asJSON bool) {
	t.Helper()
	oldSize, oldJSON, oldQuiet, oldVerbose, oldConfig := pageSizeFlag, jsonOut, quiet, verbose, configPath
	t.Cleanup(func() {
		pageSizeFlag, jsonOut, quiet, verbose, configPath = oldSize, oldJSON, oldQuiet, oldVerbose, oldConfig
	})
	pageSizeFlag, jsonOut, quiet, verbose = pageSizeKiB, asJSON, false, false
	configPath = ""
}

// decodeJSON unmarshals command output into v
func decodeJSON(t *testing.T, output string, v interface{}) {
	t.Helper()
	if err := json.Unmarshal([]byte(output), v); err != nil {
		t.Fatalf("output is not valid JSON: %v\nOutput: %s", err, output)
	}
}
