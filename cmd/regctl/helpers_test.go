package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/joshuapare/regedit/internal/memreg"
)

// setupTest points regctl at a fresh in-memory registry with default
// settings and restores the globals afterwards.
func setupTest(t *testing.T, opts ...memreg.Option) *memreg.Registry {
	t.Helper()
	mem := memreg.New(opts...)
	backend = mem

	cfg = defaultConfig()
	cfg.NoColor = true
	quiet, verbose = false, false
	setType, setSep = "", ","
	valuesPrefix = ""
	treeDepth, treeValues = 3, false
	exportUTF16 = false
	importEncoding = ""

	t.Cleanup(func() {
		backend = nil
		stdout = os.Stdout
	})
	return mem
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	stdout = &buf
	defer func() { stdout = os.Stdout }()
	err := fn()
	return buf.String(), err
}

// mustRun runs fn and fails the test on error.
func mustRun(t *testing.T, fn func([]string) error, args ...string) string {
	t.Helper()
	out, err := captureOutput(t, func() error { return fn(args) })
	if err != nil {
		t.Fatalf("unexpected error: %v\nOutput: %s", err, out)
	}
	return out
}
