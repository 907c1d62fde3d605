package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regpath/pkg/regpath"
	"github.com/joshuapare/regpath/pkg/registry/memreg"
	"github.com/joshuapare/regpath/pkg/types"
)

// useMemory points the commands at a fresh in-memory registry and resets
// the global flags.
func useMemory(t *testing.T) *memreg.Registry {
	t.Helper()
	m := memreg.New()
	reg = m
	remote, verbose, quiet, jsonOut, noColor = "", false, false, false, true
	t.Cleanup(func() { reg = nil; jsonOut = false })
	return m
}

// seedKey creates path on the current registry with the given values.
func seedKey(t *testing.T, path string, values map[string]any) {
	t.Helper()
	p, err := regpath.NewWith(reg, path)
	require.NoError(t, err)
	defer p.Close()
	require.NoError(t, p.MakeKey(types.KEY_WRITE, true))
	for name, v := range values {
		require.NoError(t, p.Values().Set(name, v))
	}
}

// pathOf builds a path on the current registry, closed when the test ends.
func pathOf(t *testing.T, path string) *regpath.Path {
	t.Helper()
	p, err := regpath.NewWith(reg, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	// Drain concurrently so large output cannot block the pipe.
	done := make(chan struct{})
	var buf bytes.Buffer
	go func() {
		_, _ = buf.ReadFrom(r)
		close(done)
	}()

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout
	<-done
	r.Close()

	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON and decodes it
func assertJSON(t *testing.T, output string) map[string]any {
	t.Helper()
	var result map[string]any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
	return result
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// assertNotContains checks that output doesn't contain unwanted strings
func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, dont := range unwanted {
		if strings.Contains(output, dont) {
			t.Errorf("output contains unwanted string %q\nGot: %s", dont, output)
		}
	}
}
