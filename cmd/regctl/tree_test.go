package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeCommand(t *testing.T) {
	tests := []struct {
		name           string
		depth          int
		values         bool
		json           bool
		wantContain    []string
		wantNotContain []string
	}{
		{
			name:           "default depth",
			depth:          3,
			wantContain:    []string{`[HKCU\Software\Vendor]`, "  [App]", "    [Settings]"},
			wantNotContain: []string{"Deep", "Mode"},
		},
		{
			name:           "depth 1",
			depth:          1,
			wantContain:    []string{`[HKCU\Software\Vendor]`},
			wantNotContain: []string{"[App]"},
		},
		{
			name:        "unlimited with values",
			depth:       0,
			values:      true,
			wantContain: []string{"[Deep]", `"Mode" [REG_SZ] = "fast"`},
		},
		{
			name:        "json",
			depth:       0,
			json:        true,
			wantContain: []string{`"name": "Deep"`, `"path": "HKCU\\Software\\Vendor\\App\\Settings\\Deep"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useMemory(t)
			seedKey(t, `HKCU\Software\Vendor\App\Settings\Deep`, nil)
			seedKey(t, `HKCU\Software\Vendor\App`, map[string]any{"Mode": "fast"})
			treeDepth, treeValues, jsonOut = tt.depth, tt.values, tt.json
			t.Cleanup(func() { treeDepth, treeValues = 3, false })

			output, err := captureOutput(t, func() error {
				return runTree([]string{`HKCU\Software\Vendor`})
			})
			require.NoError(t, err)
			if tt.json {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}

func TestInfoCommand(t *testing.T) {
	useMemory(t)
	seedKey(t, `HKCU\Software\Vendor\A`, nil)
	seedKey(t, `HKCU\Software\Vendor\B`, nil)
	seedKey(t, `HKCU\Software\Vendor`, map[string]any{"x": "1"})

	output, err := captureOutput(t, func() error { return runInfo([]string{`HKCU\Software\Vendor`}) })
	require.NoError(t, err)
	assertContains(t, output, []string{`Path:       HKCU\Software\Vendor`, "Subkeys:    2", "Values:     1", "Last Write:"})

	jsonOut = true
	output, err = captureOutput(t, func() error { return runInfo([]string{`HKCU\Software\Vendor`}) })
	require.NoError(t, err)
	got := assertJSON(t, output)
	assert.Equal(t, float64(2), got["subkeys"])
	assert.Contains(t, got, "last_write")

	_, err = captureOutput(t, func() error { return runInfo([]string{`HKCU\Nope`}) })
	assert.Error(t, err)
}
