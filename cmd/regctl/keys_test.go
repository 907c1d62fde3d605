package main

import (
	"testing"
)

func TestKeysCommand(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		recursive      bool
		wantErr        bool
		wantContain    []string
		wantNotContain []string
		wantJSON       bool
	}{
		{
			name:           "direct children",
			path:           `HKCU\Software`,
			wantContain:    []string{"Vendor\n", "Tools\n"},
			wantNotContain: []string{"App", `HKCU\Software`},
		},
		{
			name:           "recursive",
			path:           `HKCU\Software`,
			recursive:      true,
			wantContain:    []string{"Vendor\n", `Vendor\App` + "\n", `Vendor\App\Settings` + "\n", "Tools\n"},
			wantNotContain: []string{`HKCU\Software\`},
		},
		{
			name:        "json",
			path:        `hkcu\software`,
			wantJSON:    true,
			wantContain: []string{`"count": 2`, `"Vendor"`},
		},
		{
			name:    "missing key",
			path:    `HKCU\Nope`,
			wantErr: true,
		},
		{
			name:    "bad path",
			path:    `\Software`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useMemory(t)
			seedKey(t, `HKCU\Software\Vendor\App\Settings`, nil)
			seedKey(t, `HKCU\Software\Tools`, nil)
			jsonOut = tt.wantJSON
			keysRecursive = tt.recursive
			t.Cleanup(func() { keysRecursive = false })

			output, err := captureOutput(t, func() error {
				return runKeys([]string{tt.path})
			})

			if (err != nil) != tt.wantErr {
				t.Errorf("runKeys() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if tt.wantJSON {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}

func TestGlobCommand(t *testing.T) {
	useMemory(t)
	seedKey(t, `HKCU\Software\Vendor\App\Recent`, nil)
	seedKey(t, `HKCU\Software\Other\RecentDocs`, nil)
	seedKey(t, `HKCU\Software\Other\Old`, nil)

	output, err := captureOutput(t, func() error {
		return runGlob([]string{`HKCU\Software`, `**\recent*`})
	})
	if err != nil {
		t.Fatalf("runGlob() error = %v", err)
	}
	assertContains(t, output, []string{`HKCU\Software\Vendor\App\Recent`, `HKCU\Software\Other\RecentDocs`})
	assertNotContains(t, output, []string{"Old"})

	jsonOut = true
	output, err = captureOutput(t, func() error {
		return runGlob([]string{`HKCU\Software`, `*`})
	})
	if err != nil {
		t.Fatalf("runGlob() error = %v", err)
	}
	if got := assertJSON(t, output)["count"]; got != float64(2) {
		t.Errorf("count = %v, want 2", got)
	}

	if _, err := captureOutput(t, func() error {
		return runGlob([]string{`HKCU\Software`, `HKLM\*`})
	}); err == nil {
		t.Error("runGlob() with an anchored pattern succeeded")
	}
}
