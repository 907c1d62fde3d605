package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetExportFlags(t *testing.T) {
	t.Cleanup(func() {
		exportEncoding, exportBOM, exportStdout = "utf16le", true, false
		importInto, importEncoding = "", ""
	})
}

func TestExportCommand_Stdout(t *testing.T) {
	useMemory(t)
	resetExportFlags(t)
	seedKey(t, `HKCU\Software\App\Sub`, map[string]any{"n": uint32(1)})
	seedKey(t, `HKCU\Software\App`, map[string]any{"": "root"})

	exportStdout, exportEncoding, exportBOM = true, "utf8", false
	output, err := captureOutput(t, func() error { return runExport([]string{`HKCU\Software\App`}) })
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"Windows Registry Editor Version 5.00",
		"",
		`[HKCU\Software\App]`,
		`@="root"`,
		"",
		`[HKCU\Software\App\Sub]`,
		`"n"=dword:00000001`,
		"",
		"",
	}, "\r\n"), output)
}

func TestExportCommand_Args(t *testing.T) {
	useMemory(t)
	resetExportFlags(t)
	seedKey(t, `HKCU\Software\App`, nil)

	assert.ErrorContains(t, runExport([]string{`HKCU\Software\App`}), "must specify output file")
	exportStdout = true
	assert.ErrorContains(t, runExport([]string{`HKCU\Software\App`, "x.reg"}), "cannot specify both")
	exportEncoding = "ebcdic"
	assert.ErrorContains(t, runExport([]string{`HKCU\Software\App`}), "unknown encoding")
}

func TestExportImport_RoundTrip(t *testing.T) {
	useMemory(t)
	resetExportFlags(t)
	seedKey(t, `HKCU\Software\App\Sub`, map[string]any{"list": []string{"a", "b"}})
	seedKey(t, `HKCU\Software\App`, map[string]any{"v": "x"})

	file := filepath.Join(t.TempDir(), "app.reg")
	_, err := captureOutput(t, func() error { return runExport([]string{`HKCU\Software\App`, file}) })
	require.NoError(t, err)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xFE}, data[:2])

	// Into a fresh registry at the recorded paths.
	useMemory(t)
	output, err := captureOutput(t, func() error { return runImport([]string{file}) })
	require.NoError(t, err)
	assertContains(t, output, []string{"Applied"})
	got, err := pathOf(t, `HKEY_CURRENT_USER\Software\App\Sub`).Values().Get("list")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	// And rebased below another key.
	importInto = `HKLM\SOFTWARE\Restored`
	_, err = captureOutput(t, func() error { return runImport([]string{file}) })
	require.NoError(t, err)
	v, err := pathOf(t, `HKLM\SOFTWARE\Restored`).Values().Get("v")
	require.NoError(t, err)
	assert.Equal(t, "x", v)
	assert.True(t, pathOf(t, `HKLM\SOFTWARE\Restored\Sub`).Exists())
}

func TestImportCommand_Deletes(t *testing.T) {
	useMemory(t)
	resetExportFlags(t)
	seedKey(t, `HKCU\Software\Old\Child`, nil)
	seedKey(t, `HKLM\SOFTWARE\App`, map[string]any{"drop": "1", "keep": "2"})

	file := filepath.Join(t.TempDir(), "changes.reg")
	require.NoError(t, os.WriteFile(file, []byte(strings.Join([]string{
		"Windows Registry Editor Version 5.00",
		"",
		`[-HKEY_CURRENT_USER\Software\Old]`,
		"",
		`[HKEY_LOCAL_MACHINE\SOFTWARE\App]`,
		`"drop"=-`,
		`"new"=dword:00000007`,
		"",
	}, "\r\n")), 0o644))

	_, err := captureOutput(t, func() error { return runImport([]string{file}) })
	require.NoError(t, err)

	assert.False(t, pathOf(t, `HKCU\Software\Old`).Exists())
	vals := pathOf(t, `HKLM\SOFTWARE\App`).Values()
	ok, err := vals.Contains("drop")
	require.NoError(t, err)
	assert.False(t, ok)
	n, err := vals.Get("new")
	require.NoError(t, err)
	assert.Equal(t, uint32(7), n)

	_, err = captureOutput(t, func() error { return runImport([]string{filepath.Join(t.TempDir(), "absent.reg")}) })
	assert.Error(t, err)
}

func TestSaveLoadCommands(t *testing.T) {
	useMemory(t)
	seedKey(t, `HKCU\Software\App\Sub`, map[string]any{"n": uint32(9)})

	file := filepath.Join(t.TempDir(), "app.hiv")
	_, err := captureOutput(t, func() error { return runSave([]string{`HKCU\Software\App`, file}) })
	require.NoError(t, err)

	// The file must not exist yet.
	_, err = captureOutput(t, func() error { return runSave([]string{`HKCU\Software\App`, file}) })
	assert.Error(t, err)

	_, err = captureOutput(t, func() error { return runLoad([]string{"HKU", "Mounted", file}) })
	require.NoError(t, err)
	got, err := pathOf(t, `HKEY_USERS\Mounted\Sub`).Values().Get("n")
	require.NoError(t, err)
	assert.Equal(t, uint32(9), got)
}
