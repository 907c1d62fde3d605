package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regpath/internal/config"
	"github.com/joshuapare/regpath/pkg/registry/boltreg"
	"github.com/joshuapare/regpath/pkg/registry/memreg"
	"github.com/joshuapare/regpath/pkg/types"
)

func TestOpenRegistry(t *testing.T) {
	r, closer, err := openRegistry(&config.Config{Backend: config.BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &memreg.Registry{}, r)
	assert.Nil(t, closer)

	db := filepath.Join(t.TempDir(), "reg.db")
	r, closer, err = openRegistry(&config.Config{Backend: config.BackendBolt, Database: db})
	require.NoError(t, err)
	assert.IsType(t, &boltreg.Registry{}, r)
	require.NoError(t, closer())
	_, err = os.Stat(db)
	assert.NoError(t, err)

	_, _, err = openRegistry(&config.Config{Backend: config.BackendBolt, Database: filepath.Join(t.TempDir(), "no", "such", "dir", "reg.db")})
	assert.Error(t, err)
}

func TestSetup_ConfigAndFlags(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "reg.db")
	cfgFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("backend: bolt\ndatabase: "+db+"\nremote: ''\n"), 0o644))

	configFile = cfgFile
	t.Cleanup(func() { configFile, remote = "", "" })

	require.NoError(t, setup(versionCmd, nil))
	assert.IsType(t, &boltreg.Registry{}, reg)

	// Writes persist through the bolt file across invocations.
	seedKey(t, `HKCU\Software\Persisted`, map[string]any{"v": "1"})
	require.NoError(t, teardown(versionCmd, nil))
	assert.Nil(t, closeRegistry)

	require.NoError(t, setup(versionCmd, nil))
	assert.True(t, pathOf(t, `HKCU\Software\Persisted`).Exists())
	require.NoError(t, teardown(versionCmd, nil))

	require.NoError(t, os.WriteFile(cfgFile, []byte("backend: bolt\n"), 0o644))
	assert.ErrorContains(t, setup(versionCmd, nil), "database path")
}

func TestResolve_Remote(t *testing.T) {
	useMemory(t)
	reg = memreg.New(memreg.WithRemote(`\\far`, memreg.New()))

	remote = "far"
	t.Cleanup(func() { remote = "" })

	p, err := resolve(`HKLM\SOFTWARE\X`)
	require.NoError(t, err)
	defer p.Close()
	assert.Equal(t, `\\far\HKLM\SOFTWARE\X`, p.String())
	require.NoError(t, p.MakeKey(types.KEY_WRITE, true))

	explicit, err := resolve(`\\far\HKLM\SOFTWARE`)
	require.NoError(t, err)
	defer explicit.Close()
	assert.Equal(t, `\\far\HKLM\SOFTWARE`, explicit.String())
	assert.True(t, explicit.Exists())

	remote = ""
	q, err := resolve(`HKLM\SOFTWARE\X`)
	require.NoError(t, err)
	defer q.Close()
	assert.False(t, q.Exists())
}

func TestVersionCommand(t *testing.T) {
	output, err := captureOutput(t, func() error {
		versionCmd.Run(versionCmd, nil)
		return nil
	})
	require.NoError(t, err)
	assertContains(t, output, []string{"regctl dev", "commit: none"})
}
