package boltreg

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regpath/pkg/types"
)

func open(t *testing.T, opts ...Option) *Registry {
	t.Helper()
	r, err := Open(filepath.Join(t.TempDir(), "registry.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func hkcu(t *testing.T, r *Registry) types.Key {
	t.Helper()
	k, err := r.Root(types.HKEY_CURRENT_USER)
	require.NoError(t, err)
	return k
}

func create(t *testing.T, parent types.Key, path string) types.Key {
	t.Helper()
	k, err := parent.CreateKey(path, types.KEY_ALL_ACCESS)
	require.NoError(t, err)
	return k
}

func TestPersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.db")
	r, err := Open(path)
	require.NoError(t, err)
	k := create(t, hkcu(t, r), `Software\Vendor`)
	require.NoError(t, k.SetValue("Name", types.REG_SZ, []byte{'v', 0, 0, 0}))
	require.NoError(t, k.Flush())
	require.NoError(t, r.Close())

	r, err = Open(path)
	require.NoError(t, err)
	defer r.Close()
	k, err = hkcu(t, r).OpenKey(`SOFTWARE\vendor`, types.KEY_READ)
	require.NoError(t, err)
	v, err := k.GetValue("name")
	require.NoError(t, err)
	assert.Equal(t, types.RawValue{Name: "Name", Type: types.REG_SZ, Data: []byte{'v', 0, 0, 0}}, v)
}

func TestEnumAndInfo(t *testing.T) {
	clock := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	r := open(t, WithClock(func() time.Time { return clock }))
	k := create(t, hkcu(t, r), "Parent")
	for _, n := range []string{"beta", "Alpha", "gamma"} {
		create(t, k, n)
	}
	require.NoError(t, k.SetValue("z", types.REG_DWORD, []byte{1, 0, 0, 0}))
	require.NoError(t, k.SetValue("", types.REG_SZ, []byte{0, 0}))
	require.NoError(t, k.SetValue("Z", types.REG_QWORD, make([]byte, 8)))

	var names []string
	for i := 0; ; i++ {
		n, err := k.EnumKey(i)
		if err != nil {
			assert.ErrorIs(t, err, types.ErrNoMoreItems)
			break
		}
		names = append(names, n)
	}
	assert.Equal(t, []string{"Alpha", "beta", "gamma"}, names)

	first, err := k.EnumValue(0)
	require.NoError(t, err)
	assert.Equal(t, types.RawValue{Name: "z", Type: types.REG_QWORD, Data: make([]byte, 8)}, first)
	def, err := k.EnumValue(1)
	require.NoError(t, err)
	assert.Equal(t, "", def.Name)
	_, err = k.EnumValue(2)
	assert.ErrorIs(t, err, types.ErrNoMoreItems)

	info, err := k.Info()
	require.NoError(t, err)
	assert.Equal(t, 3, info.SubkeyN)
	assert.Equal(t, 2, info.ValueN)
	assert.True(t, clock.Equal(info.LastWrite))
}

func TestDeleteValue(t *testing.T) {
	r := open(t)
	k := create(t, hkcu(t, r), "V")
	require.NoError(t, k.SetValue("x", types.REG_BINARY, []byte{1}))
	require.NoError(t, k.DeleteValue("X"))
	assert.ErrorIs(t, k.DeleteValue("x"), types.ErrNotFound)
	_, err := k.GetValue("x")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestAccessAndLifecycle(t *testing.T) {
	r := open(t)
	root := hkcu(t, r)
	parent := create(t, root, "P")
	child := create(t, parent, "C")

	ro, err := root.OpenKey("P", types.KEY_READ)
	require.NoError(t, err)
	assert.ErrorIs(t, ro.SetValue("x", types.REG_SZ, nil), types.ErrAccessDenied)
	_, err = ro.CreateKey("New", types.KEY_READ)
	assert.ErrorIs(t, err, types.ErrAccessDenied)

	assert.ErrorIs(t, parent.DeleteKey(), types.ErrKeyNotEmpty)
	require.NoError(t, child.DeleteKey())
	_, err = child.Info()
	assert.ErrorIs(t, err, types.ErrKeyDeleted)
	require.NoError(t, parent.DeleteKey())
	_, err = root.OpenKey("P", types.KEY_READ)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.ErrorIs(t, root.DeleteKey(), types.ErrAccessDenied)

	require.NoError(t, ro.Close())
	assert.ErrorIs(t, ro.Close(), types.ErrClosed)
	require.NoError(t, root.Close())
	require.NoError(t, root.Close())
}

func TestCopyAndDeleteTree(t *testing.T) {
	r := open(t)
	root := hkcu(t, r)
	src := create(t, root, "Src")
	require.NoError(t, src.SetValue("v", types.REG_DWORD, []byte{7, 0, 0, 0}))
	deep := create(t, src, `Sub\Deeper`)
	require.NoError(t, deep.SetValue("w", types.REG_SZ, []byte{'a', 0, 0, 0}))

	dst := create(t, root, "Dst")
	assert.Equal(t, types.StatusSuccess, src.CopyTree(dst))
	copied, err := root.OpenKey(`Dst\Sub\Deeper`, types.KEY_READ)
	require.NoError(t, err)
	w, err := copied.GetValue("w")
	require.NoError(t, err)
	assert.Equal(t, []byte{'a', 0, 0, 0}, w.Data)

	assert.Equal(t, types.StatusInvalidParam, src.CopyTree(create(t, src, "Inside")))
	assert.Equal(t, types.StatusInvalidHandle, src.CopyTree(create(t, hkcu(t, open(t)), "Other")))

	assert.Equal(t, types.StatusSuccess, src.DeleteTree())
	info, err := src.Info()
	require.NoError(t, err)
	assert.Equal(t, types.KeyInfo{LastWrite: info.LastWrite}, info)
	_, err = deep.Info()
	assert.ErrorIs(t, err, types.ErrKeyDeleted)

	ro, err := root.OpenKey("Dst", types.KEY_READ)
	require.NoError(t, err)
	assert.Equal(t, types.StatusAccessDenied, ro.DeleteTree())
}

func TestSaveLoadHive(t *testing.T) {
	fs := memfs.New()
	r := open(t, WithFilesystem(fs))
	app := create(t, hkcu(t, r), `Software\App`)
	require.NoError(t, app.SetValue("Items", types.REG_MULTI_SZ, []byte{'a', 0, 0, 0, 0, 0}))
	create(t, app, "Empty")

	require.NoError(t, app.SaveHive("app.reg"))

	users, err := r.Root(types.HKEY_USERS)
	require.NoError(t, err)
	require.NoError(t, users.LoadHive("Copy", "app.reg"))

	k, err := users.OpenKey("Copy", types.KEY_READ)
	require.NoError(t, err)
	v, err := k.GetValue("Items")
	require.NoError(t, err)
	assert.Equal(t, types.REG_MULTI_SZ, v.Type)
	assert.Equal(t, []byte{'a', 0, 0, 0, 0, 0}, v.Data)
	_, err = k.OpenKey("Empty", types.KEY_READ)
	assert.NoError(t, err)
}

func TestRemoteUnsupported(t *testing.T) {
	r := open(t)
	_, err := r.ConnectRemote(`\\host`, types.HKEY_LOCAL_MACHINE)
	assert.ErrorIs(t, err, types.ErrUnsupported)
	_, err = r.Root(types.RootKey(7))
	assert.ErrorIs(t, err, types.ErrUnknownRoot)
}
