package memreg

import (
	"github.com/joshuapare/regpath/internal/regtext"
	"github.com/joshuapare/regpath/pkg/types"
)

// SaveHive writes the subtree as .reg text whose first section is the key's
// own name.
func (k *key) SaveHive(file string) error {
	k.reg.mu.Lock()
	err := k.check("save hive", 0)
	name := k.node.name
	k.reg.mu.Unlock()
	if err != nil {
		return err
	}

	// The export walks through handle methods, which take the lock themselves.
	src, err := k.OpenKey("", types.KEY_READ)
	if err != nil {
		return err
	}
	defer src.Close()
	return regtext.SaveHive(k.reg.fs, src, name, file)
}

// LoadHive creates subkey below k from a file written by SaveHive.
func (k *key) LoadHive(subkey, file string) error {
	base, err := k.OpenKey("", types.KEY_ALL_ACCESS)
	if err != nil {
		return err
	}
	defer base.Close()
	return regtext.LoadHive(k.reg.fs, base, subkey, file)
}
