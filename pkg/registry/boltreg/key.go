package boltreg

import (
	"fmt"
	"slices"
	"strings"

	bolt "go.etcd.io/bbolt"

	"github.com/joshuapare/regpath/internal/regtext"
	"github.com/joshuapare/regpath/pkg/types"
)

// key is a handle onto a key bucket, addressed by its root and folded path.
// A handle whose bucket has gone reports ErrKeyDeleted. Handles are not safe
// for concurrent use; the database is.
type key struct {
	reg        *Registry
	root       string
	path       []string
	access     types.Access
	predefined bool
	closed     bool
}

var _ types.Key = (*key)(nil)

func (k *key) String() string {
	return strings.Join(append([]string{k.root}, k.path...), `\`)
}

func (k *key) check(op string, want types.Access) error {
	if k.closed {
		return types.Wrap(types.ErrKindState, types.ErrClosed, "%s", op)
	}
	if !k.access.Covers(want) {
		return types.Errorf(types.ErrKindAccessDenied, "%s %s: handle has %s, needs %s", op, k, k.access, want)
	}
	return nil
}

// bucket resolves the handle inside tx, nil when the key is gone.
func (k *key) bucket(tx *bolt.Tx) *bolt.Bucket {
	rb := tx.Bucket([]byte(k.root))
	if rb == nil {
		return nil
	}
	b, n := descend(rb, k.path)
	if n != len(k.path) {
		return nil
	}
	return b
}

func (k *key) deleted(op string) error {
	return types.Errorf(types.ErrKindKeyDeleted, "%s %s: key has been deleted", op, k)
}

func (k *key) view(op string, want types.Access, fn func(b *bolt.Bucket) error) error {
	if err := k.check(op, want); err != nil {
		return err
	}
	return k.reg.db.View(func(tx *bolt.Tx) error {
		b := k.bucket(tx)
		if b == nil {
			return k.deleted(op)
		}
		return fn(b)
	})
}

func (k *key) update(op string, want types.Access, fn func(tx *bolt.Tx, b *bolt.Bucket) error) error {
	if err := k.check(op, want); err != nil {
		return err
	}
	return k.reg.db.Update(func(tx *bolt.Tx) error {
		b := k.bucket(tx)
		if b == nil {
			return k.deleted(op)
		}
		return fn(tx, b)
	})
}

func (k *key) sub(folded []string, access types.Access) *key {
	return &key{reg: k.reg, root: k.root, path: append(slices.Clone(k.path), folded...), access: access}
}

func (k *key) Close() error {
	if k.predefined {
		return nil
	}
	if k.closed {
		return types.Wrap(types.ErrKindState, types.ErrClosed, "close")
	}
	k.closed = true
	return nil
}

func (k *key) OpenKey(subpath string, access types.Access) (types.Key, error) {
	folded := foldAll(splitPath(subpath))
	err := k.view("open", 0, func(b *bolt.Bucket) error {
		if _, n := descend(b, folded); n != len(folded) {
			return types.Errorf(types.ErrKindNotFound, "open %s: key not found", subpath)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return k.sub(folded, access), nil
}

func (k *key) CreateKey(subpath string, access types.Access) (types.Key, error) {
	segs := splitPath(subpath)
	folded := foldAll(segs)
	err := k.update("create", 0, func(_ *bolt.Tx, b *bolt.Bucket) error {
		b, n := descend(b, folded)
		if n == len(folded) {
			return nil
		}
		if err := k.check("create", types.KEY_CREATE_SUB_KEY); err != nil {
			return err
		}
		now := k.reg.now()
		for i := n; i < len(segs); i++ {
			c, err := b.Bucket(bucketKeys).CreateBucket([]byte(folded[i]))
			if err != nil {
				return fmt.Errorf("create %s: %w", segs[i], err)
			}
			if err := initKeyBucket(c, segs[i], now); err != nil {
				return err
			}
			if err := touch(b, now); err != nil {
				return err
			}
			b = c
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return k.sub(folded, access), nil
}

func (k *key) Info() (types.KeyInfo, error) {
	var info types.KeyInfo
	err := k.view("query info", types.KEY_QUERY_VALUE, func(b *bolt.Bucket) error {
		info = types.KeyInfo{
			SubkeyN:   childCount(b),
			ValueN:    valueCount(b),
			LastWrite: mtime(b),
		}
		return nil
	})
	return info, err
}

func (k *key) EnumKey(index int) (string, error) {
	var name string
	err := k.view("enum key", types.KEY_ENUMERATE_SUB_KEYS, func(b *bolt.Bucket) error {
		names := childNames(b)
		if index < 0 || index >= len(names) {
			return types.Wrap(types.ErrKindNoMoreItems, types.ErrNoMoreItems, "enum key %d", index)
		}
		name = names[index]
		return nil
	})
	return name, err
}

func (k *key) EnumValue(index int) (types.RawValue, error) {
	var v types.RawValue
	err := k.view("enum value", types.KEY_QUERY_VALUE, func(b *bolt.Bucket) error {
		recs, err := records(b)
		if err != nil {
			return err
		}
		if index < 0 || index >= len(recs) {
			return types.Wrap(types.ErrKindNoMoreItems, types.ErrNoMoreItems, "enum value %d", index)
		}
		v = recs[index].raw
		return nil
	})
	return v, err
}

func (k *key) GetValue(name string) (types.RawValue, error) {
	var v types.RawValue
	err := k.view("query value", types.KEY_QUERY_VALUE, func(b *bolt.Bucket) error {
		data := b.Bucket(bucketVals).Get(valueKey(name))
		if data == nil {
			return types.Errorf(types.ErrKindNotFound, "query value %q: not found", name)
		}
		r, err := decodeRecord(data)
		if err != nil {
			return err
		}
		v = r.raw
		return nil
	})
	return v, err
}

func (k *key) SetValue(name string, typ types.RegType, data []byte) error {
	return k.update("set value", types.KEY_SET_VALUE, func(_ *bolt.Tx, b *bolt.Bucket) error {
		return putValue(b, name, typ, data, k.reg.now())
	})
}

func (k *key) DeleteValue(name string) error {
	return k.update("delete value", types.KEY_SET_VALUE, func(_ *bolt.Tx, b *bolt.Bucket) error {
		vals := b.Bucket(bucketVals)
		vk := valueKey(name)
		if vals.Get(vk) == nil {
			return types.Errorf(types.ErrKindNotFound, "delete value %q: not found", name)
		}
		if err := vals.Delete(vk); err != nil {
			return err
		}
		return touch(b, k.reg.now())
	})
}

func (k *key) DeleteKey() error {
	return k.DeleteKeyEx(0)
}

// DeleteKeyEx ignores the view: a database file has a single view.
func (k *key) DeleteKeyEx(types.View) error {
	return k.update("delete key", types.DELETE, func(tx *bolt.Tx, b *bolt.Bucket) error {
		if len(k.path) == 0 {
			return types.Errorf(types.ErrKindAccessDenied, "delete key %s: cannot delete a root", k)
		}
		if n := childCount(b); n > 0 {
			return types.Errorf(types.ErrKindKeyNotEmpty, "delete key %s: key has %d subkeys", k, n)
		}
		parent := (&key{root: k.root, path: k.path[:len(k.path)-1]}).bucket(tx)
		if err := parent.Bucket(bucketKeys).DeleteBucket([]byte(k.path[len(k.path)-1])); err != nil {
			return err
		}
		return touch(parent, k.reg.now())
	})
}

func (k *key) Flush() error {
	if err := k.view("flush", 0, func(*bolt.Bucket) error { return nil }); err != nil {
		return err
	}
	return k.reg.db.Sync()
}

func (k *key) CopyTree(dst types.Key) types.Status {
	d, ok := dst.(*key)
	if !ok || d.reg != k.reg {
		return types.StatusInvalidHandle
	}
	if st := k.status(types.KEY_QUERY_VALUE | types.KEY_ENUMERATE_SUB_KEYS); st != types.StatusSuccess {
		return st
	}
	if st := d.status(types.KEY_SET_VALUE | types.KEY_CREATE_SUB_KEY); st != types.StatusSuccess {
		return st
	}
	if k.root == d.root && len(d.path) >= len(k.path) && slices.Equal(d.path[:len(k.path)], k.path) {
		return types.StatusInvalidParam
	}

	status := types.StatusSuccess
	err := k.reg.db.Update(func(tx *bolt.Tx) error {
		src, target := k.bucket(tx), d.bucket(tx)
		if src == nil || target == nil {
			status = types.StatusKeyDeleted
			return nil
		}
		return copyBucket(src, target, k.reg.now())
	})
	if err != nil {
		return types.StatusNotRegistryKey
	}
	return status
}

func (k *key) DeleteTree() types.Status {
	if st := k.status(types.DELETE | types.KEY_ENUMERATE_SUB_KEYS | types.KEY_QUERY_VALUE); st != types.StatusSuccess {
		return st
	}
	status := types.StatusSuccess
	err := k.reg.db.Update(func(tx *bolt.Tx) error {
		b := k.bucket(tx)
		if b == nil {
			status = types.StatusKeyDeleted
			return nil
		}
		for _, name := range [][]byte{bucketKeys, bucketVals} {
			if err := b.DeleteBucket(name); err != nil {
				return err
			}
		}
		return initKeyBucket(b, string(b.Get(keyName)), k.reg.now())
	})
	if err != nil {
		return types.StatusNotRegistryKey
	}
	return status
}

// status is check for the native bulk operations, which report a status
// code instead of an error.
func (k *key) status(want types.Access) types.Status {
	switch {
	case k.closed:
		return types.StatusInvalidHandle
	case !k.access.Covers(want):
		return types.StatusAccessDenied
	default:
		return types.StatusSuccess
	}
}

// SaveHive writes the subtree as .reg text whose first section is the key's
// own name.
func (k *key) SaveHive(file string) error {
	var name string
	err := k.view("save hive", 0, func(b *bolt.Bucket) error {
		name = string(b.Get(keyName))
		return nil
	})
	if err != nil {
		return err
	}
	return regtext.SaveHive(k.reg.fs, k.sub(nil, types.KEY_READ), name, file)
}

// LoadHive creates subkey below k from a file written by SaveHive.
func (k *key) LoadHive(subkey, file string) error {
	if err := k.check("load hive", 0); err != nil {
		return err
	}
	return regtext.LoadHive(k.reg.fs, k.sub(nil, types.KEY_ALL_ACCESS), subkey, file)
}
