package regpath

import (
	"errors"
	"iter"

	"github.com/joshuapare/regpath/internal/codec"
	"github.com/joshuapare/regpath/pkg/types"
)

// deleteAccess is what the single-key deletes open with. It includes the
// write rights, so a missing key is created before it is removed.
const deleteAccess = types.KEY_WRITE | types.DELETE

// CreateKey creates the key (and any missing parents) and returns a handle
// the caller owns. The Path's own cached handle is not touched.
func (p *Path) CreateKey() (types.Key, error) {
	root, err := p.RootKey()
	if err != nil {
		return nil, err
	}
	return root.CreateKey(p.addr.Subpath(), types.KEY_WRITE)
}

// OpenKey opens the key and returns a handle the caller owns.
func (p *Path) OpenKey(access types.Access) (types.Key, error) {
	root, err := p.RootKey()
	if err != nil {
		return nil, err
	}
	return root.OpenKey(p.addr.Subpath(), access)
}

// EnumKey yields child key names. The count is queried before every read,
// so keys added or removed while iterating change where it stops.
func (p *Path) EnumKey() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		h, err := p.Open(types.KEY_READ)
		if err != nil {
			yield("", err)
			return
		}
		for i := 0; ; i++ {
			info, err := h.Info()
			if err != nil {
				yield("", err)
				return
			}
			if i >= info.SubkeyN {
				return
			}
			name, err := h.EnumKey(i)
			if errors.Is(err, types.ErrNoMoreItems) {
				return
			}
			if err != nil {
				yield("", err)
				return
			}
			if !yield(name, nil) {
				return
			}
		}
	}
}

// EnumValue yields the raw values of the key. The default value, when set,
// has an empty name.
func (p *Path) EnumValue() iter.Seq2[types.RawValue, error] {
	return func(yield func(types.RawValue, error) bool) {
		h, err := p.Open(types.KEY_READ)
		if err != nil {
			yield(types.RawValue{}, err)
			return
		}
		for i := 0; ; i++ {
			info, err := h.Info()
			if err != nil {
				yield(types.RawValue{}, err)
				return
			}
			if i >= info.ValueN {
				return
			}
			v, err := h.EnumValue(i)
			if errors.Is(err, types.ErrNoMoreItems) {
				return
			}
			if err != nil {
				yield(types.RawValue{}, err)
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}

// DeleteKey removes the key. It fails with ErrKeyNotEmpty while subkeys remain.
func (p *Path) DeleteKey() error {
	h, err := p.Open(deleteAccess)
	if err != nil {
		return err
	}
	return h.DeleteKey()
}

// DeleteKeyEx removes the key from the given registry view
// (KEY_WOW64_64KEY or KEY_WOW64_32KEY).
func (p *Path) DeleteKeyEx(view types.View) error {
	h, err := p.Open(deleteAccess)
	if err != nil {
		return err
	}
	return h.DeleteKeyEx(view)
}

// DeleteValue removes a named value.
func (p *Path) DeleteValue(name string) error {
	h, err := p.Open(types.KEY_WRITE)
	if err != nil {
		return err
	}
	return h.DeleteValue(name)
}

// Flush writes the key to the backing store. Without an open handle there
// is nothing to flush.
func (p *Path) Flush() error {
	if p.s.handle == nil {
		return nil
	}
	return p.s.handle.Flush()
}

// LoadHive creates subkey below this key from a hive file.
func (p *Path) LoadHive(subkey, file string) error {
	h, err := p.Open(types.KEY_WRITE)
	if err != nil {
		return err
	}
	return h.LoadHive(subkey, file)
}

// SaveHive writes this key and its subtree to a hive file, which must not
// exist yet.
func (p *Path) SaveHive(file string) error {
	h, err := p.Open(types.KEY_READ)
	if err != nil {
		return err
	}
	return h.SaveHive(file)
}

// KeyInfo reports subkey count, value count and last-write time.
func (p *Path) KeyInfo() (types.KeyInfo, error) {
	h, err := p.Open(types.KEY_READ)
	if err != nil {
		return types.KeyInfo{}, err
	}
	return h.Info()
}

// QueryValue reads a named value and decodes it by its registry type.
func (p *Path) QueryValue(name string) (any, types.RegType, error) {
	raw, err := p.QueryRawValue(name)
	if err != nil {
		return nil, 0, err
	}
	v, err := codec.Decode(raw.Type, raw.Data)
	if err != nil {
		return nil, raw.Type, err
	}
	return v, raw.Type, nil
}

// QueryRawValue reads a named value without decoding it.
func (p *Path) QueryRawValue(name string) (types.RawValue, error) {
	h, err := p.Open(types.KEY_READ)
	if err != nil {
		return types.RawValue{}, err
	}
	return h.GetValue(name)
}

// QueryDefaultValue reads the default value as a string. An unset default
// value reads as "".
func (p *Path) QueryDefaultValue() (string, error) {
	v, _, err := p.QueryValue("")
	if errors.Is(err, types.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case nil:
		return "", nil
	default:
		return "", types.Errorf(types.ErrKindInvalidValue, "%s: default value is not a string", p)
	}
}

// SetDefaultValue writes the default value as REG_SZ.
func (p *Path) SetDefaultValue(value string) error {
	return p.SetValue("", types.REG_SZ, value)
}

// SetValue encodes value as typ and writes it. value must be the Go type
// QueryValue returns for typ, or []byte for types without a mapping.
func (p *Path) SetValue(name string, typ types.RegType, value any) error {
	data, err := codec.Encode(typ, value)
	if err != nil {
		return err
	}
	return p.SetRawValue(name, typ, data)
}

// SetRawValue writes an already encoded value.
func (p *Path) SetRawValue(name string, typ types.RegType, data []byte) error {
	h, err := p.Open(types.KEY_WRITE)
	if err != nil {
		return err
	}
	return h.SetValue(name, typ, data)
}
