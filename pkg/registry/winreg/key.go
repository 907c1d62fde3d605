//go:build windows

package winreg

import (
	"errors"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"github.com/joshuapare/regpath/pkg/types"
)

// key wraps an HKEY. name is for error messages only.
type key struct {
	h          registry.Key
	name       string
	predefined bool
	closed     bool
}

var _ types.Key = (*key)(nil)

func (k *key) handle() windows.Handle { return windows.Handle(k.h) }

func (k *key) live(op string) error {
	if k.closed {
		return types.Wrap(types.ErrKindState, types.ErrClosed, "%s %s", op, k.name)
	}
	return nil
}

func (k *key) join(subpath string) string {
	if subpath == "" {
		return k.name
	}
	return k.name + `\` + subpath
}

func (k *key) Close() error {
	if k.predefined {
		return nil
	}
	if err := k.live("close"); err != nil {
		return err
	}
	k.closed = true
	return classify(k.h.Close(), "close %s", k.name)
}

func (k *key) OpenKey(subpath string, access types.Access) (types.Key, error) {
	if err := k.live("open"); err != nil {
		return nil, err
	}
	h, err := registry.OpenKey(k.h, subpath, uint32(access))
	if err != nil {
		return nil, classify(err, "open %s", k.join(subpath))
	}
	return &key{h: h, name: k.join(subpath)}, nil
}

func (k *key) CreateKey(subpath string, access types.Access) (types.Key, error) {
	if err := k.live("create"); err != nil {
		return nil, err
	}
	h, _, err := registry.CreateKey(k.h, subpath, uint32(access))
	if err != nil {
		return nil, classify(err, "create %s", k.join(subpath))
	}
	return &key{h: h, name: k.join(subpath)}, nil
}

func (k *key) Info() (types.KeyInfo, error) {
	if err := k.live("query info"); err != nil {
		return types.KeyInfo{}, err
	}
	st, err := k.h.Stat()
	if err != nil {
		return types.KeyInfo{}, classify(err, "query info %s", k.name)
	}
	return types.KeyInfo{
		SubkeyN:   int(st.SubKeyCount),
		ValueN:    int(st.ValueCount),
		LastWrite: st.ModTime(),
	}, nil
}

func (k *key) EnumKey(index int) (string, error) {
	if err := k.live("enum key"); err != nil {
		return "", err
	}
	buf := make([]uint16, maxKeyNameLen+1)
	n := uint32(len(buf))
	err := windows.RegEnumKeyEx(k.handle(), uint32(index), &buf[0], &n, nil, nil, nil, nil)
	if err != nil {
		return "", classify(err, "enum key %s[%d]", k.name, index)
	}
	return windows.UTF16ToString(buf[:n]), nil
}

func (k *key) EnumValue(index int) (types.RawValue, error) {
	if err := k.live("enum value"); err != nil {
		return types.RawValue{}, err
	}
	st, err := k.h.Stat()
	if err != nil {
		return types.RawValue{}, classify(err, "enum value %s[%d]", k.name, index)
	}
	name := make([]uint16, st.MaxValueNameLen+1)
	data := make([]byte, st.MaxValueLen)
	for {
		nameLen, dataLen := uint32(len(name)), uint32(len(data))
		var typ uint32
		var dataPtr *byte
		if len(data) > 0 {
			dataPtr = &data[0]
		}
		r, _, _ := procRegEnumValueW.Call(uintptr(k.h), uintptr(index),
			uintptr(unsafe.Pointer(&name[0])), uintptr(unsafe.Pointer(&nameLen)), 0,
			uintptr(unsafe.Pointer(&typ)), uintptr(unsafe.Pointer(dataPtr)), uintptr(unsafe.Pointer(&dataLen)))
		err := lstatus(r)
		if errors.Is(err, errMoreData) {
			// The value grew since Stat.
			name = make([]uint16, 2*len(name))
			data = make([]byte, 2*len(data)+int(dataLen))
			continue
		}
		if err != nil {
			return types.RawValue{}, classify(err, "enum value %s[%d]", k.name, index)
		}
		return types.RawValue{
			Name: windows.UTF16ToString(name[:nameLen]),
			Type: types.RegType(typ),
			Data: append([]byte(nil), data[:dataLen]...),
		}, nil
	}
}

func (k *key) GetValue(name string) (types.RawValue, error) {
	if err := k.live("query value"); err != nil {
		return types.RawValue{}, err
	}
	n, _, err := k.h.GetValue(name, nil)
	for err == nil {
		buf := make([]byte, n)
		var typ uint32
		n, typ, err = k.h.GetValue(name, buf)
		if err == nil {
			return types.RawValue{Name: name, Type: types.RegType(typ), Data: buf[:n]}, nil
		}
		if errors.Is(err, errMoreData) {
			// Grew between the two reads; n is the new size.
			err = nil
		}
	}
	return types.RawValue{}, classify(err, "query value %s %q", k.name, name)
}

func (k *key) SetValue(name string, typ types.RegType, data []byte) error {
	if err := k.live("set value"); err != nil {
		return err
	}
	p, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return types.Wrap(types.ErrKindInvalidValue, err, "set value %q", name)
	}
	var dataPtr *byte
	if len(data) > 0 {
		dataPtr = &data[0]
	}
	r, _, _ := procRegSetValueExW.Call(uintptr(k.h), uintptr(unsafe.Pointer(p)), 0,
		uintptr(typ), uintptr(unsafe.Pointer(dataPtr)), uintptr(len(data)))
	return classify(lstatus(r), "set value %s %q", k.name, name)
}

func (k *key) DeleteValue(name string) error {
	if err := k.live("delete value"); err != nil {
		return err
	}
	return classify(k.h.DeleteValue(name), "delete value %s %q", k.name, name)
}

func (k *key) DeleteKey() error {
	return k.DeleteKeyEx(0)
}

// DeleteKeyEx deletes the key the handle refers to (RegDeleteKeyEx with an
// empty subkey).
func (k *key) DeleteKeyEx(view types.View) error {
	if err := k.live("delete key"); err != nil {
		return err
	}
	empty, _ := windows.UTF16PtrFromString("")
	r, _, _ := procRegDeleteKeyExW.Call(uintptr(k.h), uintptr(unsafe.Pointer(empty)), uintptr(view), 0)
	return classify(lstatus(r), "delete key %s", k.name)
}

func (k *key) Flush() error {
	if err := k.live("flush"); err != nil {
		return err
	}
	r, _, _ := procRegFlushKey.Call(uintptr(k.h))
	return classify(lstatus(r), "flush %s", k.name)
}

func (k *key) LoadHive(subkey, file string) error {
	if err := k.live("load hive"); err != nil {
		return err
	}
	sp, err := windows.UTF16PtrFromString(subkey)
	if err != nil {
		return types.Wrap(types.ErrKindInvalidValue, err, "load hive %q", subkey)
	}
	fp, err := windows.UTF16PtrFromString(file)
	if err != nil {
		return types.Wrap(types.ErrKindInvalidValue, err, "load hive %q", file)
	}
	r, _, _ := procRegLoadKeyW.Call(uintptr(k.h), uintptr(unsafe.Pointer(sp)), uintptr(unsafe.Pointer(fp)))
	return classify(lstatus(r), "load hive %s from %s", k.join(subkey), file)
}

func (k *key) SaveHive(file string) error {
	if err := k.live("save hive"); err != nil {
		return err
	}
	fp, err := windows.UTF16PtrFromString(file)
	if err != nil {
		return types.Wrap(types.ErrKindInvalidValue, err, "save hive %q", file)
	}
	r, _, _ := procRegSaveKeyW.Call(uintptr(k.h), uintptr(unsafe.Pointer(fp)), 0)
	return classify(lstatus(r), "save hive %s to %s", k.name, file)
}

func (k *key) CopyTree(dst types.Key) types.Status {
	d, ok := dst.(*key)
	if !ok || k.closed || d.closed {
		return types.StatusInvalidHandle
	}
	r, _, _ := procRegCopyTreeW.Call(uintptr(k.h), 0, uintptr(d.h))
	return types.Status(r)
}

func (k *key) DeleteTree() types.Status {
	if k.closed {
		return types.StatusInvalidHandle
	}
	r, _, _ := procRegDeleteTreeW.Call(uintptr(k.h), 0)
	return types.Status(r)
}
