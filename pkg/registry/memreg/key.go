package memreg

import (
	"github.com/joshuapare/regpath/pkg/types"
)

// key is a handle onto a node.
type key struct {
	reg        *Registry
	node       *node
	access     types.Access
	predefined bool
	closed     bool
}

var _ types.Key = (*key)(nil)

// check validates the handle and its rights. Callers hold reg.mu.
func (k *key) check(op string, want types.Access) error {
	if k.closed {
		return types.Wrap(types.ErrKindState, types.ErrClosed, "%s", op)
	}
	if k.node.deleted {
		return types.Errorf(types.ErrKindKeyDeleted, "%s %s: key has been deleted", op, k.node.name)
	}
	if !k.access.Covers(want) {
		return types.Errorf(types.ErrKindAccessDenied, "%s %s: handle has %s, needs %s", op, k.node.name, k.access, want)
	}
	return nil
}

func (k *key) Close() error {
	k.reg.mu.Lock()
	defer k.reg.mu.Unlock()
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
	k.reg.mu.Lock()
	defer k.reg.mu.Unlock()
	if err := k.check("open", 0); err != nil {
		return nil, err
	}
	segs := splitPath(subpath)
	n, depth := k.node.walk(segs)
	if depth != len(segs) {
		return nil, types.Errorf(types.ErrKindNotFound, "open %s: key not found", subpath)
	}
	return &key{reg: k.reg, node: n, access: access}, nil
}

func (k *key) CreateKey(subpath string, access types.Access) (types.Key, error) {
	k.reg.mu.Lock()
	defer k.reg.mu.Unlock()
	if err := k.check("create", 0); err != nil {
		return nil, err
	}
	segs := splitPath(subpath)
	n, depth := k.node.walk(segs)
	if depth < len(segs) {
		if err := k.check("create", types.KEY_CREATE_SUB_KEY); err != nil {
			return nil, err
		}
		now := k.reg.now()
		for _, s := range segs[depth:] {
			child := newNode(s, n, now)
			n.children[fold(s)] = child
			n.lastWrite = now
			n = child
		}
	}
	return &key{reg: k.reg, node: n, access: access}, nil
}

func (k *key) Info() (types.KeyInfo, error) {
	k.reg.mu.Lock()
	defer k.reg.mu.Unlock()
	if err := k.check("query info", types.KEY_QUERY_VALUE); err != nil {
		return types.KeyInfo{}, err
	}
	return types.KeyInfo{
		SubkeyN:   len(k.node.children),
		ValueN:    len(k.node.values),
		LastWrite: k.node.lastWrite,
	}, nil
}

func (k *key) EnumKey(index int) (string, error) {
	k.reg.mu.Lock()
	defer k.reg.mu.Unlock()
	if err := k.check("enum key", types.KEY_ENUMERATE_SUB_KEYS); err != nil {
		return "", err
	}
	children := k.node.sortedChildren()
	if index < 0 || index >= len(children) {
		return "", types.Wrap(types.ErrKindNoMoreItems, types.ErrNoMoreItems, "enum key %d", index)
	}
	return children[index].name, nil
}

func (k *key) EnumValue(index int) (types.RawValue, error) {
	k.reg.mu.Lock()
	defer k.reg.mu.Unlock()
	if err := k.check("enum value", types.KEY_QUERY_VALUE); err != nil {
		return types.RawValue{}, err
	}
	if index < 0 || index >= len(k.node.values) {
		return types.RawValue{}, types.Wrap(types.ErrKindNoMoreItems, types.ErrNoMoreItems, "enum value %d", index)
	}
	return k.node.values[index].raw(), nil
}

func (k *key) GetValue(name string) (types.RawValue, error) {
	k.reg.mu.Lock()
	defer k.reg.mu.Unlock()
	if err := k.check("query value", types.KEY_QUERY_VALUE); err != nil {
		return types.RawValue{}, err
	}
	i := k.node.valueIndex(name)
	if i < 0 {
		return types.RawValue{}, types.Errorf(types.ErrKindNotFound, "query value %q: not found", name)
	}
	return k.node.values[i].raw(), nil
}

func (k *key) SetValue(name string, typ types.RegType, data []byte) error {
	k.reg.mu.Lock()
	defer k.reg.mu.Unlock()
	if err := k.check("set value", types.KEY_SET_VALUE); err != nil {
		return err
	}
	k.node.setValue(name, typ, data, k.reg.now())
	return nil
}

func (k *key) DeleteValue(name string) error {
	k.reg.mu.Lock()
	defer k.reg.mu.Unlock()
	if err := k.check("delete value", types.KEY_SET_VALUE); err != nil {
		return err
	}
	i := k.node.valueIndex(name)
	if i < 0 {
		return types.Errorf(types.ErrKindNotFound, "delete value %q: not found", name)
	}
	k.node.values = append(k.node.values[:i], k.node.values[i+1:]...)
	k.node.lastWrite = k.reg.now()
	return nil
}

func (k *key) DeleteKey() error {
	return k.DeleteKeyEx(0)
}

// DeleteKeyEx ignores the view: the in-memory store has a single view.
func (k *key) DeleteKeyEx(types.View) error {
	k.reg.mu.Lock()
	defer k.reg.mu.Unlock()
	if err := k.check("delete key", types.DELETE); err != nil {
		return err
	}
	if k.node.parent == nil {
		return types.Errorf(types.ErrKindAccessDenied, "delete key %s: cannot delete a root", k.node.name)
	}
	if len(k.node.children) > 0 {
		return types.Errorf(types.ErrKindKeyNotEmpty, "delete key %s: key has %d subkeys", k.node.name, len(k.node.children))
	}
	k.node.detach(k.reg.now())
	return nil
}

func (k *key) Flush() error {
	k.reg.mu.Lock()
	defer k.reg.mu.Unlock()
	return k.check("flush", 0)
}

func (k *key) CopyTree(dst types.Key) types.Status {
	d, ok := dst.(*key)
	if !ok || d.reg != k.reg {
		return types.StatusInvalidHandle
	}
	k.reg.mu.Lock()
	defer k.reg.mu.Unlock()
	if st := k.status(types.KEY_QUERY_VALUE | types.KEY_ENUMERATE_SUB_KEYS); st != types.StatusSuccess {
		return st
	}
	if st := d.status(types.KEY_SET_VALUE | types.KEY_CREATE_SUB_KEY); st != types.StatusSuccess {
		return st
	}
	if k.node.isAncestorOf(d.node) {
		return types.StatusInvalidParam
	}
	k.node.copyInto(d.node, k.reg.now())
	return types.StatusSuccess
}

func (k *key) DeleteTree() types.Status {
	k.reg.mu.Lock()
	defer k.reg.mu.Unlock()
	if st := k.status(types.DELETE | types.KEY_ENUMERATE_SUB_KEYS | types.KEY_QUERY_VALUE); st != types.StatusSuccess {
		return st
	}
	now := k.reg.now()
	for _, c := range k.node.sortedChildren() {
		c.detach(now)
	}
	if len(k.node.values) > 0 {
		k.node.values = nil
		k.node.lastWrite = now
	}
	return types.StatusSuccess
}

// status is check for the native bulk operations, which report a status
// code instead of an error.
func (k *key) status(want types.Access) types.Status {
	switch {
	case k.closed:
		return types.StatusInvalidHandle
	case k.node.deleted:
		return types.StatusKeyDeleted
	case !k.access.Covers(want):
		return types.StatusAccessDenied
	default:
		return types.StatusSuccess
	}
}

func (v *value) raw() types.RawValue {
	return types.RawValue{Name: v.name, Type: v.typ, Data: append([]byte(nil), v.data...)}
}
