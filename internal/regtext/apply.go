package regtext

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joshuapare/regpath/pkg/types"
)

// Rebase rewrites op paths that start with from (compared
// case-insensitively, on segment boundaries) so they start with to instead.
// An op outside from is an error. to may be empty to make paths relative.
func Rebase(ops []Op, from, to string) ([]Op, error) {
	out := make([]Op, 0, len(ops))
	for _, op := range ops {
		rest, ok := trimPathPrefix(op.OpPath(), from)
		if !ok {
			return nil, fmt.Errorf("regtext: %q is outside %q", op.OpPath(), from)
		}
		out = append(out, op.withPath(joinPath(to, rest)))
	}
	return out, nil
}

// HiveRoot returns the path of the first section in ops, which names the
// root of a saved hive.
func HiveRoot(ops []Op) (string, bool) {
	for _, op := range ops {
		if c, ok := op.(OpCreateKey); ok {
			return c.Path, true
		}
	}
	return "", false
}

// Apply performs ops against the tree below base. Op paths are relative to
// base; an empty path means base itself. Deleting something that is already
// absent is not an error, matching regedit.
func Apply(base types.Key, ops []Op) error {
	for _, op := range ops {
		if err := applyOp(base, op); err != nil {
			return fmt.Errorf("regtext: apply %T %q: %w", op, op.OpPath(), err)
		}
	}
	return nil
}

func applyOp(base types.Key, op Op) error {
	switch o := op.(type) {
	case OpCreateKey:
		k, err := base.CreateKey(o.Path, types.KEY_WRITE)
		if err != nil {
			return err
		}
		return k.Close()

	case OpSetValue:
		k, err := base.CreateKey(o.Path, types.KEY_WRITE)
		if err != nil {
			return err
		}
		err = k.SetValue(o.Name, o.Type, o.Data)
		return closeAfter(k, err)

	case OpDeleteValue:
		k, err := base.OpenKey(o.Path, types.KEY_SET_VALUE)
		if errors.Is(err, types.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		err = k.DeleteValue(o.Name)
		if errors.Is(err, types.ErrNotFound) {
			err = nil
		}
		return closeAfter(k, err)

	case OpDeleteKey:
		k, err := base.OpenKey(o.Path, types.KEY_ALL_ACCESS)
		if errors.Is(err, types.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if st := k.DeleteTree(); st != types.StatusSuccess {
			return closeAfter(k, &types.NativeError{Op: "DeleteTree", Code: st})
		}
		return closeAfter(k, k.DeleteKey())

	default:
		return fmt.Errorf("unknown op %T", op)
	}
}

func closeAfter(k types.Key, err error) error {
	if cerr := k.Close(); err == nil {
		err = cerr
	}
	return err
}

func trimPathPrefix(path, prefix string) (string, bool) {
	path = strings.Trim(path, Backslash)
	prefix = strings.Trim(prefix, Backslash)
	if prefix == "" {
		return path, true
	}
	if len(path) < len(prefix) || !strings.EqualFold(path[:len(prefix)], prefix) {
		return "", false
	}
	rest := path[len(prefix):]
	if rest != "" && !strings.HasPrefix(rest, Backslash) {
		return "", false
	}
	return strings.TrimPrefix(rest, Backslash), true
}

func joinPath(base, rest string) string {
	switch {
	case base == "":
		return rest
	case rest == "":
		return base
	default:
		return base + Backslash + rest
	}
}
