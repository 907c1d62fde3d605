package regpath

import (
	"errors"
	"iter"
	"slices"

	"github.com/joshuapare/regpath/pkg/types"
)

// TypedValue is a value that names its own registry type. Values.Set
// stores it as that type instead of inferring one.
type TypedValue interface {
	RegValue() (value any, typ types.RegType)
}

// ExpandString is REG_EXPAND_SZ text: a string with %VARIABLE% references
// that readers expand. Values.Get returns it for REG_EXPAND_SZ data.
type ExpandString string

func (s ExpandString) RegValue() (any, types.RegType) {
	return string(s), types.REG_EXPAND_SZ
}

// Typed pairs a value with an explicit registry type, for types Set does
// not infer (REG_QWORD, REG_DWORD_BE, REG_LINK, resource lists). Value must
// be the Go type QueryValue returns for Type, or []byte.
type Typed struct {
	Value any
	Type  types.RegType
}

func (t Typed) RegValue() (any, types.RegType) {
	return t.Value, t.Type
}

// Values is a mapping view over the named values of the key p denotes.
// It shares p's handle.
type Values struct {
	p *Path
}

// Values returns the value mapping of the key.
func (p *Path) Values() Values {
	return Values{p: p}
}

// Contains reports whether the value exists. Only a not-found failure
// reads as false; other failures are returned.
func (v Values) Contains(name string) (bool, error) {
	_, err := v.p.QueryRawValue(name)
	if errors.Is(err, types.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// All yields value names. The default value, when set, is "".
func (v Values) All() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for raw, err := range v.p.EnumValue() {
			if !yield(raw.Name, err) || err != nil {
				return
			}
		}
	}
}

// Len is the value count of the key.
func (v Values) Len() (int, error) {
	info, err := v.p.KeyInfo()
	if err != nil {
		return 0, err
	}
	return info.ValueN, nil
}

// Get reads and decodes a value:
//
//	REG_SZ, REG_LINK  string
//	REG_EXPAND_SZ     ExpandString
//	REG_MULTI_SZ      []string
//	REG_DWORD(_BE)    uint32
//	REG_QWORD         uint64
//	REG_NONE          nil, or []byte when data is present
//	other             []byte
func (v Values) Get(name string) (any, error) {
	val, typ, err := v.p.QueryValue(name)
	if err != nil {
		return nil, err
	}
	if typ == types.REG_EXPAND_SZ {
		if s, ok := val.(string); ok {
			return ExpandString(s), nil
		}
	}
	return val, nil
}

// Set infers the registry type of value and writes it. In order: a
// TypedValue names its type; string is REG_SZ; []byte is REG_BINARY; an
// integer is REG_DWORD when it fits in 32 bits unsigned; []string is
// REG_MULTI_SZ; nil is REG_NONE. A negative integer fails with
// ErrInvalidValue, a wider one with ErrUnsupported and anything else with
// ErrUnsupportedValueType. An empty string inside a []string would end the
// list early when read back, so it fails with ErrInvalidValue.
func (v Values) Set(name string, value any) error {
	val, typ, err := infer(value)
	if err != nil {
		return err
	}
	return v.p.SetValue(name, typ, val)
}

// Delete removes a value. A missing value fails with ErrNotFound.
func (v Values) Delete(name string) error {
	return v.p.DeleteValue(name)
}

// infer maps a Go value to the registry type it is stored as and the form
// codec.Encode accepts for that type.
func infer(value any) (any, types.RegType, error) {
	switch x := value.(type) {
	case TypedValue:
		val, typ := x.RegValue()
		return val, typ, nil
	case string:
		return x, types.REG_SZ, nil
	case []byte:
		return x, types.REG_BINARY, nil
	case int:
		return dword(int64(x))
	case int8:
		return dword(int64(x))
	case int16:
		return dword(int64(x))
	case int32:
		return dword(int64(x))
	case int64:
		return dword(x)
	case uint:
		return udword(uint64(x))
	case uint8:
		return udword(uint64(x))
	case uint16:
		return udword(uint64(x))
	case uint32:
		return x, types.REG_DWORD, nil
	case uint64:
		return udword(x)
	case []string:
		if i := slices.Index(x, ""); i >= 0 {
			return nil, 0, types.Errorf(types.ErrKindInvalidValue, "multi-string element %d is empty", i)
		}
		return x, types.REG_MULTI_SZ, nil
	case nil:
		return nil, types.REG_NONE, nil
	default:
		return nil, 0, types.Errorf(types.ErrKindUnsupportedValueType, "cannot store %T in the registry", value)
	}
}

func dword(n int64) (any, types.RegType, error) {
	if n < 0 {
		return nil, 0, types.Errorf(types.ErrKindInvalidValue, "registry numbers are non-negative, got %d", n)
	}
	return udword(uint64(n))
}

func udword(n uint64) (any, types.RegType, error) {
	if n > 0xFFFFFFFF {
		return nil, 0, types.Errorf(types.ErrKindUnsupported, "%d needs REG_QWORD, which Set does not infer", n)
	}
	return uint32(n), types.REG_DWORD, nil
}
