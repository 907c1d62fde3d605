package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/regpath/pkg/types"
)

// ParseType maps a type name as typed on a command line (sz, REG_SZ,
// expand_sz, dword, qword, binary, multi_sz, none) to its RegType.
func ParseType(name string) (types.RegType, error) {
	switch strings.TrimPrefix(strings.ToUpper(name), "REG_") {
	case "SZ":
		return types.REG_SZ, nil
	case "EXPAND_SZ":
		return types.REG_EXPAND_SZ, nil
	case "BINARY":
		return types.REG_BINARY, nil
	case "DWORD":
		return types.REG_DWORD, nil
	case "DWORD_BE":
		return types.REG_DWORD_BE, nil
	case "MULTI_SZ":
		return types.REG_MULTI_SZ, nil
	case "QWORD":
		return types.REG_QWORD, nil
	case "NONE":
		return types.REG_NONE, nil
	default:
		return 0, types.Errorf(types.ErrKindUnsupportedValueType, "unsupported value type: %s", name)
	}
}

// ParseValue converts text into the Go value for typ, the inverse of how
// the printer renders it. Multi-strings are separated by sep; binary data
// is hex with optional 0x prefix, spaces, commas or colons.
func ParseValue(typ types.RegType, text, sep string) (any, error) {
	switch typ {
	case types.REG_SZ, types.REG_EXPAND_SZ:
		return text, nil
	case types.REG_DWORD, types.REG_DWORD_BE:
		val, err := strconv.ParseUint(text, 0, 32)
		if err != nil {
			return nil, types.Wrap(types.ErrKindInvalidValue, err, "invalid DWORD value %q", text)
		}
		return uint32(val), nil
	case types.REG_QWORD:
		val, err := strconv.ParseUint(text, 0, 64)
		if err != nil {
			return nil, types.Wrap(types.ErrKindInvalidValue, err, "invalid QWORD value %q", text)
		}
		return val, nil
	case types.REG_BINARY:
		data, err := ParseHex(text)
		if err != nil {
			return nil, types.Wrap(types.ErrKindInvalidValue, err, "invalid BINARY value")
		}
		return data, nil
	case types.REG_MULTI_SZ:
		if text == "" {
			return []string{}, nil
		}
		return strings.Split(text, sep), nil
	case types.REG_NONE:
		if text != "" {
			return nil, types.Errorf(types.ErrKindInvalidValue, "%s takes no data, got %q", typ, text)
		}
		return nil, nil
	default:
		return nil, types.Errorf(types.ErrKindUnsupportedValueType, "unsupported value type: %s", typ)
	}
}

// ParseHex parses a hex string with or without a 0x prefix, with or without
// separators.
func ParseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, ":", "")

	if len(s)%2 != 0 {
		return nil, errors.New("hex string must have even number of characters")
	}

	data := make([]byte, len(s)/2)
	for i := range data {
		val, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid hex at position %d: %w", i*2, err)
		}
		data[i] = byte(val)
	}
	return data, nil
}
