package codec

import (
	"encoding/binary"
	"strings"

	"github.com/joshuapare/regpath/pkg/types"
)

// EncodeString encodes s as UTF-16LE with a NUL terminator (REG_SZ format).
//
// Example:
//
//	"Hi" -> []byte{0x48, 0x00, 0x69, 0x00, 0x00, 0x00}
func EncodeString(s string) []byte {
	// Valid UTF-8 always encodes; invalid bytes become U+FFFD first.
	enc, _ := utf16le.NewEncoder().Bytes([]byte(strings.ToValidUTF8(s, "\uFFFD")))
	buf := make([]byte, len(enc)+UTF16CodeUnitSize)
	copy(buf, enc)
	return buf
}

// EncodeMultiString encodes values as REG_MULTI_SZ: each string NUL
// terminated, then a final NUL.
//
// Example:
//
//	[]string{"A", "B"} -> UTF-16LE "A\0B\0\0"
func EncodeMultiString(values []string) []byte {
	if len(values) == 0 {
		return []byte{0x00, 0x00}
	}
	var buf []byte
	for _, v := range values {
		buf = append(buf, EncodeString(v)...)
	}
	return append(buf, 0x00, 0x00)
}

// EncodeDWORD encodes v little-endian (REG_DWORD format).
func EncodeDWORD(v uint32) []byte {
	buf := make([]byte, DWORDSize)
	binary.LittleEndian.PutUint32(buf, v)
	return buf
}

// EncodeDWORDBigEndian encodes v big-endian (REG_DWORD_BIG_ENDIAN format).
func EncodeDWORDBigEndian(v uint32) []byte {
	buf := make([]byte, DWORDSize)
	binary.BigEndian.PutUint32(buf, v)
	return buf
}

// EncodeQWORD encodes v little-endian (REG_QWORD format).
func EncodeQWORD(v uint64) []byte {
	buf := make([]byte, QWORDSize)
	binary.LittleEndian.PutUint64(buf, v)
	return buf
}

// Encode converts a Go value into the byte image for typ. It accepts the
// value types Decode produces for that registry type.
func Encode(typ types.RegType, v any) ([]byte, error) {
	switch typ {
	case types.REG_SZ, types.REG_EXPAND_SZ, types.REG_LINK:
		if s, ok := v.(string); ok {
			return EncodeString(s), nil
		}
	case types.REG_MULTI_SZ:
		if ss, ok := v.([]string); ok {
			return EncodeMultiString(ss), nil
		}
	case types.REG_DWORD:
		if n, ok := v.(uint32); ok {
			return EncodeDWORD(n), nil
		}
	case types.REG_DWORD_BE:
		if n, ok := v.(uint32); ok {
			return EncodeDWORDBigEndian(n), nil
		}
	case types.REG_QWORD:
		if n, ok := v.(uint64); ok {
			return EncodeQWORD(n), nil
		}
	case types.REG_NONE:
		if v == nil {
			return nil, nil
		}
		if b, ok := v.([]byte); ok {
			return cloneBytes(b), nil
		}
	default:
		if b, ok := v.([]byte); ok {
			return cloneBytes(b), nil
		}
	}
	return nil, types.Errorf(types.ErrKindUnsupportedValueType, "cannot encode %T as %s", v, typ)
}
