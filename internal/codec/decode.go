package codec

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/text/encoding/unicode"

	"github.com/joshuapare/regpath/pkg/types"
)

const (
	// DWORDSize is the byte size of REG_DWORD data.
	DWORDSize = 4
	// QWORDSize is the byte size of REG_QWORD data.
	QWORDSize = 8
	// UTF16CodeUnitSize is the size of a UTF-16 code unit in bytes.
	UTF16CodeUnitSize = 2
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Decode converts raw value data into the Go value for its type. See the
// package documentation for the mapping.
func Decode(typ types.RegType, data []byte) (any, error) {
	switch typ {
	case types.REG_SZ, types.REG_EXPAND_SZ, types.REG_LINK:
		return DecodeString(data)
	case types.REG_MULTI_SZ:
		return DecodeMultiString(data)
	case types.REG_DWORD:
		return DecodeDWORD(data)
	case types.REG_DWORD_BE:
		return decodeUint32(binary.BigEndian, data, typ)
	case types.REG_QWORD:
		return DecodeQWORD(data)
	case types.REG_NONE:
		if len(data) == 0 {
			return nil, nil
		}
		return cloneBytes(data), nil
	default:
		return cloneBytes(data), nil
	}
}

// DecodeString decodes UTF-16LE string data, stopping at the first NUL.
// A trailing odd byte is ignored.
func DecodeString(data []byte) (string, error) {
	if len(data)%UTF16CodeUnitSize == 1 {
		data = data[:len(data)-1]
	}
	for i := 0; i+1 < len(data); i += UTF16CodeUnitSize {
		if data[i] == 0 && data[i+1] == 0 {
			data = data[:i]
			break
		}
	}
	if len(data) == 0 {
		return "", nil
	}
	out, err := utf16le.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode utf-16 string: %w", err)
	}
	return string(out), nil
}

// DecodeMultiString decodes REG_MULTI_SZ data. An empty list decodes to an
// empty, non-nil slice. A missing final terminator is tolerated.
func DecodeMultiString(data []byte) ([]string, error) {
	if len(data)%UTF16CodeUnitSize == 1 {
		data = data[:len(data)-1]
	}
	result := []string{}
	start := 0
	for i := 0; i+1 < len(data); i += UTF16CodeUnitSize {
		if data[i] != 0 || data[i+1] != 0 {
			continue
		}
		if i == start {
			// Empty string: the list terminator.
			return result, nil
		}
		s, err := DecodeString(data[start:i])
		if err != nil {
			return nil, err
		}
		result = append(result, s)
		start = i + UTF16CodeUnitSize
	}
	if start < len(data) {
		s, err := DecodeString(data[start:])
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, nil
}

// DecodeDWORD reads little-endian REG_DWORD data.
func DecodeDWORD(data []byte) (uint32, error) {
	return decodeUint32(binary.LittleEndian, data, types.REG_DWORD)
}

// DecodeQWORD reads little-endian REG_QWORD data.
func DecodeQWORD(data []byte) (uint64, error) {
	if len(data) < QWORDSize {
		return 0, types.Errorf(types.ErrKindInvalidValue, "%s data has %d bytes, want %d", types.REG_QWORD, len(data), QWORDSize)
	}
	return binary.LittleEndian.Uint64(data), nil
}

func decodeUint32(order binary.ByteOrder, data []byte, typ types.RegType) (uint32, error) {
	if len(data) < DWORDSize {
		return 0, types.Errorf(types.ErrKindInvalidValue, "%s data has %d bytes, want %d", typ, len(data), DWORDSize)
	}
	return order.Uint32(data), nil
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
