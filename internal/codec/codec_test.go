package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regpath/pkg/types"
)

func TestEncodeString(t *testing.T) {
	assert.Equal(t, []byte{0x48, 0x00, 0x69, 0x00, 0x00, 0x00}, EncodeString("Hi"))
	assert.Equal(t, []byte{0x00, 0x00}, EncodeString(""))

	// U+1F600 needs a surrogate pair.
	assert.Equal(t, []byte{0x3D, 0xD8, 0x00, 0xDE, 0x00, 0x00}, EncodeString("\U0001F600"))
}

func TestDecodeString(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"terminated", []byte{0x48, 0x00, 0x69, 0x00, 0x00, 0x00}, "Hi"},
		{"unterminated", []byte{0x48, 0x00, 0x69, 0x00}, "Hi"},
		{"odd trailing byte", []byte{0x48, 0x00, 0x69}, "H"},
		{"garbage after NUL", []byte{0x41, 0x00, 0x00, 0x00, 0x42, 0x00}, "A"},
		{"empty", nil, ""},
		{"non-ascii", EncodeString("Grüße"), "Grüße"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeString(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMultiString(t *testing.T) {
	data := EncodeMultiString([]string{"A", "B"})
	assert.Equal(t, []byte{0x41, 0x00, 0x00, 0x00, 0x42, 0x00, 0x00, 0x00, 0x00, 0x00}, data)

	got, err := DecodeMultiString(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, got)

	empty, err := DecodeMultiString(EncodeMultiString(nil))
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	// Missing final terminator.
	got, err = DecodeMultiString([]byte{0x41, 0x00, 0x00, 0x00, 0x42, 0x00})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, got)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		typ  types.RegType
		data []byte
		want any
	}{
		{"sz", types.REG_SZ, EncodeString("x"), "x"},
		{"expand", types.REG_EXPAND_SZ, EncodeString("%TEMP%"), "%TEMP%"},
		{"multi", types.REG_MULTI_SZ, EncodeMultiString([]string{"a"}), []string{"a"}},
		{"dword", types.REG_DWORD, []byte{0x78, 0x56, 0x34, 0x12}, uint32(0x12345678)},
		{"dword be", types.REG_DWORD_BE, []byte{0x12, 0x34, 0x56, 0x78}, uint32(0x12345678)},
		{"qword", types.REG_QWORD, EncodeQWORD(1 << 40), uint64(1 << 40)},
		{"binary", types.REG_BINARY, []byte{1, 2}, []byte{1, 2}},
		{"empty binary", types.REG_BINARY, nil, []byte{}},
		{"none empty", types.REG_NONE, nil, nil},
		{"none data", types.REG_NONE, []byte{9}, []byte{9}},
		{"resource list", types.REG_RESOURCE_LIST, []byte{7}, []byte{7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.typ, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_ShortNumeric(t *testing.T) {
	_, err := Decode(types.REG_DWORD, []byte{1, 2})
	assert.ErrorIs(t, err, types.ErrInvalidValue)

	_, err = Decode(types.REG_QWORD, []byte{1, 2, 3, 4})
	assert.ErrorIs(t, err, types.ErrInvalidValue)
}

func TestDecode_CopiesBinary(t *testing.T) {
	data := []byte{1, 2, 3}
	got, err := Decode(types.REG_BINARY, data)
	require.NoError(t, err)
	data[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, got)
}

func TestEncode(t *testing.T) {
	for _, v := range []struct {
		typ types.RegType
		val any
	}{
		{types.REG_SZ, "hello"},
		{types.REG_EXPAND_SZ, "%SystemRoot%"},
		{types.REG_MULTI_SZ, []string{"x", "y"}},
		{types.REG_DWORD, uint32(42)},
		{types.REG_DWORD_BE, uint32(42)},
		{types.REG_QWORD, uint64(1 << 33)},
		{types.REG_BINARY, []byte{0xde, 0xad}},
		{types.REG_NONE, nil},
	} {
		t.Run(v.typ.String(), func(t *testing.T) {
			data, err := Encode(v.typ, v.val)
			require.NoError(t, err)
			back, err := Decode(v.typ, data)
			require.NoError(t, err)
			assert.Equal(t, v.val, back)
		})
	}

	_, err := Encode(types.REG_DWORD, "nope")
	assert.ErrorIs(t, err, types.ErrUnsupportedValueType)
}

func TestParseType(t *testing.T) {
	for name, want := range map[string]types.RegType{
		"sz":           types.REG_SZ,
		"REG_SZ":       types.REG_SZ,
		"expand_sz":    types.REG_EXPAND_SZ,
		"dword":        types.REG_DWORD,
		"Reg_Multi_Sz": types.REG_MULTI_SZ,
		"binary":       types.REG_BINARY,
		"qword":        types.REG_QWORD,
		"none":         types.REG_NONE,
	} {
		got, err := ParseType(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseType("float")
	assert.ErrorIs(t, err, types.ErrUnsupportedValueType)
}

func TestParseValue(t *testing.T) {
	v, err := ParseValue(types.REG_DWORD, "0x10", ",")
	require.NoError(t, err)
	assert.Equal(t, uint32(16), v)

	v, err = ParseValue(types.REG_BINARY, "0xdead beef", ",")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, v)

	v, err = ParseValue(types.REG_MULTI_SZ, "a;b;c", ";")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, v)

	v, err = ParseValue(types.REG_NONE, "", ",")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = ParseValue(types.REG_DWORD, "4294967296", ",")
	assert.ErrorIs(t, err, types.ErrInvalidValue)

	_, err = ParseValue(types.REG_BINARY, "abc", ",")
	assert.ErrorIs(t, err, types.ErrInvalidValue)
}
