package regpath

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regpath/pkg/registry/memreg"
	"github.com/joshuapare/regpath/pkg/types"
)

func TestValues_RoundTrip(t *testing.T) {
	reg := memreg.New()
	v := mk(t, reg, `HKCU\Software\Values`).Values()

	tests := []struct {
		name  string
		value any
		typ   types.RegType
	}{
		{"none", nil, types.REG_NONE},
		{"sz", "text", types.REG_SZ},
		{"empty sz", "", types.REG_SZ},
		{"binary", []byte{0xde, 0xad}, types.REG_BINARY},
		{"dword", uint32(0xFFFFFFFF), types.REG_DWORD},
		{"multi", []string{"a", "b"}, types.REG_MULTI_SZ},
		{"empty multi", []string{}, types.REG_MULTI_SZ},
		{"expand", ExpandString(`%SystemRoot%\x`), types.REG_EXPAND_SZ},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, v.Set(tt.name, tt.value))
			got, err := v.Get(tt.name)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.value, got); diff != "" {
				t.Errorf("Get(%q) mismatch (-want +got):\n%s", tt.name, diff)
			}
			raw, err := v.p.QueryRawValue(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.typ, raw.Type)
		})
	}
}

func TestValues_Integers(t *testing.T) {
	reg := memreg.New()
	v := mk(t, reg, `HKCU\Software\Ints`).Values()

	for _, in := range []any{7, int8(7), int16(7), int32(7), int64(7), uint(7), uint8(7), uint16(7), uint64(7)} {
		require.NoError(t, v.Set("n", in))
		got, err := v.Get("n")
		require.NoError(t, err)
		assert.Equal(t, uint32(7), got, "%T", in)
	}

	assert.ErrorIs(t, v.Set("neg", -1), types.ErrInvalidValue)
	assert.ErrorIs(t, v.Set("big", uint64(1)<<32), types.ErrUnsupported)
	assert.ErrorIs(t, v.Set("big", int64(1)<<32), types.ErrUnsupported)
	assert.ErrorIs(t, v.Set("odd", struct{}{}), types.ErrUnsupportedValueType)
	assert.ErrorIs(t, v.Set("odd", 1.5), types.ErrUnsupportedValueType)

	ok, err := v.Contains("neg")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValues_MultiStringEmptyElement(t *testing.T) {
	reg := memreg.New()
	v := mk(t, reg, `HKCU\Software\Multi`).Values()

	require.NoError(t, v.Set("empty", []string{}))
	got, err := v.Get("empty")
	require.NoError(t, err)
	assert.Equal(t, []string{}, got)

	assert.ErrorIs(t, v.Set("x", []string{"a", "", "b"}), types.ErrInvalidValue)
	ok, err := v.Contains("x")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValues_Typed(t *testing.T) {
	reg := memreg.New()
	v := mk(t, reg, `HKCU\Software\Typed`).Values()

	require.NoError(t, v.Set("q", Typed{Value: uint64(1) << 40, Type: types.REG_QWORD}))
	got, err := v.Get("q")
	require.NoError(t, err)
	assert.Equal(t, uint64(1)<<40, got)

	require.NoError(t, v.Set("be", Typed{Value: uint32(0x01020304), Type: types.REG_DWORD_BE}))
	raw, err := v.p.QueryRawValue("be")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, raw.Data)
}

func TestValues_Mapping(t *testing.T) {
	reg := memreg.New()
	p := mk(t, reg, `HKCU\Software\Map`)
	v := p.Values()

	ok, err := v.Contains("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, v.Set("b", "1"))
	require.NoError(t, v.Set("a", "2"))
	require.NoError(t, v.Set("", "default"))

	ok, err = v.Contains("B")
	require.NoError(t, err)
	assert.True(t, ok)

	n, err := v.Len()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"b", "a", ""}, collect(t, v.All()))

	def, err := p.QueryDefaultValue()
	require.NoError(t, err)
	assert.Equal(t, "default", def)

	require.NoError(t, v.Delete("a"))
	assert.ErrorIs(t, v.Delete("a"), types.ErrNotFound)
	_, err = v.Get("a")
	assert.ErrorIs(t, err, types.ErrNotFound)

	n, err = v.Len()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestValues_MissingKey(t *testing.T) {
	reg := memreg.New()
	v := mk(t, reg, `HKCU\Nowhere`).Values()

	ok, err := v.Contains("x")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = v.Len()
	assert.ErrorIs(t, err, types.ErrNotFound)
	for _, err := range v.All() {
		assert.ErrorIs(t, err, types.ErrNotFound)
	}
}
