package pathalg

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regpath/pkg/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		text string
		want Address
	}{
		{`HKEY_LOCAL_MACHINE`, Address{Drive: "HKEY_LOCAL_MACHINE"}},
		{`hklm`, Address{Drive: "hklm"}},
		{`HKLM\Software`, Address{Drive: "HKLM", Root: Sep, Segments: []string{"Software"}}},
		{`HKCU\Software\My App\v1.0`, Address{Drive: "HKCU", Root: Sep, Segments: []string{"Software", "My App", "v1.0"}}},
		{`\HKCU\Software`, Address{Drive: "HKCU", Root: Sep, Segments: []string{"Software"}}},
		{`HKCU\\Software\.\x\`, Address{Drive: "HKCU", Root: Sep, Segments: []string{"Software", "x"}}},
		{`HKLM\`, Address{Drive: "HKLM"}},
		{`Software\Microsoft`, Address{Segments: []string{"Software", "Microsoft"}}},
		{`a/b`, Address{Segments: []string{"a/b"}}},
		{`\\server\HKLM\Software`, Address{Drive: `\\server\HKLM`, Root: Sep, Segments: []string{"Software"}}},
		{`\\server\HKLM`, Address{Drive: `\\server\HKLM`}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := Parse(tt.text)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, text := range []string{
		"",
		`\`,
		`.`,
		`\Software`,
		`C:\Windows`,
		`c:`,
	} {
		t.Run(text, func(t *testing.T) {
			_, err := Parse(text)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrInvalidAddress), "got %v", err)
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	for _, text := range []string{
		`HKEY_LOCAL_MACHINE`,
		`HKEY_LOCAL_MACHINE\SOFTWARE\Microsoft\Windows NT`,
		`hkcu\Software\Mixed.Case`,
		`HKU\S-1-5-21\Control Panel`,
		`Relative\Key`,
		`\\host\HKLM\SYSTEM\CurrentControlSet`,
	} {
		t.Run(text, func(t *testing.T) {
			assert.Equal(t, text, MustParse(text).String())
		})
	}
}

func TestParse_AllRootNames(t *testing.T) {
	for name, key := range rootKeys {
		a := MustParse(name + `\x`)
		assert.Equal(t, name, a.Drive)
		got, err := ResolveRootKey(a.Drive)
		require.NoError(t, err)
		assert.Equal(t, key, got)
	}
}

func TestJoin_RightAbsoluteWins(t *testing.T) {
	bases := []string{`HKCU`, `HKCU\Software\Vendor`, `relative\part`, `\\box\HKU\x`}
	abs := []string{`HKEY_LOCAL_MACHINE\SOFTWARE\X`, `hkcr\.txt`, `HKLM`, `\\other\HKLM\System`}
	for _, b := range bases {
		for _, a := range abs {
			got, err := JoinText(MustParse(b), a)
			require.NoError(t, err)
			if diff := cmp.Diff(MustParse(a), got); diff != "" {
				t.Errorf("Join(%q, %q) mismatch (-want +got):\n%s", b, a, diff)
			}
		}
	}
}

func TestJoin_ReRootScenario(t *testing.T) {
	a, err := JoinAll(`HKEY_CURRENT_USER`, `HKEY_LOCAL_MACHINE\SOFTWARE\X`)
	require.NoError(t, err)
	assert.Equal(t, `HKEY_LOCAL_MACHINE\SOFTWARE\X`, a.String())
}

func TestJoin_Relative(t *testing.T) {
	a, err := JoinAll(`HKLM`, `Software`, `Vendor\Product`)
	require.NoError(t, err)
	assert.Equal(t, `HKLM\Software\Vendor\Product`, a.String())
	assert.True(t, a.HasRoot())

	r, err := JoinAll(`a`, `b`)
	require.NoError(t, err)
	assert.False(t, r.IsAbs())
	assert.Equal(t, `a\b`, r.String())

	_, err = JoinAll()
	assert.ErrorIs(t, err, types.ErrInvalidAddress)

	_, err = JoinAll(`HKLM`, `C:\x`)
	assert.ErrorIs(t, err, types.ErrInvalidAddress)
}

func TestJoin_DoesNotAlias(t *testing.T) {
	base := MustParse(`HKLM\a\b`)
	j1 := Join(base.Parent(), MustParse("x"))
	j2 := Join(base.Parent(), MustParse("y"))
	assert.Equal(t, `HKLM\a\x`, j1.String())
	assert.Equal(t, `HKLM\a\y`, j2.String())
	assert.Equal(t, `HKLM\a\b`, base.String())
}

func TestEqual_CaseInsensitive(t *testing.T) {
	assert.True(t, MustParse(`HKCU\Software`).Equal(MustParse(`hkcu\SOFTWARE`)))
	assert.True(t, MustParse(`HKCU\Software\`).Equal(MustParse(`hkcu\\software`)))
	assert.False(t, MustParse(`HKCU\Software`).Equal(MustParse(`HKEY_CURRENT_USER\Software`)))
	assert.False(t, MustParse(`HKCU\Software`).Equal(MustParse(`HKLM\Software`)))
}

func TestAccessors(t *testing.T) {
	a := MustParse(`HKEY_LOCAL_MACHINE\A\B`)
	assert.Equal(t, []string{`HKEY_LOCAL_MACHINE\`, "A", "B"}, a.Parts())
	assert.Equal(t, "HKEY_LOCAL_MACHINE", a.Drive)
	assert.Equal(t, Sep, a.Root)
	assert.Equal(t, `HKEY_LOCAL_MACHINE\`, a.Anchor())
	assert.Equal(t, "B", a.Name())
	assert.Equal(t, `A\B`, a.Subpath())
	assert.True(t, a.IsAbs())
	assert.False(t, a.IsRemote())

	root := MustParse(`HKEY_LOCAL_MACHINE`)
	assert.True(t, root.IsAbs())
	assert.False(t, root.HasRoot())
	assert.Equal(t, "", root.Name())
	assert.Equal(t, "", root.Subpath())
	assert.Equal(t, []string{"HKEY_LOCAL_MACHINE"}, root.Parts())
	assert.True(t, root.Parent().IsZero())
	assert.Empty(t, root.Ancestors())

	rel := MustParse(`x\y`)
	assert.Equal(t, []string{"x", "y"}, rel.Parts())
	assert.True(t, MustParse("x").Parent().IsZero())
}

func TestParentAndAncestors(t *testing.T) {
	a := MustParse(`HKLM\A\B\C`)
	assert.Equal(t, `HKLM\A\B`, a.Parent().String())

	var got []string
	for _, p := range a.Ancestors() {
		got = append(got, p.String())
	}
	assert.Equal(t, []string{`HKLM\A\B`, `HKLM\A`, `HKLM`}, got)

	top := a.Parent().Parent().Parent()
	assert.Equal(t, Address{Drive: "HKLM"}, top)
	assert.Equal(t, top, MustParse("HKLM"))
}

func TestRemote(t *testing.T) {
	a := MustParse(`\\build-01\HKLM\Software`)
	assert.True(t, a.IsRemote())

	computer, root, ok := SplitRemote(a.Drive)
	require.True(t, ok)
	assert.Equal(t, `\\build-01`, computer)
	assert.Equal(t, "HKLM", root)

	key, err := ResolveRootKey(a.Drive)
	require.NoError(t, err)
	assert.Equal(t, types.HKEY_LOCAL_MACHINE, key)

	_, _, ok = SplitRemote("HKLM")
	assert.False(t, ok)
}

func TestResolveRootKey_Unknown(t *testing.T) {
	a := MustParse(`\\host\share\x`)
	_, err := ResolveRootKey(a.Drive)
	assert.ErrorIs(t, err, types.ErrUnknownRoot)
}

func TestWithName(t *testing.T) {
	a := MustParse(`HKLM\Software\Old`)
	b, err := a.WithName("New")
	require.NoError(t, err)
	assert.Equal(t, `HKLM\Software\New`, b.String())
	assert.Equal(t, `HKLM\Software\Old`, a.String())

	for _, bad := range []string{"", `x\y`, `HKLM`, `a\`} {
		_, err := a.WithName(bad)
		assert.ErrorIs(t, err, types.ErrInvalidAddress, "name %q", bad)
	}

	_, err = MustParse("HKLM").WithName("x")
	assert.ErrorIs(t, err, types.ErrInvalidAddress)
}

func TestRelativeTo(t *testing.T) {
	a := MustParse(`HKLM\Software\Vendor\App`)

	r, err := a.RelativeTo(MustParse(`hklm\software`))
	require.NoError(t, err)
	assert.Equal(t, `Vendor\App`, r.String())
	assert.False(t, r.IsAbs())

	r, err = a.RelativeTo(MustParse(`HKLM`))
	require.NoError(t, err)
	assert.Equal(t, `Software\Vendor\App`, r.String())

	r, err = a.RelativeTo(a)
	require.NoError(t, err)
	assert.True(t, r.IsZero())

	_, err = a.RelativeTo(MustParse(`HKCU\Software`))
	assert.ErrorIs(t, err, types.ErrInvalidAddress)
	_, err = a.RelativeTo(MustParse(`HKLM\System`))
	assert.ErrorIs(t, err, types.ErrInvalidAddress)
}

func TestLookupRoot(t *testing.T) {
	k, ok := LookupRoot("hkey_current_config")
	require.True(t, ok)
	assert.Equal(t, types.HKEY_CURRENT_CONFIG, k)

	_, ok = LookupRoot("HKEY_NOPE")
	assert.False(t, ok)
	assert.True(t, IsRootName("Hku"))
}
