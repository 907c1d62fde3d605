package pathalg

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/joshuapare/regpath/pkg/types"
)

const (
	// Sep is the only segment separator. Registry key names may contain
	// forward slashes, so '/' is not an alternate separator here.
	Sep = `\`

	// SepByte is Sep as a byte.
	SepByte = '\\'

	uncPrefix = `\\`
)

// Address is the immutable result of parsing one registry path text.
//
// Drive is the root store name as written (HKLM, hkey_current_user, ...) or
// the remote form `\\computer\ROOT`; it is empty for relative addresses.
// Root is Sep when segments follow a drive and empty otherwise, so a bare
// root name is a one-part address whose anchor carries no separator.
// Segments are the key names below the root, in hierarchy order.
//
// Methods never modify the receiver; derived addresses get fresh slices.
type Address struct {
	Drive    string
	Root     string
	Segments []string
}

// Parse decomposes path text into an Address.
//
// A leading segment that names a root store (case-insensitively) is promoted
// to the drive. A `\\server\share` prefix is the remote root form and passes
// through unchanged. Empty and "." segments are dropped.
//
// Parse fails with ErrInvalidAddress for empty text, for text that is
// anchored but names no root store (`\Software`, `C:\x`), and for text with
// no segments at all.
func Parse(text string) (Address, error) {
	if text == "" {
		return Address{}, types.Errorf(types.ErrKindInvalidAddress, "empty registry path")
	}

	drv, root, rest := splitRegistryRoot(text)
	segs := splitSegments(rest)

	if drv == "" {
		if root != "" {
			return Address{}, types.Errorf(types.ErrKindInvalidAddress,
				"registry path %q is absolute but names no root key", text)
		}
		if len(segs) == 0 {
			return Address{}, types.Errorf(types.ErrKindInvalidAddress,
				"registry path %q has no key names", text)
		}
		return Address{Segments: segs}, nil
	}

	if !isUNC(drv) && !IsRootName(drv) {
		return Address{}, types.Errorf(types.ErrKindInvalidAddress,
			"registry path %q has drive %q, which is not a registry root", text, drv)
	}

	return normalize(Address{Drive: drv, Root: root, Segments: segs}), nil
}

// MustParse is like Parse but panics on error. For literals in tests and
// package-level variables.
func MustParse(text string) Address {
	a, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return a
}

// Join combines base with extra. An extra that carries its own drive wins
// outright and base is discarded; otherwise extra's segments are appended.
func Join(base, extra Address) Address {
	if extra.Drive != "" {
		return extra.clone()
	}
	segs := make([]string, 0, len(base.Segments)+len(extra.Segments))
	segs = append(segs, base.Segments...)
	segs = append(segs, extra.Segments...)
	return normalize(Address{Drive: base.Drive, Root: base.Root, Segments: segs})
}

// JoinText parses extra with Parse and joins it onto base.
func JoinText(base Address, extra string) (Address, error) {
	e, err := Parse(extra)
	if err != nil {
		return Address{}, err
	}
	return Join(base, e), nil
}

// JoinAll parses and joins texts left to right.
func JoinAll(texts ...string) (Address, error) {
	if len(texts) == 0 {
		return Address{}, types.Errorf(types.ErrKindInvalidAddress, "no registry path given")
	}
	acc, err := Parse(texts[0])
	if err != nil {
		return Address{}, err
	}
	for _, t := range texts[1:] {
		if acc, err = JoinText(acc, t); err != nil {
			return Address{}, err
		}
	}
	return acc, nil
}

// String renders the address with the canonical separator. Segment and root
// casing is preserved as parsed.
func (a Address) String() string {
	if a.Drive == "" {
		return strings.Join(a.Segments, Sep)
	}
	return a.Drive + a.Root + strings.Join(a.Segments, Sep)
}

// IsZero reports whether the address is empty (the parent of a root).
func (a Address) IsZero() bool {
	return a.Drive == "" && len(a.Segments) == 0
}

// IsAbs reports whether the address is anchored at a root store. A bare root
// name is absolute even though its Root is empty.
func (a Address) IsAbs() bool {
	return a.Drive != ""
}

// IsRemote reports whether the drive uses the `\\computer\ROOT` form.
func (a Address) IsRemote() bool {
	return isUNC(a.Drive)
}

// HasRoot reports whether the separator after the drive is present.
func (a Address) HasRoot() bool {
	return a.Root != ""
}

// Anchor is drive plus root.
func (a Address) Anchor() string {
	return a.Drive + a.Root
}

// Parts returns the anchor (for absolute addresses) followed by the segments.
func (a Address) Parts() []string {
	if a.Drive == "" {
		return append([]string(nil), a.Segments...)
	}
	parts := make([]string, 0, len(a.Segments)+1)
	parts = append(parts, a.Anchor())
	return append(parts, a.Segments...)
}

// Name is the final segment, or "" for a bare root and the zero address.
func (a Address) Name() string {
	if len(a.Segments) == 0 {
		return ""
	}
	return a.Segments[len(a.Segments)-1]
}

// Parent drops the final segment. The parent of a bare root, or of a
// single-segment relative address, is the zero address.
func (a Address) Parent() Address {
	if len(a.Segments) == 0 {
		return Address{}
	}
	segs := append([]string(nil), a.Segments[:len(a.Segments)-1]...)
	return normalize(Address{Drive: a.Drive, Root: a.Root, Segments: segs})
}

// Ancestors lists every parent, nearest first, excluding the zero address.
func (a Address) Ancestors() []Address {
	var out []Address
	for p := a.Parent(); !p.IsZero(); p = p.Parent() {
		out = append(out, p)
	}
	return out
}

// Subpath is the segment path below the root, as handed to open/create.
func (a Address) Subpath() string {
	return strings.Join(a.Segments, Sep)
}

// Fold returns the case-folded canonical text used for equality and hashing.
func (a Address) Fold() string {
	return cases.Fold().String(a.String())
}

// Equal compares two addresses case-insensitively on root and segments.
func (a Address) Equal(b Address) bool {
	return a.Fold() == b.Fold()
}

// WithName replaces the final segment. name must be a single plain segment.
func (a Address) WithName(name string) (Address, error) {
	if a.Name() == "" {
		return Address{}, types.Errorf(types.ErrKindInvalidAddress, "%q has an empty name", a.String())
	}
	if name == "" || strings.HasSuffix(name, Sep) {
		return Address{}, types.Errorf(types.ErrKindInvalidAddress, "invalid name %q", name)
	}
	n, err := Parse(name)
	if err != nil || n.Drive != "" || len(n.Segments) != 1 {
		return Address{}, types.Errorf(types.ErrKindInvalidAddress, "invalid name %q", name)
	}
	segs := append([]string(nil), a.Segments...)
	segs[len(segs)-1] = n.Segments[0]
	return normalize(Address{Drive: a.Drive, Root: a.Root, Segments: segs}), nil
}

// RelativeTo strips other from the front of a, comparing case-insensitively.
// The result is a relative address; it is the zero address when a equals other.
func (a Address) RelativeTo(other Address) (Address, error) {
	mismatch := !foldEqual(a.Drive, other.Drive) || len(other.Segments) > len(a.Segments)
	if !mismatch {
		for i, s := range other.Segments {
			if !foldEqual(a.Segments[i], s) {
				mismatch = true
				break
			}
		}
	}
	if mismatch {
		return Address{}, types.Errorf(types.ErrKindInvalidAddress,
			"%q is not relative to %q", a.String(), other.String())
	}
	return normalize(Address{Segments: append([]string(nil), a.Segments[len(other.Segments):]...)}), nil
}

func (a Address) clone() Address {
	a.Segments = append([]string(nil), a.Segments...)
	return a
}

// normalize keeps Root consistent with the presence of a drive and segments.
func normalize(a Address) Address {
	switch {
	case a.Drive == "":
		a.Root = ""
	case len(a.Segments) == 0:
		a.Root = ""
	default:
		a.Root = Sep
	}
	if len(a.Segments) == 0 {
		a.Segments = nil
	}
	return a
}

func foldEqual(x, y string) bool {
	f := cases.Fold()
	return f.String(x) == f.String(y)
}

func isUNC(drv string) bool {
	return strings.HasPrefix(drv, uncPrefix)
}

// splitRoot is the generic Windows splitter: `\\server\share` prefixes,
// `X:` drive letters, then a leading separator.
func splitRoot(part string) (drv, root, rest string) {
	if len(part) > 2 && part[0] == SepByte && part[1] == SepByte && part[2] != SepByte {
		if i := strings.IndexByte(part[2:], SepByte); i != -1 {
			index := i + 2
			j := strings.IndexByte(part[index+1:], SepByte)
			if j != 0 {
				end := len(part)
				if j != -1 {
					end = index + 1 + j
				}
				rest = ""
				if end < len(part) {
					rest = part[end+1:]
				}
				return part[:end], Sep, rest
			}
		}
	}
	if len(part) >= 2 && part[1] == ':' && isDriveLetter(part[0]) {
		drv, part = part[:2], part[2:]
	}
	if strings.HasPrefix(part, Sep) {
		root = Sep
		part = strings.TrimLeft(part, Sep)
	}
	return drv, root, part
}

// splitRegistryRoot applies the generic splitter, then promotes a leading
// root store name to the drive position.
func splitRegistryRoot(text string) (drv, root, rest string) {
	drv, root, rest = splitRoot(text)
	if drv != "" {
		return drv, root, rest
	}
	first, tail, found := strings.Cut(rest, Sep)
	if !IsRootName(first) {
		return drv, root, rest
	}
	if found {
		return first, Sep, tail
	}
	return rest, "", ""
}

func splitSegments(rest string) []string {
	if rest == "" {
		return nil
	}
	raw := strings.Split(rest, Sep)
	segs := make([]string, 0, len(raw))
	for _, s := range raw {
		if s == "" || s == "." {
			continue
		}
		segs = append(segs, s)
	}
	return segs
}

func isDriveLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
