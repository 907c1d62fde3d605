package regpath

import (
	"iter"

	"github.com/cespare/xxhash/v2"

	"github.com/joshuapare/regpath/internal/pathalg"
	"github.com/joshuapare/regpath/pkg/types"
)

// Path is a registry key address plus the handle cache used to operate on it.
//
// The address never changes after construction; Join, Parent and WithName
// return new Paths that share the registry but not the handle.
type Path struct {
	addr pathalg.Address
	s    *session
}

// New joins parts left to right on the default registry. A part that begins
// with a root name discards everything before it.
func New(parts ...string) (*Path, error) {
	return NewWith(DefaultRegistry(), parts...)
}

// NewWith is New on an explicit registry.
func NewWith(reg types.Registry, parts ...string) (*Path, error) {
	a, err := pathalg.JoinAll(parts...)
	if err != nil {
		return nil, err
	}
	return newPath(reg, a), nil
}

// Must panics if err is non-nil. For literals.
func Must(p *Path, err error) *Path {
	if err != nil {
		panic(err)
	}
	return p
}

// Home is the current-user root on the default registry.
func Home() *Path {
	return newPath(DefaultRegistry(), pathalg.MustParse(pathalg.HKEYCurrentUser))
}

// Home is the current-user root on p's registry.
func (p *Path) Home() *Path {
	return p.derive(pathalg.MustParse(pathalg.HKEYCurrentUser))
}

func newPath(reg types.Registry, a pathalg.Address) *Path {
	return &Path{addr: a, s: &session{reg: reg}}
}

// derive wraps a on the same registry with a fresh session.
func (p *Path) derive(a pathalg.Address) *Path {
	return newPath(p.s.reg, a)
}

// Registry returns the store this path operates on.
func (p *Path) Registry() types.Registry { return p.s.reg }

// String renders the address; casing is preserved as written.
func (p *Path) String() string { return p.addr.String() }

// Drive is the root name (or `\\computer\ROOT`), empty for relative paths.
func (p *Path) Drive() string { return p.addr.Drive }

// Root is `\` when key names follow the drive, otherwise empty.
func (p *Path) Root() string { return p.addr.Root }

// Anchor is Drive plus Root.
func (p *Path) Anchor() string { return p.addr.Anchor() }

// Name is the last key name, empty for a bare root.
func (p *Path) Name() string { return p.addr.Name() }

// Parts is the anchor followed by each key name.
func (p *Path) Parts() []string { return p.addr.Parts() }

// Subpath is the key path below the root, as handed to open and create.
func (p *Path) Subpath() string { return p.addr.Subpath() }

func (p *Path) IsAbs() bool    { return p.addr.IsAbs() }
func (p *Path) IsRemote() bool { return p.addr.IsRemote() }

// IsReserved is always false; the registry reserves no key names.
func (p *Path) IsReserved() bool { return false }

// Parent drops the last key name. The parent of a bare root is the empty path.
func (p *Path) Parent() *Path { return p.derive(p.addr.Parent()) }

// Ancestors yields every parent, nearest first. Each call starts over.
func (p *Path) Ancestors() iter.Seq[*Path] {
	return func(yield func(*Path) bool) {
		for _, a := range p.addr.Ancestors() {
			if !yield(p.derive(a)) {
				return
			}
		}
	}
}

// Join appends each part in turn. A part that carries its own root replaces
// the path built so far.
func (p *Path) Join(parts ...string) (*Path, error) {
	a := p.addr
	for _, part := range parts {
		var err error
		if a, err = pathalg.JoinText(a, part); err != nil {
			return nil, err
		}
	}
	return p.derive(a), nil
}

// JoinPath is Join with an already parsed path.
func (p *Path) JoinPath(other *Path) *Path {
	return p.derive(pathalg.Join(p.addr, other.addr))
}

// child appends name as a single key name, even if it spells a root name.
func (p *Path) child(name string) *Path {
	return p.derive(pathalg.Join(p.addr, pathalg.Address{Segments: []string{name}}))
}

// WithName replaces the last key name.
func (p *Path) WithName(name string) (*Path, error) {
	a, err := p.addr.WithName(name)
	if err != nil {
		return nil, err
	}
	return p.derive(a), nil
}

// RelativeTo strips other from the front of p.
func (p *Path) RelativeTo(other *Path) (*Path, error) {
	a, err := p.addr.RelativeTo(other.addr)
	if err != nil {
		return nil, err
	}
	return p.derive(a), nil
}

// IsRelativeTo reports whether p lies at or below other.
func (p *Path) IsRelativeTo(other *Path) bool {
	_, err := p.addr.RelativeTo(other.addr)
	return err == nil
}

// Match reports whether p matches a glob pattern, case-insensitively. A
// relative pattern matches from the right.
func (p *Path) Match(pattern string) (bool, error) {
	return p.addr.Match(pattern)
}

// Equal compares addresses case-insensitively. Open handles do not matter.
func (p *Path) Equal(other *Path) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.addr.Equal(other.addr)
}

// Hash is consistent with Equal.
func (p *Path) Hash() uint64 {
	return xxhash.Sum64String(p.addr.Fold())
}

// AsURI always fails: a registry path has no URI form.
func (p *Path) AsURI() (string, error) {
	return "", types.Errorf(types.ErrKindUnsupportedOperation, "%s: registry paths have no URI form", p)
}
