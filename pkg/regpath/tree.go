package regpath

import (
	"iter"

	"github.com/joshuapare/regpath/internal/logger"
	"github.com/joshuapare/regpath/internal/pathalg"
	"github.com/joshuapare/regpath/pkg/types"
)

// Exists reports whether the key can be opened with minimal read rights.
// Any failure, including an unknown root, reads as false.
func (p *Path) Exists() bool {
	h, err := p.OpenKey(types.STANDARD_RIGHTS_READ)
	if err != nil {
		return false
	}
	_ = h.Close()
	return true
}

// MakeKey opens the key with access, which creates it when access carries
// write rights. With parents set, missing ancestors are made first. Making
// a key that already exists succeeds.
func (p *Path) MakeKey(access types.Access, parents bool) error {
	if parents {
		parent := p.Parent()
		if !parent.addr.IsZero() && !parent.Exists() {
			err := parent.MakeKey(types.KEY_WRITE, true)
			if cerr := parent.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
		}
	}
	_, err := p.Open(access)
	return err
}

// Children yields a Path for each child key. Every call enumerates afresh.
func (p *Path) Children() iter.Seq2[*Path, error] {
	return func(yield func(*Path, error) bool) {
		for name, err := range p.EnumKey() {
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(p.child(name), nil) {
				return
			}
		}
	}
}

// RemoveKey deletes the key and closes the handle. A key with children is
// not removed.
func (p *Path) RemoveKey() error {
	if err := p.DeleteKey(); err != nil {
		return err
	}
	return p.Close()
}

// RemoveTree deletes every descendant depth first, then the key itself.
func (p *Path) RemoveTree() error {
	var children []*Path
	for c, err := range p.Children() {
		if err != nil {
			return err
		}
		children = append(children, c)
	}
	for i, c := range children {
		if err := c.RemoveTree(); err != nil {
			for _, rest := range children[i:] {
				_ = rest.Close()
			}
			return err
		}
	}
	return p.RemoveKey()
}

// CopyTree copies every value and subkey of p into dst with the native bulk
// copy. A nonzero status is returned as a *types.NativeError.
func (p *Path) CopyTree(dst *Path) error {
	if dst == nil {
		return types.Errorf(types.ErrKindInvalidValue, "copy %s: no destination", p)
	}
	src, err := p.Open(types.KEY_READ)
	if err != nil {
		return err
	}
	d, err := dst.Open(types.KEY_WRITE)
	if err != nil {
		return err
	}
	logger.Debug("copy tree", "path", p.String(), "dst", dst.String())
	if st := src.CopyTree(d); st != types.StatusSuccess {
		return &types.NativeError{Op: "RegCopyTree " + p.String(), Code: st}
	}
	return nil
}

// DeleteTree removes every value and subkey of p with the native bulk
// delete. The key itself stays; RemoveKey afterwards removes it.
func (p *Path) DeleteTree() error {
	h, err := p.Open(types.KEY_ALL_ACCESS)
	if err != nil {
		return err
	}
	logger.Debug("delete tree", "path", p.String())
	if st := h.DeleteTree(); st != types.StatusSuccess {
		return &types.NativeError{Op: "RegDeleteTree " + p.String(), Code: st}
	}
	return nil
}

// Glob yields descendants whose path relative to p matches pattern: `*`,
// `?` and `[...]` within a key name, `**` across any number of levels.
// Matching is case-insensitive. Every call walks the tree afresh.
func (p *Path) Glob(pattern string) iter.Seq2[*Path, error] {
	return func(yield func(*Path, error) bool) {
		g, err := pathalg.CompileGlob(pattern)
		if err != nil {
			yield(nil, err)
			return
		}
		p.walk(g, nil, yield)
	}
}

// walk visits the children of p depth first. rel is p's path below the
// glob base. It returns false once yield asks to stop. Yielded paths belong
// to the caller; the walk descends through its own copies.
func (p *Path) walk(g pathalg.Glob, rel []string, yield func(*Path, error) bool) bool {
	if depth := g.MaxDepth(); depth >= 0 && len(rel) >= depth {
		return true
	}
	var children []*Path
	for c, err := range p.Children() {
		if err != nil {
			yield(nil, err)
			return false
		}
		children = append(children, c)
	}

	for _, c := range children {
		crel := append(rel[:len(rel):len(rel)], c.Name())
		if g.MatchSegments(crel) && !yield(c, nil) {
			return false
		}
		w := c.derive(c.addr)
		more := w.walk(g, crel, yield)
		_ = w.Close()
		if !more {
			return false
		}
	}
	return true
}
