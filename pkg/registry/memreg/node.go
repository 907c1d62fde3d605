package memreg

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/joshuapare/regpath/pkg/types"
)

type node struct {
	name      string
	parent    *node
	children  map[string]*node // by folded name
	values    []*value         // insertion order
	lastWrite time.Time
	deleted   bool
}

type value struct {
	name string
	typ  types.RegType
	data []byte
}

func newNode(name string, parent *node, now time.Time) *node {
	return &node{name: name, parent: parent, children: make(map[string]*node), lastWrite: now}
}

func fold(s string) string {
	return cases.Fold().String(s)
}

// splitPath splits a backslash separated subpath, dropping empty segments.
func splitPath(p string) []string {
	var segs []string
	for _, s := range strings.Split(p, `\`) {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// sortedChildren orders children the way the native store enumerates them:
// case-insensitively by name.
func (n *node) sortedChildren() []*node {
	out := make([]*node, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b *node) int {
		return strings.Compare(fold(a.name), fold(b.name))
	})
	return out
}

// walk follows segs below n. It returns the deepest node reached and the
// number of segments consumed.
func (n *node) walk(segs []string) (*node, int) {
	cur := n
	for i, s := range segs {
		next, ok := cur.children[fold(s)]
		if !ok {
			return cur, i
		}
		cur = next
	}
	return cur, len(segs)
}

func (n *node) valueIndex(name string) int {
	f := fold(name)
	for i, v := range n.values {
		if fold(v.name) == f {
			return i
		}
	}
	return -1
}

func (n *node) setValue(name string, typ types.RegType, data []byte, now time.Time) {
	data = append([]byte(nil), data...)
	if i := n.valueIndex(name); i >= 0 {
		n.values[i].typ = typ
		n.values[i].data = data
	} else {
		n.values = append(n.values, &value{name: name, typ: typ, data: data})
	}
	n.lastWrite = now
}

// detach removes n from its parent and marks the whole subtree deleted so
// stale handles notice.
func (n *node) detach(now time.Time) {
	if n.parent != nil {
		delete(n.parent.children, fold(n.name))
		n.parent.lastWrite = now
	}
	n.markDeleted()
}

func (n *node) markDeleted() {
	n.deleted = true
	for _, c := range n.children {
		c.markDeleted()
	}
}

// copyInto merges n's values and subtree into dst, overwriting values of the
// same name.
func (n *node) copyInto(dst *node, now time.Time) {
	for _, v := range n.values {
		dst.setValue(v.name, v.typ, v.data, now)
	}
	for _, c := range n.sortedChildren() {
		target, ok := dst.children[fold(c.name)]
		if !ok {
			target = newNode(c.name, dst, now)
			dst.children[fold(c.name)] = target
			dst.lastWrite = now
		}
		c.copyInto(target, now)
	}
}

// isAncestorOf reports whether n is m or one of m's ancestors.
func (n *node) isAncestorOf(m *node) bool {
	for p := m; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}
