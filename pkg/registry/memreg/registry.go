// Package memreg is an in-memory registry store implementing the
// types.Registry and types.Key contract: case-insensitive key names, ordered
// values, access-rights enforcement on handles, deleted-key detection and
// index-based enumeration against the live tree.
//
// Hives are saved and loaded as .reg text through a billy filesystem, the
// host filesystem by default.
package memreg

import (
	"strings"
	"sync"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/joshuapare/regpath/pkg/types"
)

var predefined = []types.RootKey{
	types.HKEY_CLASSES_ROOT,
	types.HKEY_CURRENT_USER,
	types.HKEY_LOCAL_MACHINE,
	types.HKEY_USERS,
	types.HKEY_PERFORMANCE_DATA,
	types.HKEY_CURRENT_CONFIG,
	types.HKEY_DYN_DATA,
}

// Registry is an in-memory registry. It is safe for concurrent use; every
// handle operation takes the registry lock.
type Registry struct {
	mu      sync.Mutex
	roots   map[types.RootKey]*node
	remotes map[string]*Registry
	fs      billy.Filesystem
	now     func() time.Time
}

// Option configures a Registry.
type Option func(*Registry)

// WithFilesystem sets the filesystem SaveHive and LoadHive use.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(r *Registry) { r.fs = fs }
}

// WithClock sets the time source for last-write timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// WithRemote makes remote reachable through ConnectRemote under computer
// (with or without the leading `\\`, any case).
func WithRemote(computer string, remote *Registry) Option {
	return func(r *Registry) { r.remotes[remoteKey(computer)] = remote }
}

// New returns an empty registry with every predefined root present.
func New(opts ...Option) *Registry {
	r := &Registry{
		roots:   make(map[types.RootKey]*node, len(predefined)),
		remotes: make(map[string]*Registry),
		fs:      osfs.New(""),
		now:     time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	for _, rk := range predefined {
		r.roots[rk] = newNode(rk.String(), nil, r.now())
	}
	return r
}

// Root returns the handle of a predefined root. It carries every right and
// closing it is a no-op.
func (r *Registry) Root(root types.RootKey) (types.Key, error) {
	n, ok := r.roots[root]
	if !ok {
		return nil, types.Errorf(types.ErrKindUnknownRoot, "unknown registry root %s", root)
	}
	return &key{reg: r, node: n, access: types.KEY_ALL_ACCESS, predefined: true}, nil
}

// ConnectRemote returns a root handle of a registry registered with
// WithRemote. Unlike local root handles it must be closed.
func (r *Registry) ConnectRemote(computer string, root types.RootKey) (types.Key, error) {
	remote, ok := r.remotes[remoteKey(computer)]
	if !ok {
		return nil, types.Errorf(types.ErrKindNotFound, "network path %s not found", computer)
	}
	n, ok := remote.roots[root]
	if !ok {
		return nil, types.Errorf(types.ErrKindUnknownRoot, "unknown registry root %s", root)
	}
	return &key{reg: remote, node: n, access: types.KEY_ALL_ACCESS}, nil
}

func remoteKey(computer string) string {
	return strings.ToUpper(strings.TrimLeft(computer, `\`))
}

var _ types.Registry = (*Registry)(nil)
