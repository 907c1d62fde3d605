// Package boltreg is a persistent registry store on a bbolt database, for
// hosts without a native registry.
//
// Every registry key is a bucket. A key bucket holds its original name and
// last-write time, a "keys" bucket with one nested bucket per child (keyed
// by the case-folded child name) and a "values" bucket with one record per
// value (keyed by the case-folded value name).
package boltreg

import (
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	bolt "go.etcd.io/bbolt"

	"github.com/joshuapare/regpath/internal/logger"
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

// Registry is a registry store persisted in one bbolt file.
type Registry struct {
	db   *bolt.DB
	path string
	fs   billy.Filesystem
	now  func() time.Time
	opts bolt.Options
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

// WithTimeout bounds how long Open waits for the database file lock.
func WithTimeout(d time.Duration) Option {
	return func(r *Registry) { r.opts.Timeout = d }
}

// Open opens or creates the database at path and makes sure every
// predefined root exists.
func Open(path string, opts ...Option) (*Registry, error) {
	r := &Registry{
		path: path,
		fs:   osfs.New(""),
		now:  time.Now,
		opts: bolt.Options{Timeout: time.Second},
	}
	for _, o := range opts {
		o(r)
	}

	db, err := bolt.Open(path, 0o644, &r.opts)
	if err != nil {
		return nil, err
	}
	r.db = db

	err = db.Update(func(tx *bolt.Tx) error {
		for _, rk := range predefined {
			if tx.Bucket([]byte(rk.String())) != nil {
				continue
			}
			b, err := tx.CreateBucket([]byte(rk.String()))
			if err != nil {
				return err
			}
			if err := initKeyBucket(b, rk.String(), r.now()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	logger.Debug("bolt registry open", "path", path)
	return r, nil
}

// Close closes the database. Handles must not be used afterwards.
func (r *Registry) Close() error {
	logger.Debug("bolt registry close", "path", r.path)
	return r.db.Close()
}

// Root returns the handle of a predefined root. It carries every right and
// closing it is a no-op.
func (r *Registry) Root(root types.RootKey) (types.Key, error) {
	for _, rk := range predefined {
		if rk == root {
			return &key{reg: r, root: root.String(), access: types.KEY_ALL_ACCESS, predefined: true}, nil
		}
	}
	return nil, types.Errorf(types.ErrKindUnknownRoot, "unknown registry root %s", root)
}

// ConnectRemote is not available: a database file has no network peers.
func (r *Registry) ConnectRemote(computer string, root types.RootKey) (types.Key, error) {
	return nil, types.Errorf(types.ErrKindUnsupported, "connect %s: bolt registry has no remote computers", computer)
}

var _ types.Registry = (*Registry)(nil)
