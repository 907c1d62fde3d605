package regpath

import (
	"errors"

	"github.com/joshuapare/regpath/internal/logger"
	"github.com/joshuapare/regpath/internal/pathalg"
	"github.com/joshuapare/regpath/pkg/types"
)

// session is the mutable half of a Path: the resolved root and at most one
// open handle with the rights it was opened with.
type session struct {
	reg    types.Registry
	root   types.Key
	remote bool // root came from ConnectRemote and must be closed
	handle types.Key
	access types.Access
}

// RootKey resolves the root store of p, connecting to the remote computer
// for `\\computer\ROOT` paths. The result is cached until Close.
func (p *Path) RootKey() (types.Key, error) {
	s := p.s
	if s.root != nil {
		return s.root, nil
	}
	if !p.addr.IsAbs() {
		return nil, types.Errorf(types.ErrKindUnknownRoot, "%q has no root key", p.addr.String())
	}
	rk, err := pathalg.ResolveRootKey(p.addr.Drive)
	if err != nil {
		return nil, err
	}

	if computer, _, ok := pathalg.SplitRemote(p.addr.Drive); ok {
		logger.Debug("connect remote registry", "path", p.String(), "computer", computer, "root", rk.String())
		root, err := s.reg.ConnectRemote(computer, rk)
		if err != nil {
			return nil, err
		}
		s.root, s.remote = root, true
		return root, nil
	}

	root, err := s.reg.Root(rk)
	if err != nil {
		return nil, err
	}
	s.root = root
	return root, nil
}

// Open returns the cached handle when its rights cover access. Otherwise it
// closes any stale handle and opens a new one, creating the key when access
// asks for value-setting or subkey-creation rights.
func (p *Path) Open(access types.Access) (types.Key, error) {
	s := p.s
	if s.handle != nil && s.access.Covers(access) {
		return s.handle, nil
	}
	if s.handle != nil {
		logger.Debug("reopen key", "path", p.String(), "granted", s.access.String(), "access", access.String())
		err := s.handle.Close()
		s.handle, s.access = nil, 0
		if err != nil {
			return nil, err
		}
	}

	root, err := p.RootKey()
	if err != nil {
		return nil, err
	}
	var h types.Key
	if access.Writes() {
		logger.Debug("create key", "path", p.String(), "access", access.String())
		h, err = root.CreateKey(p.addr.Subpath(), access)
	} else {
		logger.Debug("open key", "path", p.String(), "access", access.String())
		h, err = root.OpenKey(p.addr.Subpath(), access)
	}
	if err != nil {
		return nil, err
	}
	s.handle, s.access = h, access
	return h, nil
}

// Access is the rights of the cached handle, zero when none is open.
func (p *Path) Access() types.Access { return p.s.access }

// Close releases the cached handle and any remote connection. Closing a
// Path with nothing open does nothing.
func (p *Path) Close() error {
	s := p.s
	var errs []error
	if s.handle != nil {
		logger.Debug("close key", "path", p.String(), "granted", s.access.String())
		errs = append(errs, s.handle.Close())
		s.handle, s.access = nil, 0
	}
	if s.remote {
		errs = append(errs, s.root.Close())
		s.root, s.remote = nil, false
	}
	return errors.Join(errs...)
}
