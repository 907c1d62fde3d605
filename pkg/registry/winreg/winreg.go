//go:build windows

// Package winreg is the native registry store: handles are real HKEYs and
// every operation is the corresponding advapi32 call.
package winreg

import (
	"errors"
	"syscall"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"github.com/joshuapare/regpath/internal/logger"
	"github.com/joshuapare/regpath/pkg/types"
)

var (
	advapi32 = windows.NewLazySystemDLL("advapi32.dll")

	procRegEnumValueW   = advapi32.NewProc("RegEnumValueW")
	procRegSetValueExW  = advapi32.NewProc("RegSetValueExW")
	procRegDeleteKeyExW = advapi32.NewProc("RegDeleteKeyExW")
	procRegFlushKey     = advapi32.NewProc("RegFlushKey")
	procRegLoadKeyW     = advapi32.NewProc("RegLoadKeyW")
	procRegSaveKeyW     = advapi32.NewProc("RegSaveKeyW")
	procRegCopyTreeW    = advapi32.NewProc("RegCopyTreeW")
	procRegDeleteTreeW  = advapi32.NewProc("RegDeleteTreeW")
)

// Win32 error numbers the store reports.
const (
	errFileNotFound  = syscall.Errno(2)
	errPathNotFound  = syscall.Errno(3)
	errAccessDenied  = syscall.Errno(5)
	errInvalidHandle = syscall.Errno(6)
	errMoreData      = syscall.Errno(234)
	errNoMoreItems   = syscall.Errno(259)
	errKeyDeleted    = syscall.Errno(1018)
)

// maxKeyNameLen is the longest key name the registry allows, in UTF-16 units.
const maxKeyNameLen = 255

// Registry is the local Windows registry.
type Registry struct{}

// New returns the native registry.
func New() *Registry { return &Registry{} }

var _ types.Registry = (*Registry)(nil)

// Root returns a predefined HKEY. Closing it is a no-op.
func (*Registry) Root(root types.RootKey) (types.Key, error) {
	switch root {
	case types.HKEY_CLASSES_ROOT, types.HKEY_CURRENT_USER, types.HKEY_LOCAL_MACHINE,
		types.HKEY_USERS, types.HKEY_PERFORMANCE_DATA, types.HKEY_CURRENT_CONFIG, types.HKEY_DYN_DATA:
		return &key{h: registry.Key(root), name: root.String(), predefined: true}, nil
	default:
		return nil, types.Errorf(types.ErrKindUnknownRoot, "unknown registry root %s", root)
	}
}

// ConnectRemote calls RegConnectRegistry. computer carries its leading `\\`.
func (*Registry) ConnectRemote(computer string, root types.RootKey) (types.Key, error) {
	logger.Debug("connect registry", "computer", computer, "root", root.String())
	h, err := registry.OpenRemoteKey(computer, registry.Key(root))
	if err != nil {
		return nil, classify(err, "connect %s\\%s", computer, root)
	}
	return &key{h: h, name: computer + `\` + root.String()}, nil
}

// classify maps a Win32 error onto an error kind, keeping the errno as the
// cause.
func classify(err error, format string, args ...any) error {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return err
	}
	kind := types.ErrKindNative
	switch errno {
	case errFileNotFound, errPathNotFound:
		kind = types.ErrKindNotFound
	case errAccessDenied:
		kind = types.ErrKindAccessDenied
	case errNoMoreItems:
		kind = types.ErrKindNoMoreItems
	case errKeyDeleted:
		kind = types.ErrKindKeyDeleted
	case errInvalidHandle:
		kind = types.ErrKindState
	}
	return types.Wrap(kind, err, format, args...)
}

// lstatus turns the return of an advapi32 call into an error.
func lstatus(r uintptr) error {
	if r != 0 {
		return syscall.Errno(r)
	}
	return nil
}
