package pathalg

import (
	"strings"

	"github.com/joshuapare/regpath/pkg/types"
)

// Standard root store names and their abbreviations. Lookups are
// case-insensitive; the table itself is never written after init.
const (
	HKEYClassesRoot      = "HKEY_CLASSES_ROOT"
	HKEYClassesRootShort = "HKCR"

	HKEYCurrentUser      = "HKEY_CURRENT_USER"
	HKEYCurrentUserShort = "HKCU"

	HKEYLocalMachine      = "HKEY_LOCAL_MACHINE"
	HKEYLocalMachineShort = "HKLM"

	HKEYUsers      = "HKEY_USERS"
	HKEYUsersShort = "HKU"

	HKEYPerformanceData = "HKEY_PERFORMANCE_DATA"

	HKEYCurrentConfig      = "HKEY_CURRENT_CONFIG"
	HKEYCurrentConfigShort = "HKCC"

	HKEYDynData = "HKEY_DYN_DATA"
)

var rootKeys = map[string]types.RootKey{
	HKEYClassesRoot:        types.HKEY_CLASSES_ROOT,
	HKEYClassesRootShort:   types.HKEY_CLASSES_ROOT,
	HKEYCurrentUser:        types.HKEY_CURRENT_USER,
	HKEYCurrentUserShort:   types.HKEY_CURRENT_USER,
	HKEYLocalMachine:       types.HKEY_LOCAL_MACHINE,
	HKEYLocalMachineShort:  types.HKEY_LOCAL_MACHINE,
	HKEYUsers:              types.HKEY_USERS,
	HKEYUsersShort:         types.HKEY_USERS,
	HKEYPerformanceData:    types.HKEY_PERFORMANCE_DATA,
	HKEYCurrentConfig:      types.HKEY_CURRENT_CONFIG,
	HKEYCurrentConfigShort: types.HKEY_CURRENT_CONFIG,
	HKEYDynData:            types.HKEY_DYN_DATA,
}

// LookupRoot maps a root name (long or short form, any case) to its root key.
func LookupRoot(name string) (types.RootKey, bool) {
	k, ok := rootKeys[strings.ToUpper(name)]
	return k, ok
}

// IsRootName reports whether name is in the root enumeration.
func IsRootName(name string) bool {
	_, ok := LookupRoot(name)
	return ok
}

// SplitRemote splits a remote drive `\\computer\ROOT` into the computer
// part (with its leading `\\`) and the root name. ok is false for local drives.
func SplitRemote(drive string) (computer, root string, ok bool) {
	if !isUNC(drive) {
		return "", "", false
	}
	i := strings.LastIndexByte(drive, SepByte)
	if i < len(uncPrefix) {
		return "", "", false
	}
	return drive[:i], drive[i+1:], true
}

// ResolveRootKey maps an address drive to the root key it names, following
// the remote form to its root component.
func ResolveRootKey(drive string) (types.RootKey, error) {
	name := drive
	if _, root, ok := SplitRemote(drive); ok {
		name = root
	}
	k, ok := LookupRoot(name)
	if !ok {
		return 0, types.Errorf(types.ErrKindUnknownRoot, "unknown registry root %q", name)
	}
	return k, nil
}
