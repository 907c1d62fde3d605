package types

import (
	"fmt"
	"time"
)

// -----------------------------------------------------------------------------
// Value Types
// -----------------------------------------------------------------------------

// RegType enumerates Windows registry value types commonly encountered.
// (The numbers align with Windows definitions.)
type RegType uint32

const (
	REG_NONE                       RegType = 0
	REG_SZ                         RegType = 1
	REG_EXPAND_SZ                  RegType = 2
	REG_BINARY                     RegType = 3
	REG_DWORD                      RegType = 4
	REG_DWORD_LE                   RegType = 4 // alias for clarity
	REG_DWORD_BE                   RegType = 5
	REG_LINK                       RegType = 6
	REG_MULTI_SZ                   RegType = 7
	REG_RESOURCE_LIST              RegType = 8
	REG_FULL_RESOURCE_DESCRIPTOR   RegType = 9
	REG_RESOURCE_REQUIREMENTS_LIST RegType = 10
	REG_QWORD                      RegType = 11
)

// String implements the Stringer interface for RegType
func (t RegType) String() string {
	switch t {
	case REG_NONE:
		return "REG_NONE"
	case REG_SZ:
		return "REG_SZ"
	case REG_EXPAND_SZ:
		return "REG_EXPAND_SZ"
	case REG_BINARY:
		return "REG_BINARY"
	case REG_DWORD:
		return "REG_DWORD"
	case REG_DWORD_BE:
		return "REG_DWORD_BE"
	case REG_LINK:
		return "REG_LINK"
	case REG_MULTI_SZ:
		return "REG_MULTI_SZ"
	case REG_RESOURCE_LIST:
		return "REG_RESOURCE_LIST"
	case REG_FULL_RESOURCE_DESCRIPTOR:
		return "REG_FULL_RESOURCE_DESCRIPTOR"
	case REG_RESOURCE_REQUIREMENTS_LIST:
		return "REG_RESOURCE_REQUIREMENTS_LIST"
	case REG_QWORD:
		return "REG_QWORD"
	default:
		// Signed, so garbage types read back from a store stay recognisable.
		return fmt.Sprintf("UNKNOWN_TYPE_%d", int32(t))
	}
}

// -----------------------------------------------------------------------------
// Root Stores
// -----------------------------------------------------------------------------

// RootKey identifies one of the predefined top-level registry stores.
// The numbers align with the Windows HKEY_* handle constants.
type RootKey uint32

const (
	HKEY_CLASSES_ROOT     RootKey = 0x80000000
	HKEY_CURRENT_USER     RootKey = 0x80000001
	HKEY_LOCAL_MACHINE    RootKey = 0x80000002
	HKEY_USERS            RootKey = 0x80000003
	HKEY_PERFORMANCE_DATA RootKey = 0x80000004
	HKEY_CURRENT_CONFIG   RootKey = 0x80000005
	HKEY_DYN_DATA         RootKey = 0x80000006
)

// String returns the canonical long name of the root store.
func (r RootKey) String() string {
	switch r {
	case HKEY_CLASSES_ROOT:
		return "HKEY_CLASSES_ROOT"
	case HKEY_CURRENT_USER:
		return "HKEY_CURRENT_USER"
	case HKEY_LOCAL_MACHINE:
		return "HKEY_LOCAL_MACHINE"
	case HKEY_USERS:
		return "HKEY_USERS"
	case HKEY_PERFORMANCE_DATA:
		return "HKEY_PERFORMANCE_DATA"
	case HKEY_CURRENT_CONFIG:
		return "HKEY_CURRENT_CONFIG"
	case HKEY_DYN_DATA:
		return "HKEY_DYN_DATA"
	default:
		return fmt.Sprintf("HKEY_0x%08X", uint32(r))
	}
}

// -----------------------------------------------------------------------------
// Access Rights
// -----------------------------------------------------------------------------

// Access is a registry key access-rights mask (REGSAM).
type Access uint32

const (
	KEY_QUERY_VALUE        Access = 0x0001
	KEY_SET_VALUE          Access = 0x0002
	KEY_CREATE_SUB_KEY     Access = 0x0004
	KEY_ENUMERATE_SUB_KEYS Access = 0x0008
	KEY_NOTIFY             Access = 0x0010
	KEY_CREATE_LINK        Access = 0x0020
	KEY_WOW64_64KEY        Access = 0x0100
	KEY_WOW64_32KEY        Access = 0x0200

	DELETE               Access = 0x00010000
	STANDARD_RIGHTS_READ Access = 0x00020000
	// STANDARD_RIGHTS_WRITE is READ_CONTROL, the same bit as STANDARD_RIGHTS_READ.
	STANDARD_RIGHTS_WRITE Access = 0x00020000
	STANDARD_RIGHTS_ALL   Access = 0x001F0000
	SYNCHRONIZE           Access = 0x00100000

	KEY_READ       Access = (STANDARD_RIGHTS_READ | KEY_QUERY_VALUE | KEY_ENUMERATE_SUB_KEYS | KEY_NOTIFY) &^ SYNCHRONIZE
	KEY_WRITE      Access = (STANDARD_RIGHTS_WRITE | KEY_SET_VALUE | KEY_CREATE_SUB_KEY) &^ SYNCHRONIZE
	KEY_EXECUTE    Access = KEY_READ &^ SYNCHRONIZE
	KEY_ALL_ACCESS Access = (STANDARD_RIGHTS_ALL | KEY_QUERY_VALUE | KEY_SET_VALUE | KEY_CREATE_SUB_KEY |
		KEY_ENUMERATE_SUB_KEYS | KEY_NOTIFY | KEY_CREATE_LINK) &^ SYNCHRONIZE
)

// Covers reports whether a handle granted a carries every right in want.
func (a Access) Covers(want Access) bool {
	return a&want == want
}

// Writes reports whether the mask asks for value-setting or subkey-creation
// rights, which is what selects create over open.
func (a Access) Writes() bool {
	return a&(KEY_SET_VALUE|KEY_CREATE_SUB_KEY) != 0
}

// String renders the well-known composite masks by name and anything else in hex.
func (a Access) String() string {
	switch a {
	case KEY_READ:
		return "KEY_READ"
	case KEY_WRITE:
		return "KEY_WRITE"
	case KEY_ALL_ACCESS:
		return "KEY_ALL_ACCESS"
	case KEY_WRITE | DELETE:
		return "KEY_WRITE|DELETE"
	case STANDARD_RIGHTS_READ:
		return "STANDARD_RIGHTS_READ"
	default:
		return fmt.Sprintf("0x%08X", uint32(a))
	}
}

// View selects the 32-bit or 64-bit registry view for DeleteKeyEx.
type View = Access

// -----------------------------------------------------------------------------
// Native Status Codes
// -----------------------------------------------------------------------------

// Status is the raw Win32 status returned by native bulk operations
// (RegCopyTree, RegDeleteTree). Zero is success.
type Status uint32

const (
	StatusSuccess        Status = 0
	StatusFileNotFound   Status = 2
	StatusAccessDenied   Status = 5
	StatusInvalidHandle  Status = 6
	StatusInvalidParam   Status = 87
	StatusNoMoreItems    Status = 259
	StatusKeyDeleted     Status = 1018
	StatusNotRegistryKey Status = 1016
)

// -----------------------------------------------------------------------------
// Key Metadata
// -----------------------------------------------------------------------------

// KeyInfo is the result of a key-info query (RegQueryInfoKey).
type KeyInfo struct {
	SubkeyN   int       // number of direct child keys
	ValueN    int       // number of values
	LastWrite time.Time // last-write timestamp, zero if the store keeps none
}

// RawValue is a name/data/type triple as the store returns it. Data is the
// undecoded byte image; the default value has an empty Name.
type RawValue struct {
	Name string
	Type RegType
	Data []byte
}

// -----------------------------------------------------------------------------
// Native Registry API (consumed, not implemented, by regpath)
// -----------------------------------------------------------------------------

// Registry is the entry point of a registry store: it hands out root handles
// for the predefined stores, locally or on a remote computer.
type Registry interface {
	// Root returns the handle of a predefined local root. Root handles are
	// owned by the store; closing them is a no-op.
	Root(root RootKey) (Key, error)

	// ConnectRemote connects to a predefined root on another computer
	// (RegConnectRegistry). The computer name carries its leading `\\`.
	// The returned handle must be closed by the caller.
	ConnectRemote(computer string, root RootKey) (Key, error)
}

// Key is an opened registry key. A handle remembers the rights it was opened
// with; operations outside them fail with ErrAccessDenied.
//
// Enumeration is by index against the live key: a concurrent mutation
// between two index reads shifts the remaining indices. Implementations do
// not snapshot.
type Key interface {
	// Close releases the handle. Closing twice is an error for native handles.
	Close() error

	// OpenKey opens subpath below this key (RegOpenKeyEx). An empty subpath
	// opens a new handle to this key.
	OpenKey(subpath string, access Access) (Key, error)

	// CreateKey opens subpath below this key, creating every missing
	// component (RegCreateKeyEx).
	CreateKey(subpath string, access Access) (Key, error)

	// Info reports subkey count, value count and last-write time.
	Info() (KeyInfo, error)

	// EnumKey returns the name of the index-th subkey, ErrNoMoreItems past the end.
	EnumKey(index int) (string, error)

	// EnumValue returns the index-th value, ErrNoMoreItems past the end.
	EnumValue(index int) (RawValue, error)

	// GetValue reads a named value; "" reads the default value.
	GetValue(name string) (RawValue, error)

	// SetValue writes a named value with an explicit type.
	SetValue(name string, typ RegType, data []byte) error

	// DeleteValue removes a named value; ErrNotFound when absent.
	DeleteValue(name string) error

	// DeleteKey removes this key. It fails with ErrKeyNotEmpty while subkeys remain.
	DeleteKey() error

	// DeleteKeyEx removes this key from the given platform view.
	DeleteKeyEx(view View) error

	// Flush writes the key's attributes to the backing store.
	Flush() error

	// LoadHive creates subkey below this key from a hive file (RegLoadKey).
	LoadHive(subkey, file string) error

	// SaveHive writes this key and its descendants to a hive file (RegSaveKey).
	SaveHive(file string) error

	// CopyTree copies every subkey and value of this key into dst (RegCopyTree).
	CopyTree(dst Key) Status

	// DeleteTree removes every subkey and value of this key, leaving the key
	// itself in place (RegDeleteTree with a NULL subkey).
	DeleteTree() Status
}
