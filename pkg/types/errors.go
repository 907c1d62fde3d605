package types

import "fmt"

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindInvalidAddress       ErrKind = iota // malformed or un-rooted path text
	ErrKindUnknownRoot                         // root name outside the enumeration
	ErrKindNotFound                            // missing key or value
	ErrKindAccessDenied                        // handle lacks the rights for the operation
	ErrKindInvalidValue                        // value of a supported type but out of range
	ErrKindUnsupportedValueType                // value whose type has no registry mapping
	ErrKindUnsupported                         // valid feature we don't support (yet)
	ErrKindUnsupportedOperation                // operation meaningless for registry paths
	ErrKindKeyNotEmpty                         // key still has subkeys
	ErrKindKeyDeleted                          // handle refers to a key removed from the store
	ErrKindNoMoreItems                         // enumeration index past the end
	ErrKindNative                              // nonzero status from a native bulk operation
	ErrKindState                               // invalid operation for current state (e.g., closed)
)

// String names the kind for log output.
func (k ErrKind) String() string {
	switch k {
	case ErrKindInvalidAddress:
		return "invalid-address"
	case ErrKindUnknownRoot:
		return "unknown-root"
	case ErrKindNotFound:
		return "not-found"
	case ErrKindAccessDenied:
		return "access-denied"
	case ErrKindInvalidValue:
		return "invalid-value"
	case ErrKindUnsupportedValueType:
		return "unsupported-value-type"
	case ErrKindUnsupported:
		return "unsupported"
	case ErrKindUnsupportedOperation:
		return "unsupported-operation"
	case ErrKindKeyNotEmpty:
		return "key-not-empty"
	case ErrKindKeyDeleted:
		return "key-deleted"
	case ErrKindNoMoreItems:
		return "no-more-items"
	case ErrKindNative:
		return "native"
	case ErrKindState:
		return "state"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so a detailed error satisfies
// errors.Is against the sentinel of its category.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Errorf builds a typed error of the given kind.
func Errorf(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying cause.
func Wrap(kind ErrKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Sentinels commonly returned by implementations.
var (
	// ErrInvalidAddress indicates path text that does not parse to a usable address.
	ErrInvalidAddress = &Error{Kind: ErrKindInvalidAddress, Msg: "invalid registry address"}
	// ErrUnknownRoot indicates a root name outside the predefined stores.
	ErrUnknownRoot = &Error{Kind: ErrKindUnknownRoot, Msg: "unknown registry root"}
	// ErrNotFound indicates a missing key or value.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "not found"}
	// ErrAccessDenied indicates the handle or caller lacks the required rights.
	ErrAccessDenied = &Error{Kind: ErrKindAccessDenied, Msg: "access denied"}
	// ErrInvalidValue indicates a value that cannot be stored as its inferred type.
	ErrInvalidValue = &Error{Kind: ErrKindInvalidValue, Msg: "invalid registry value"}
	// ErrUnsupportedValueType indicates a Go value with no registry type mapping.
	ErrUnsupportedValueType = &Error{Kind: ErrKindUnsupportedValueType, Msg: "unsupported value type"}
	// ErrUnsupported indicates a recognized but unsupported feature/variant.
	ErrUnsupported = &Error{Kind: ErrKindUnsupported, Msg: "unsupported"}
	// ErrUnsupportedOperation indicates an operation registry paths cannot perform.
	ErrUnsupportedOperation = &Error{Kind: ErrKindUnsupportedOperation, Msg: "unsupported operation"}
	// ErrKeyNotEmpty indicates DeleteKey on a key that still has subkeys.
	ErrKeyNotEmpty = &Error{Kind: ErrKindKeyNotEmpty, Msg: "key has subkeys"}
	// ErrKeyDeleted indicates an operation through a handle whose key was removed.
	ErrKeyDeleted = &Error{Kind: ErrKindKeyDeleted, Msg: "key has been deleted"}
	// ErrNoMoreItems indicates an enumeration index past the end.
	ErrNoMoreItems = &Error{Kind: ErrKindNoMoreItems, Msg: "no more items"}
	// ErrNativeOperationFailed indicates a nonzero native status; see NativeError.
	ErrNativeOperationFailed = &Error{Kind: ErrKindNative, Msg: "native operation failed"}
	// ErrClosed indicates use of a closed handle.
	ErrClosed = &Error{Kind: ErrKindState, Msg: "handle is closed"}
)

// NativeError carries the raw status of a failed native bulk operation.
type NativeError struct {
	Op   string
	Code Status
}

func (e *NativeError) Error() string {
	return fmt.Sprintf("%s: native status %d (0x%X)", e.Op, uint32(e.Code), uint32(e.Code))
}

// Is reports a match against ErrNativeOperationFailed.
func (e *NativeError) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == ErrKindNative
}
