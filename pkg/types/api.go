package types

import (
	"errors"
	"fmt"
	"strconv"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindNotFound        ErrKind = iota // missing key/value, or unset default value
	ErrKindUnsupportedType                // Go value has no registry representation
	ErrKindType                           // value does not match the requested RegType
	ErrKindAccess                         // handle lacks the rights for the operation
	ErrKindConnection                     // connecting to a (remote) hive failed
	ErrKindInvalidHive                    // unknown root hive identifier
	ErrKindWrite                          // writing a value or creating a key failed
	ErrKindState                          // invalid operation for current state (e.g., closed)
	ErrKindUnsupported                    // operation not available here
	ErrKindEnd                            // enumeration index past the last item
)

var errKindNames = [...]string{
	ErrKindNotFound:        "not_found",
	ErrKindUnsupportedType: "unsupported_type",
	ErrKindType:            "type_mismatch",
	ErrKindAccess:          "access",
	ErrKindConnection:      "connection",
	ErrKindInvalidHive:     "invalid_hive",
	ErrKindWrite:           "write",
	ErrKindState:           "state",
	ErrKindUnsupported:     "unsupported",
	ErrKindEnd:             "end",
}

func (k ErrKind) String() string {
	if k >= 0 && int(k) < len(errKindNames) {
		return errKindNames[k]
	}
	return "kind_" + strconv.Itoa(int(k))
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Name string // key path or value name the error refers to, if any
	Err  error  // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Msg
	if e.Name != "" {
		msg = fmt.Sprintf("%s: %q", msg, e.Name)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, ErrNotFound) matches every not-found error regardless of
// the name or cause it carries.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels commonly returned by implementations.
var (
	// ErrNotFound indicates neither a subkey nor a value exists under a name,
	// or that a key has no default value.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "no key or value found"}
	// ErrUnsupportedType indicates a Go value that maps to no registry type.
	ErrUnsupportedType = &Error{Kind: ErrKindUnsupportedType, Msg: "unsupported value type"}
	// ErrTypeMismatch indicates the value cannot be encoded as the requested type.
	ErrTypeMismatch = &Error{Kind: ErrKindType, Msg: "value does not match registry type"}
	// ErrAccess indicates the operation exceeds the handle's access rights.
	ErrAccess = &Error{Kind: ErrKindAccess, Msg: "access denied"}
	// ErrConnection indicates the root connect call failed.
	ErrConnection = &Error{Kind: ErrKindConnection, Msg: "cannot connect to registry"}
	// ErrInvalidHive indicates an unrecognized root hive identifier.
	ErrInvalidHive = &Error{Kind: ErrKindInvalidHive, Msg: "invalid root hive"}
	// ErrWrite indicates a failed value write or key creation.
	ErrWrite = &Error{Kind: ErrKindWrite, Msg: "registry write failed"}
	// ErrClosed indicates an operation on a key whose handle was released.
	ErrClosed = &Error{Kind: ErrKindState, Msg: "key is closed"}
	// ErrUnsupportedPlatform indicates the native registry is unavailable.
	ErrUnsupportedPlatform = &Error{Kind: ErrKindUnsupported, Msg: "windows registry is not available on this platform"}
	// ErrNoMoreItems is the end-of-enumeration signal of Backend.EnumKey and
	// Backend.EnumValue. It is consumed by iterators and never surfaces from
	// the enumeration API.
	ErrNoMoreItems = &Error{Kind: ErrKindEnd, Msg: "no more items"}
)

// NewError builds a typed error of the given kind referring to name.
func NewError(kind ErrKind, msg, name string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Name: name, Err: cause}
}

// KindOf returns the ErrKind of the first *Error in err's chain.
func KindOf(err error) (ErrKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsEnd reports whether err is the end-of-enumeration signal.
func IsEnd(err error) bool { return errors.Is(err, ErrNoMoreItems) }

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

var regTypeNames = map[RegType]string{
	REG_NONE:                       "REG_NONE",
	REG_SZ:                         "REG_SZ",
	REG_EXPAND_SZ:                  "REG_EXPAND_SZ",
	REG_BINARY:                     "REG_BINARY",
	REG_DWORD:                      "REG_DWORD",
	REG_DWORD_BE:                   "REG_DWORD_BE",
	REG_LINK:                       "REG_LINK",
	REG_MULTI_SZ:                   "REG_MULTI_SZ",
	REG_RESOURCE_LIST:              "REG_RESOURCE_LIST",
	REG_FULL_RESOURCE_DESCRIPTOR:   "REG_FULL_RESOURCE_DESCRIPTOR",
	REG_RESOURCE_REQUIREMENTS_LIST: "REG_RESOURCE_REQUIREMENTS_LIST",
	REG_QWORD:                      "REG_QWORD",
}

// String implements the Stringer interface for RegType
func (t RegType) String() string {
	if name, ok := regTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN_TYPE_%d", int32(t))
}

// ParseRegType accepts a REG_* name, its short form ("dword", "expand_sz",
// "string", ...) or a decimal type number.
func ParseRegType(s string) (RegType, error) {
	switch normalizeToken(s) {
	case "REG_NONE", "NONE":
		return REG_NONE, nil
	case "REG_SZ", "SZ", "STRING":
		return REG_SZ, nil
	case "REG_EXPAND_SZ", "EXPAND_SZ", "EXPAND":
		return REG_EXPAND_SZ, nil
	case "REG_BINARY", "BINARY", "HEX":
		return REG_BINARY, nil
	case "REG_DWORD", "DWORD":
		return REG_DWORD, nil
	case "REG_DWORD_BE", "DWORD_BE":
		return REG_DWORD_BE, nil
	case "REG_MULTI_SZ", "MULTI_SZ", "MULTI":
		return REG_MULTI_SZ, nil
	case "REG_QWORD", "QWORD":
		return REG_QWORD, nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, NewError(ErrKindUnsupportedType, "unknown registry type", s, nil)
	}
	return RegType(n), nil
}

// -----------------------------------------------------------------------------
// Native Registry API
// -----------------------------------------------------------------------------

// Handle is an opaque key handle issued by a Backend. Its meaning is private
// to the Backend that returned it.
type Handle uintptr

// Backend is the native registry API a key delegates to. Each method maps to
// exactly one registry call; value data crosses the boundary as raw registry
// bytes (UTF-16LE strings, little-endian integers).
//
// Errors must be typed: ErrNotFound for a missing key or value, ErrAccess for
// insufficient rights, ErrConnection from Connect, ErrNoMoreItems when an
// enumeration index is past the last item.
type Backend interface {
	// Connect opens a root hive, on computer when it is not empty.
	Connect(hive Hive, computer string) (Handle, error)

	// OpenKey opens the existing subkey path of parent.
	OpenKey(parent Handle, path string, access Access) (Handle, error)

	// CreateKey creates the subkey path of parent, or opens it when it exists.
	CreateKey(parent Handle, path string, access Access) (Handle, error)

	// CloseKey releases a handle returned by Connect, OpenKey or CreateKey.
	CloseKey(h Handle) error

	// QueryValue reads the named value; "" addresses the default value.
	QueryValue(h Handle, name string) (RegType, []byte, error)

	// SetValue writes the named value, replacing any existing one.
	SetValue(h Handle, name string, t RegType, data []byte) error

	// EnumKey returns the name of the index-th subkey.
	EnumKey(h Handle, index uint32) (string, error)

	// EnumValue returns the name, type and data of the index-th value.
	EnumValue(h Handle, index uint32) (string, RegType, []byte, error)

	// ExpandEnvironmentStrings replaces %NAME% tokens with environment values.
	ExpandEnvironmentStrings(s string) (string, error)
}
