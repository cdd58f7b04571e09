package types

import (
	"strconv"
	"strings"
)

// Access is a registry access-rights mask (the Windows KEY_* values).
type Access uint32

const (
	AccessQueryValue       Access = 0x0001
	AccessSetValue         Access = 0x0002
	AccessCreateSubKey     Access = 0x0004
	AccessEnumerateSubKeys Access = 0x0008
	AccessNotify           Access = 0x0010
	AccessCreateLink       Access = 0x0020
	AccessWow64_64Key      Access = 0x0100
	AccessWow64_32Key      Access = 0x0200

	AccessRead    Access = 0x20019
	AccessWrite   Access = 0x20006
	AccessExecute Access = 0x20019
	AccessAll     Access = 0xf003f
)

// DefaultAccess is used when no access mask is requested.
const DefaultAccess = AccessRead | AccessWrite

// CanQuery reports whether a handle with this mask may read values.
func (a Access) CanQuery() bool { return a&AccessQueryValue != 0 }

// CanSet reports whether a handle with this mask may write values.
func (a Access) CanSet() bool { return a&AccessSetValue != 0 }

// CanCreate reports whether a handle with this mask may create subkeys.
func (a Access) CanCreate() bool { return a&AccessCreateSubKey != 0 }

// CanEnumerate reports whether a handle with this mask may list subkeys.
func (a Access) CanEnumerate() bool { return a&AccessEnumerateSubKeys != 0 }

var accessNames = []struct {
	name string
	mask Access
}{
	{"all", AccessAll},
	{"read", AccessRead},
	{"write", AccessWrite},
	{"query", AccessQueryValue},
	{"set", AccessSetValue},
	{"create", AccessCreateSubKey},
	{"enumerate", AccessEnumerateSubKeys},
	{"notify", AccessNotify},
	{"link", AccessCreateLink},
	{"wow64_64", AccessWow64_64Key},
	{"wow64_32", AccessWow64_32Key},
}

// ParseAccess parses a "|"- or ","-separated list of access names
// ("read|write", "all") or a numeric mask ("0x20019").
func ParseAccess(s string) (Access, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultAccess, nil
	}
	if n, err := strconv.ParseUint(s, 0, 32); err == nil {
		return Access(n), nil
	}
	var mask Access
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		part = strings.ToLower(strings.TrimSpace(part))
		found := false
		for _, an := range accessNames {
			if an.name == part {
				mask |= an.mask
				found = true
				break
			}
		}
		if !found {
			return 0, NewError(ErrKindAccess, "unknown access right", part, nil)
		}
	}
	return mask, nil
}

// String renders the mask as its composite names where possible.
func (a Access) String() string {
	switch a {
	case AccessAll:
		return "all"
	case AccessRead | AccessWrite:
		return "read|write"
	case AccessRead:
		return "read"
	case AccessWrite:
		return "write"
	}
	return "0x" + strconv.FormatUint(uint64(a), 16)
}
