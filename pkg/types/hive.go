package types

import "strings"

// Hive identifies a predefined root key. The numbers match the Windows
// HKEY_* handle values.
type Hive uint32

const (
	ClassesRoot     Hive = 0x80000000
	CurrentUser     Hive = 0x80000001
	LocalMachine    Hive = 0x80000002
	Users           Hive = 0x80000003
	PerformanceData Hive = 0x80000004
	CurrentConfig   Hive = 0x80000005
)

var hiveNames = map[Hive][2]string{
	ClassesRoot:     {"HKEY_CLASSES_ROOT", "HKCR"},
	CurrentUser:     {"HKEY_CURRENT_USER", "HKCU"},
	LocalMachine:    {"HKEY_LOCAL_MACHINE", "HKLM"},
	Users:           {"HKEY_USERS", "HKU"},
	PerformanceData: {"HKEY_PERFORMANCE_DATA", "HKPD"},
	CurrentConfig:   {"HKEY_CURRENT_CONFIG", "HKCC"},
}

// Valid reports whether h is one of the predefined root hives.
func (h Hive) Valid() bool {
	_, ok := hiveNames[h]
	return ok
}

// String returns the full HKEY_* name.
func (h Hive) String() string {
	if n, ok := hiveNames[h]; ok {
		return n[0]
	}
	return "Unknown"
}

// Short returns the abbreviated name (HKLM, HKCU, ...).
func (h Hive) Short() string {
	if n, ok := hiveNames[h]; ok {
		return n[1]
	}
	return "Unknown"
}

// ParseHive maps a full or abbreviated hive name, case-insensitively, to a Hive.
func ParseHive(s string) (Hive, error) {
	tok := normalizeToken(s)
	for h, n := range hiveNames {
		if tok == n[0] || tok == n[1] {
			return h, nil
		}
	}
	return 0, NewError(ErrKindInvalidHive, ErrInvalidHive.Msg, s, nil)
}

// SplitHivePath splits "HKLM\Software\Foo" into its hive and the remaining
// path. ok is false when the first segment names no hive.
func SplitHivePath(path string) (Hive, string, bool) {
	path = strings.TrimLeft(strings.ReplaceAll(path, "/", `\`), `\`)
	first, rest, _ := strings.Cut(path, `\`)
	h, err := ParseHive(first)
	if err != nil {
		return 0, path, false
	}
	return h, rest, true
}

func normalizeToken(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
