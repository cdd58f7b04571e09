package registry

import "github.com/joshuapare/regedit/internal/winapi"

// Expand replaces %NAME% placeholders in s using the native
// ExpandEnvironmentStrings call.
func Expand(s string) (string, error) {
	return winapi.New().ExpandEnvironmentStrings(s)
}
