package registry

import "strings"

// Separator is the canonical registry path separator.
const Separator = `\`

// NormalizePath converts forward slashes to backslashes.
func NormalizePath(path string) string {
	return strings.ReplaceAll(path, "/", Separator)
}

// LeafName returns the last segment of a key path after normalizing
// separators and dropping one trailing separator:
//
//	LeafName(`HKLM\Software\Foo\`) == "Foo"
//	LeafName("HKLM/Software/Foo")  == "Foo"
//	LeafName("")                   == ""
func LeafName(path string) string {
	path = strings.TrimSuffix(NormalizePath(path), Separator)
	return path[strings.LastIndex(path, Separator)+1:]
}

// JoinPath joins key path segments with the canonical separator, skipping
// empty segments.
func JoinPath(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(NormalizePath(p), Separator)
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, Separator)
}
