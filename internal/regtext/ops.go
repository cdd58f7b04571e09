package regtext

import "github.com/joshuapare/regedit/pkg/types"

// Op is one entry parsed from .reg text. Paths are full key paths
// including the hive, as written in the section header.
type Op interface {
	// KeyPath returns the key the entry applies to.
	KeyPath() string
}

// CreateKey is a [section] header.
type CreateKey struct {
	Path string
}

// SetValue is a value line below a section. Data is the raw registry data.
type SetValue struct {
	Path string
	Name string
	Type types.RegType
	Data []byte
}

// DeleteKey is a [-section] header.
type DeleteKey struct {
	Path string
}

// DeleteValue is a "name"=- line.
type DeleteValue struct {
	Path string
	Name string
}

func (o CreateKey) KeyPath() string   { return o.Path }
func (o SetValue) KeyPath() string    { return o.Path }
func (o DeleteKey) KeyPath() string   { return o.Path }
func (o DeleteValue) KeyPath() string { return o.Path }
