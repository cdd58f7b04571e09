package registry

import "github.com/joshuapare/regedit/pkg/types"

// Item is the result of Key.Get: an opened subkey or a value's data.
type Item struct {
	key   *Key
	value types.Value
}

// IsKey reports whether the name resolved to a subkey.
func (i Item) IsKey() bool { return i.key != nil }

// Key returns the opened subkey, or nil when the name resolved to a value.
// The caller owns the key and must close it.
func (i Item) Key() *Key { return i.key }

// Value returns the value data, or the zero Value for a subkey.
func (i Item) Value() types.Value { return i.value }

// Close closes the subkey, if any.
func (i Item) Close() error {
	if i.key == nil {
		return nil
	}
	return i.key.Close()
}
