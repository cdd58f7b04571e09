package registry

import (
	"strings"

	"github.com/joshuapare/regedit/internal/format"
	"github.com/joshuapare/regedit/pkg/types"
)

// SubkeyIter walks the subkeys of a key one index at a time, opening each
// subkey only when Next reaches it. It is single-pass.
//
//	it := k.Subkeys()
//	for it.Next() {
//	    sub := it.Key()
//	    ...
//	    sub.Close()
//	}
//	if err := it.Err(); err != nil { ... }
type SubkeyIter struct {
	parent *Key
	index  uint32
	cur    *Key
	err    error
	done   bool
}

// Subkeys returns a lazy iterator over k's direct subkeys in the order the
// backend enumerates them. Each subkey is opened with k's access mask.
func (k *Key) Subkeys() *SubkeyIter {
	it := &SubkeyIter{parent: k}
	if err := k.ensureOpen(); err != nil {
		it.err, it.done = err, true
	}
	return it
}

// Next opens the next subkey. It returns false at the end of the
// enumeration or on the first error.
func (it *SubkeyIter) Next() bool {
	it.cur = nil
	if it.done {
		return false
	}
	name, err := it.parent.backend.EnumKey(it.parent.handle, it.index)
	if err != nil {
		it.done = true
		if !types.IsEnd(err) {
			it.err = err
		}
		return false
	}
	it.index++

	sub, err := it.parent.OpenKey(name)
	if err != nil {
		it.done, it.err = true, err
		return false
	}
	it.cur = sub
	return true
}

// Key returns the subkey opened by the last successful Next. The caller
// owns it.
func (it *SubkeyIter) Key() *Key { return it.cur }

// Err returns the error that stopped the iteration; nil at a normal end.
func (it *SubkeyIter) Err() error { return it.err }

// SubkeyList opens every subkey of k. On error the keys opened so far are
// closed again.
func (k *Key) SubkeyList() ([]*Key, error) {
	var keys []*Key
	it := k.Subkeys()
	for it.Next() {
		keys = append(keys, it.Key())
	}
	if err := it.Err(); err != nil {
		for _, sub := range keys {
			_ = sub.Close()
		}
		return nil, err
	}
	return keys, nil
}

// SubkeyNames lists the names of k's subkeys without opening them.
func (k *Key) SubkeyNames() ([]string, error) {
	if err := k.ensureOpen(); err != nil {
		return nil, err
	}
	var names []string
	for i := uint32(0); ; i++ {
		name, err := k.backend.EnumKey(k.handle, i)
		if types.IsEnd(err) {
			return names, nil
		}
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
}

// Entry is an enumerated value with its registry type.
type Entry struct {
	Name  string
	Type  types.RegType
	Value types.Value
}

// ValueEntries enumerates k's values whose names start with prefix, in
// enumeration order. The default value has the empty name.
func (k *Key) ValueEntries(prefix string) ([]Entry, error) {
	if err := k.ensureOpen(); err != nil {
		return nil, err
	}
	var entries []Entry
	for i := uint32(0); ; i++ {
		name, t, data, err := k.backend.EnumValue(k.handle, i)
		if err != nil {
			if types.IsEnd(err) {
				return entries, nil
			}
			return nil, err
		}
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		entries = append(entries, Entry{Name: name, Type: t, Value: format.DecodeValue(t, data)})
	}
}

// Values returns k's values whose names start with prefix, keyed by name.
// The registry types are dropped; see ValueEntries to keep them.
func (k *Key) Values(prefix string) (map[string]types.Value, error) {
	entries, err := k.ValueEntries(prefix)
	if err != nil {
		return nil, err
	}
	out := make(map[string]types.Value, len(entries))
	for _, e := range entries {
		out[e.Name] = e.Value
	}
	return out, nil
}
