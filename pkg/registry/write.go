package registry

import "github.com/joshuapare/regedit/pkg/types"

// Write is the right-hand side of Key.Set: either a request to create a
// subkey or a value to store. The zero Write holds no value and fails with
// types.ErrUnsupportedType.
type Write struct {
	createKey bool
	value     types.Value
	typ       types.RegType
	explicit  bool
}

// CreateSubkey requests creation of an empty subkey. Creating an existing
// subkey is not an error.
func CreateSubkey() Write {
	return Write{createKey: true}
}

// WriteValue stores v with its inferred registry type.
func WriteValue(v types.Value) Write {
	return Write{value: v}
}

// WriteValueAs stores v as registry type t.
func WriteValueAs(t types.RegType, v types.Value) Write {
	return Write{value: v, typ: t, explicit: true}
}

// IsCreateSubkey reports whether w requests a subkey.
func (w Write) IsCreateSubkey() bool { return w.createKey }

// Value returns the value to store.
func (w Write) Value() types.Value { return w.value }

// Type returns the registry type w is written with.
func (w Write) Type() (types.RegType, error) {
	if w.explicit {
		return w.typ, nil
	}
	return types.InferType(w.value)
}
