/*
Package registry provides mapping-style access to the Windows Registry.

# Quick Start

Connect to a hive, walk down by name and read or write values:

	root, err := registry.Connect(types.CurrentUser)
	if err != nil {
	    log.Fatal(err)
	}
	defer root.Close()

	item, err := root.Get(`Software\Vendor\App`)
	if err != nil {
	    log.Fatal(err)
	}
	app := item.Key()
	defer app.Close()

	err = app.Set("InstallDir", registry.WriteValue(types.String(`%ProgramFiles%\App`)))

# Lookup Order

Key.Get first tries to open the name as a subkey and only then reads it as a
value. A subkey and a value may share a name; the subkey always wins. Use
Key.Values or Key.ValueEntries to reach such a value.

# Type Inference

Writes pick the registry type from the value (see types.InferType):
binary data is REG_BINARY, text with a %NAME% placeholder is REG_EXPAND_SZ,
other text is REG_SZ, integers in [0, MaxInt32] are REG_DWORD and all other
integers REG_QWORD. DWORDs read back unsigned and QWORDs signed, so every
inferred write reads back unchanged. WriteValueAs overrides the inferred type.

# Handles

Every Key owns one native handle. Close releases it exactly once; keys
returned by Get, OpenKey, CreateKey and the subkey iterator belong to the
caller and must be closed as well.

# Backends

Keys delegate every call to a types.Backend. The default is the native
registry (internal/winapi); WithBackend substitutes another implementation,
such as the in-memory registry used in tests.
*/
package registry
