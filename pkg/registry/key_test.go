package registry_test

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regedit/internal/memreg"
	"github.com/joshuapare/regedit/pkg/registry"
	"github.com/joshuapare/regedit/pkg/types"
)

// connectMem connects to HKCU of a fresh in-memory registry.
func connectMem(t *testing.T, opts ...registry.Option) (*registry.Key, *memreg.Registry) {
	t.Helper()
	mem := memreg.New()
	root, err := registry.Connect(types.CurrentUser, append([]registry.Option{registry.WithBackend(mem)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = root.Close() })
	return root, mem
}

func TestConnect(t *testing.T) {
	root, _ := connectMem(t)

	assert.Equal(t, "", root.Name())
	assert.Equal(t, "", root.Path())
	assert.Equal(t, types.CurrentUser, root.Hive())
	assert.Equal(t, types.AccessRead|types.AccessWrite, root.Access())
	assert.Equal(t, "HKEY_CURRENT_USER", root.String())
}

func TestConnect_InvalidHive(t *testing.T) {
	_, err := registry.Connect(types.Hive(12), registry.WithBackend(memreg.New()))
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidHive)
}

func TestConnect_RemoteComputer(t *testing.T) {
	mem := memreg.New(memreg.WithComputer("build01"))

	root, err := registry.Connect(types.LocalMachine,
		registry.WithBackend(mem), registry.WithComputer(`\\build01`))
	require.NoError(t, err)
	require.NoError(t, root.Close())

	_, err = registry.Connect(types.LocalMachine,
		registry.WithBackend(mem), registry.WithComputer(`\\unreachable`))
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrConnection)
}

func TestSet_CreateSubkeyThenGet(t *testing.T) {
	root, _ := connectMem(t)

	require.NoError(t, root.Set("Bar", registry.CreateSubkey()))

	item, err := root.Get("Bar")
	require.NoError(t, err)
	require.True(t, item.IsKey())
	defer item.Close()
	assert.Equal(t, "Bar", item.Key().Name())
	assert.False(t, item.Value().IsValid())

	// Creating it again is a no-op.
	require.NoError(t, root.Set("Bar", registry.CreateSubkey()))
	names, err := root.SubkeyNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"Bar"}, names)
}

func TestSetGet_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value types.Value
		typ   types.RegType
	}{
		{"Blob", types.Binary([]byte{0x00, 0x01, 0xfe, 0xff}), types.REG_BINARY},
		{"Path", types.String(`C:\foo`), types.REG_SZ},
		{"Expand", types.String(`%appdata%\foo`), types.REG_EXPAND_SZ},
		{"Small", types.Integer(100), types.REG_DWORD},
		{"Large", types.Integer(1 << 31), types.REG_QWORD},
		{"Negative", types.Integer(math.MinInt32), types.REG_QWORD},
		{"MinusOne", types.Integer(-1), types.REG_QWORD},
		{"List", types.Strings([]string{"a", "b"}), types.REG_MULTI_SZ},
	}

	root, _ := connectMem(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, root.Set(tt.name, registry.WriteValue(tt.value)))

			item, err := root.Get(tt.name)
			require.NoError(t, err)
			require.False(t, item.IsKey())
			assert.True(t, tt.value.Equal(item.Value()), "got %v", item.Value())

			entries, err := root.ValueEntries(tt.name)
			require.NoError(t, err)
			require.NotEmpty(t, entries)
			assert.Equal(t, tt.typ, entries[0].Type)
		})
	}
}

func TestGet_DWORDIsUnsigned(t *testing.T) {
	root, mem := connectMem(t)

	// Written by another tool, bypassing type inference.
	h, err := mem.Connect(types.CurrentUser, "")
	require.NoError(t, err)
	require.NoError(t, mem.SetValue(h, "Flags", types.REG_DWORD, []byte{0x00, 0x00, 0x00, 0x80}))
	require.NoError(t, mem.CloseKey(h))

	item, err := root.Get("Flags")
	require.NoError(t, err)
	n, ok := item.Value().Int()
	require.True(t, ok)
	assert.Equal(t, int64(0x80000000), n)

	require.NoError(t, root.Set("Max", registry.WriteValueAs(types.REG_DWORD, types.Integer(math.MaxUint32))))
	item, err = root.Get("Max")
	require.NoError(t, err)
	assert.True(t, types.Integer(math.MaxUint32).Equal(item.Value()), "got %v", item.Value())

	err = root.Set("Neg", registry.WriteValueAs(types.REG_DWORD, types.Integer(-1)))
	assert.ErrorIs(t, err, types.ErrTypeMismatch)
}

func TestSetValue_Uint64OutOfRange(t *testing.T) {
	root, _ := connectMem(t)

	err := root.SetValue("U64", uint64(1<<63))
	assert.ErrorIs(t, err, types.ErrUnsupportedType)

	_, err = root.Get("U64")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestSet_OverwritesValue(t *testing.T) {
	root, _ := connectMem(t)

	require.NoError(t, root.SetValue("Mode", "fast"))
	require.NoError(t, root.SetValue("Mode", 3))

	item, err := root.Get("Mode")
	require.NoError(t, err)
	assert.True(t, types.Integer(3).Equal(item.Value()))

	entries, err := root.ValueEntries("")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, types.REG_DWORD, entries[0].Type)
}

func TestSet_WriteValueAs(t *testing.T) {
	root, _ := connectMem(t)

	require.NoError(t, root.Set("Wide", registry.WriteValueAs(types.REG_QWORD, types.Integer(1))))
	entries, err := root.ValueEntries("Wide")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, types.REG_QWORD, entries[0].Type)

	err = root.Set("Bad", registry.WriteValueAs(types.REG_DWORD, types.String("x")))
	assert.ErrorIs(t, err, types.ErrTypeMismatch)
}

func TestSet_UnsupportedType(t *testing.T) {
	root, _ := connectMem(t)

	err := root.SetValue("Ratio", 0.5)
	assert.ErrorIs(t, err, types.ErrUnsupportedType)

	err = root.Set("Empty", registry.Write{})
	assert.ErrorIs(t, err, types.ErrUnsupportedType)

	_, err = root.Get("Ratio")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestGet_NotFound(t *testing.T) {
	root, _ := connectMem(t)

	_, err := root.Get("Missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Contains(t, err.Error(), "Missing")
}

func TestGet_SubkeyWinsOverValue(t *testing.T) {
	root, _ := connectMem(t)

	require.NoError(t, root.SetValue("Shared", "value data"))
	require.NoError(t, root.Set("Shared", registry.CreateSubkey()))

	item, err := root.Get("Shared")
	require.NoError(t, err)
	defer item.Close()
	assert.True(t, item.IsKey())

	// The value is still reachable through enumeration.
	values, err := root.Values("Shared")
	require.NoError(t, err)
	assert.True(t, types.String("value data").Equal(values["Shared"]))
}

func TestGet_NestedPathAndCase(t *testing.T) {
	root, _ := connectMem(t)

	app, err := root.CreateKey(`Software\Vendor\App`)
	require.NoError(t, err)
	require.NoError(t, app.SetValue("Version", "1.2.3"))
	require.NoError(t, app.Close())

	item, err := root.Get(`software\vendor\app\`)
	require.NoError(t, err)
	defer item.Close()
	require.True(t, item.IsKey())

	k := item.Key()
	assert.Equal(t, "app", k.Name())
	assert.Equal(t, `software\vendor\app`, k.Path())
	assert.Equal(t, `HKEY_CURRENT_USER\software\vendor\app`, k.String())

	v, err := k.Get("VERSION")
	require.NoError(t, err)
	assert.True(t, types.String("1.2.3").Equal(v.Value()))
}

func TestDefaultValue(t *testing.T) {
	root, _ := connectMem(t)
	k, err := root.CreateKey("Defaults")
	require.NoError(t, err)
	defer k.Close()

	_, err = k.Default()
	assert.ErrorIs(t, err, types.ErrNotFound)

	require.NoError(t, k.SetDefault(types.String("first")))
	require.NoError(t, k.SetDefault(types.String("second")))

	v, err := k.Default()
	require.NoError(t, err)
	assert.True(t, types.String("second").Equal(v))

	item, err := k.Get("")
	require.NoError(t, err)
	assert.False(t, item.IsKey())
	assert.True(t, types.String("second").Equal(item.Value()))

	assert.ErrorIs(t, k.SetDefault(types.Value{}), types.ErrUnsupportedType)
}

func TestAccess_InheritedAndEnforced(t *testing.T) {
	mem := memreg.New()
	rw, err := registry.Connect(types.LocalMachine, registry.WithBackend(mem))
	require.NoError(t, err)
	defer rw.Close()
	require.NoError(t, rw.Set("Locked", registry.CreateSubkey()))

	ro, err := registry.Connect(types.LocalMachine,
		registry.WithBackend(mem), registry.WithAccess(types.AccessRead))
	require.NoError(t, err)
	defer ro.Close()

	item, err := ro.Get("Locked")
	require.NoError(t, err)
	defer item.Close()
	locked := item.Key()
	assert.Equal(t, types.AccessRead, locked.Access())

	err = locked.SetValue("x", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrWrite)
	assert.ErrorIs(t, err, types.ErrAccess)

	err = locked.Set("Child", registry.CreateSubkey())
	assert.ErrorIs(t, err, types.ErrAccess)
}

func TestClose(t *testing.T) {
	mem := memreg.New()
	root, err := registry.Connect(types.CurrentUser, registry.WithBackend(mem))
	require.NoError(t, err)

	sub, err := root.CreateKey("Temp")
	require.NoError(t, err)
	assert.Equal(t, 2, mem.OpenHandles())

	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())
	assert.Equal(t, 1, mem.OpenHandles())

	_, err = sub.Get("x")
	assert.ErrorIs(t, err, types.ErrClosed)
	assert.ErrorIs(t, sub.SetValue("x", 1), types.ErrClosed)
	_, err = sub.Values("")
	assert.ErrorIs(t, err, types.ErrClosed)

	it := sub.Subkeys()
	assert.False(t, it.Next())
	assert.ErrorIs(t, it.Err(), types.ErrClosed)

	require.NoError(t, root.Close())
	assert.Equal(t, 0, mem.OpenHandles())
}

func TestSet_CreateSubkeyReleasesHandle(t *testing.T) {
	root, mem := connectMem(t)
	before := mem.OpenHandles()

	require.NoError(t, root.Set("A", registry.CreateSubkey()))
	require.NoError(t, root.Set("A", registry.CreateSubkey()))
	assert.Equal(t, before, mem.OpenHandles())
}

func TestExpand(t *testing.T) {
	mem := memreg.New(memreg.WithEnv(map[string]string{"APPDATA": `C:\Roaming`}))
	root, err := registry.Connect(types.CurrentUser, registry.WithBackend(mem))
	require.NoError(t, err)
	defer root.Close()

	require.NoError(t, root.SetValue("Dir", `%appdata%\App`))
	item, err := root.Get("Dir")
	require.NoError(t, err)

	// Reads never expand.
	s, ok := item.Value().Text()
	require.True(t, ok)
	assert.Equal(t, `%appdata%\App`, s)

	expanded, err := root.Expand(s)
	require.NoError(t, err)
	assert.Equal(t, `C:\Roaming\App`, expanded)
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	root, _ := connectMem(t, registry.WithLogger(logger))
	require.NoError(t, root.SetValue("Logged", 1))

	assert.Contains(t, buf.String(), "connected to registry")
	assert.Contains(t, buf.String(), "wrote value")
	assert.Contains(t, buf.String(), "name=Logged")
}
