package regtext

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regedit/internal/memreg"
	"github.com/joshuapare/regedit/pkg/registry"
	"github.com/joshuapare/regedit/pkg/types"
)

func connect(t *testing.T, mem *memreg.Registry) *registry.Key {
	t.Helper()
	root, err := registry.Connect(types.CurrentUser, registry.WithBackend(mem))
	require.NoError(t, err)
	t.Cleanup(func() { _ = root.Close() })
	return root
}

// seedApp builds Software\App with one value of every inferred type and an
// empty subkey.
func seedApp(t *testing.T, root *registry.Key) *registry.Key {
	t.Helper()
	app, err := root.CreateKey(`Software\App`)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	require.NoError(t, app.SetValue("Name", "x"))
	require.NoError(t, app.SetValue("Count", 1))
	require.NoError(t, app.SetValue("Path", `%TEMP%\a`))
	require.NoError(t, app.SetValue("List", []string{"a", "b"}))
	require.NoError(t, app.SetValue("Data", []byte{1, 2}))
	require.NoError(t, app.SetValue("Big", int64(1)<<40))
	require.NoError(t, app.Set("Sub", registry.CreateSubkey()))
	return app
}

func TestExport(t *testing.T) {
	app := seedApp(t, connect(t, memreg.New()))

	out, err := Export(app, ExportOptions{})
	require.NoError(t, err)

	expected := "Windows Registry Editor Version 5.00\r\n" +
		"\r\n" +
		"[HKEY_CURRENT_USER\\Software\\App]\r\n" +
		"\"Big\"=hex(b):00,00,00,00,00,01,00,00\r\n" +
		"\"Count\"=dword:00000001\r\n" +
		"\"Data\"=hex:01,02\r\n" +
		"\"List\"=hex(7):61,00,00,00,62,00,00,00,00,00\r\n" +
		"\"Name\"=\"x\"\r\n" +
		"\"Path\"=hex(2):25,00,54,00,45,00,4d,00,50,00,25,00,5c,00,61,00,00,00\r\n" +
		"\r\n" +
		"[HKEY_CURRENT_USER\\Software\\App\\Sub]\r\n" +
		"\r\n"
	assert.Equal(t, expected, string(out))
}

func TestExport_UTF16LE(t *testing.T) {
	root := connect(t, memreg.New())
	require.NoError(t, root.SetValue("Name", "x"))

	out, err := Export(root, ExportOptions{Encoding: EncodingUTF16LE, WithBOM: true})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte{0xff, 0xfe}))

	text, err := decodeInput(out, "")
	require.NoError(t, err)
	assert.Contains(t, text, "[HKEY_CURRENT_USER]\r\n\"Name\"=\"x\"\r\n")

	_, err = Export(root, ExportOptions{Encoding: "latin1"})
	assert.ErrorIs(t, err, errUnsupportedEncoding)
}

func TestExport_DWORDAboveInt32(t *testing.T) {
	root := connect(t, memreg.New())
	require.NoError(t, root.Set("Max", registry.WriteValueAs(types.REG_DWORD, types.Integer(math.MaxUint32))))
	require.NoError(t, root.SetValue("Neg", -1))

	out, err := Export(root, ExportOptions{})
	require.NoError(t, err)
	assert.Contains(t, string(out), "\"Max\"=dword:ffffffff\r\n")
	assert.Contains(t, string(out), "\"Neg\"=hex(b):ff,ff,ff,ff,ff,ff,ff,ff\r\n")

	ops, err := Parse(out, ParseOptions{})
	require.NoError(t, err)
	target := connect(t, memreg.New())
	require.NoError(t, Apply(target, ops))

	item, err := target.Get("Max")
	require.NoError(t, err)
	assert.True(t, types.Integer(math.MaxUint32).Equal(item.Value()), "got %v", item.Value())
}

func TestExportParseApply_RoundTrip(t *testing.T) {
	app := seedApp(t, connect(t, memreg.New()))
	require.NoError(t, app.SetDefault(types.String(`say "hi" \o/`)))
	require.NoError(t, app.SetValue("Neg", -5))

	first, err := Export(app, ExportOptions{Encoding: EncodingUTF16LE, WithBOM: true})
	require.NoError(t, err)

	ops, err := Parse(first, ParseOptions{})
	require.NoError(t, err)

	target := connect(t, memreg.New())
	require.NoError(t, Apply(target, ops))

	item, err := target.Get(`Software\App`)
	require.NoError(t, err)
	copied := item.Key()
	defer copied.Close()

	second, err := Export(copied, ExportOptions{Encoding: EncodingUTF16LE, WithBOM: true})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	v, err := copied.Get("Neg")
	require.NoError(t, err)
	assert.True(t, types.Integer(-5).Equal(v.Value()))

	def, err := copied.Default()
	require.NoError(t, err)
	assert.True(t, types.String(`say "hi" \o/`).Equal(def))
}

func TestApply_RelativeToRoot(t *testing.T) {
	mem := memreg.New()
	root := connect(t, mem)
	software, err := root.CreateKey("Software")
	require.NoError(t, err)
	defer software.Close()

	ops := []Op{
		CreateKey{Path: `HKEY_CURRENT_USER\SOFTWARE`},
		SetValue{Path: `HKCU\software`, Name: "Top", Type: types.REG_DWORD, Data: []byte{7, 0, 0, 0}},
		SetValue{Path: `HKCU\Software\Vendor\App`, Name: "v", Type: types.REG_SZ, Data: []byte{'a', 0, 0, 0}},
	}
	require.NoError(t, Apply(software, ops))

	top, err := software.Get("Top")
	require.NoError(t, err)
	assert.True(t, types.Integer(7).Equal(top.Value()))

	v, err := software.Get(`Vendor\App\v`)
	require.Error(t, err, "values are not reachable through a path")

	app, err := software.OpenKey(`Vendor\App`)
	require.NoError(t, err)
	defer app.Close()
	v, err = app.Get("v")
	require.NoError(t, err)
	assert.True(t, types.String("a").Equal(v.Value()))

	before := mem.OpenHandles()
	require.NoError(t, Apply(software, ops[1:]))
	assert.Equal(t, before, mem.OpenHandles(), "Apply closes the keys it opens")
}

func TestApply_Rejects(t *testing.T) {
	root := connect(t, memreg.New())
	software, err := root.CreateKey("Software")
	require.NoError(t, err)
	defer software.Close()

	tests := []struct {
		name string
		op   Op
		kind error
	}{
		{"other hive", CreateKey{Path: `HKEY_LOCAL_MACHINE\Software`}, types.ErrInvalidHive},
		{"no hive", CreateKey{Path: `Software\X`}, types.ErrInvalidHive},
		{"sibling", CreateKey{Path: `HKCU\SoftwareX`}, types.ErrInvalidHive},
		{"delete key", DeleteKey{Path: `HKCU\Software\X`}, types.ErrUnsupportedPlatform},
		{"delete value", DeleteValue{Path: `HKCU\Software`, Name: "x"}, types.ErrUnsupportedPlatform},
		{"bad data", SetValue{Path: `HKCU\Software`, Name: "d", Type: types.REG_DWORD, Data: []byte{1}}, types.ErrTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Apply(software, []Op{tt.op})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}
