package memreg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regedit/internal/memreg"
	"github.com/joshuapare/regedit/pkg/types"
)

func connect(t *testing.T, r *memreg.Registry) types.Handle {
	t.Helper()
	h, err := r.Connect(types.LocalMachine, "")
	require.NoError(t, err)
	return h
}

func TestConnect_UnknownComputer(t *testing.T) {
	r := memreg.New(memreg.WithComputer(`\\build01`))

	_, err := r.Connect(types.LocalMachine, "nowhere")
	assert.ErrorIs(t, err, types.ErrConnection)

	h, err := r.Connect(types.LocalMachine, `\\BUILD01`)
	require.NoError(t, err)
	require.NoError(t, r.CloseKey(h))

	_, err = r.Connect(types.Hive(42), "")
	assert.ErrorIs(t, err, types.ErrInvalidHive)
}

func TestCreateOpenKey_CaseInsensitive(t *testing.T) {
	r := memreg.New()
	root := connect(t, r)

	k, err := r.CreateKey(root, `Software\Vendor\App`, types.AccessAll)
	require.NoError(t, err)
	require.NoError(t, r.CloseKey(k))

	k, err = r.OpenKey(root, `SOFTWARE\vendor\app`, types.AccessRead)
	require.NoError(t, err)
	require.NoError(t, r.CloseKey(k))

	_, err = r.OpenKey(root, `Software\Missing`, types.AccessRead)
	assert.ErrorIs(t, err, types.ErrNotFound)

	// Creating again opens the existing key.
	k, err = r.CreateKey(root, `software\VENDOR`, types.AccessAll)
	require.NoError(t, err)
	name, err := r.EnumKey(k, 0)
	require.NoError(t, err)
	assert.Equal(t, "App", name)
	_, err = r.EnumKey(k, 1)
	assert.ErrorIs(t, err, types.ErrNoMoreItems)
}

func TestValues_SetQueryEnum(t *testing.T) {
	r := memreg.New()
	root := connect(t, r)
	k, err := r.CreateKey(root, "Software", types.AccessAll)
	require.NoError(t, err)

	require.NoError(t, r.SetValue(k, "First", types.REG_BINARY, []byte{1}))
	require.NoError(t, r.SetValue(k, "Second", types.REG_BINARY, []byte{2}))
	require.NoError(t, r.SetValue(k, "first", types.REG_BINARY, []byte{3}))

	typ, data, err := r.QueryValue(k, "FIRST")
	require.NoError(t, err)
	assert.Equal(t, types.REG_BINARY, typ)
	assert.Equal(t, []byte{3}, data)

	name, _, _, err := r.EnumValue(k, 0)
	require.NoError(t, err)
	assert.Equal(t, "First", name)
	name, _, _, err = r.EnumValue(k, 1)
	require.NoError(t, err)
	assert.Equal(t, "Second", name)
	_, _, _, err = r.EnumValue(k, 2)
	assert.ErrorIs(t, err, types.ErrNoMoreItems)

	_, _, err = r.QueryValue(k, "")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestAccessEnforced(t *testing.T) {
	r := memreg.New()
	root := connect(t, r)
	k, err := r.CreateKey(root, "Locked", types.AccessAll)
	require.NoError(t, err)
	require.NoError(t, r.SetValue(k, "v", types.REG_BINARY, []byte{1}))

	ro, err := r.OpenKey(root, "Locked", types.AccessRead)
	require.NoError(t, err)

	err = r.SetValue(ro, "v", types.REG_BINARY, []byte{2})
	assert.ErrorIs(t, err, types.ErrAccess)
	_, err = r.CreateKey(ro, "child", types.AccessRead)
	assert.ErrorIs(t, err, types.ErrAccess)

	_, _, err = r.QueryValue(ro, "v")
	assert.NoError(t, err)

	wo, err := r.OpenKey(root, "Locked", types.AccessWrite)
	require.NoError(t, err)
	_, _, err = r.QueryValue(wo, "v")
	assert.ErrorIs(t, err, types.ErrAccess)
	_, err = r.EnumKey(wo, 0)
	assert.ErrorIs(t, err, types.ErrAccess)
}

func TestCloseKey(t *testing.T) {
	r := memreg.New()
	root := connect(t, r)
	assert.Equal(t, 1, r.OpenHandles())

	require.NoError(t, r.CloseKey(root))
	assert.Equal(t, 0, r.OpenHandles())

	assert.Error(t, r.CloseKey(root))
	_, _, err := r.QueryValue(root, "x")
	assert.Error(t, err)
}

func TestExpandEnvironmentStrings(t *testing.T) {
	r := memreg.New(memreg.WithEnv(map[string]string{
		"APPDATA": `C:\Users\me\AppData\Roaming`,
		"Empty":   "",
	}))

	tests := []struct {
		in, expected string
	}{
		{`%appdata%\foo`, `C:\Users\me\AppData\Roaming\foo`},
		{`%UNDEFINED%\foo`, `%UNDEFINED%\foo`},
		{`100%`, `100%`},
		{`%%`, `%%`},
		{`a%EMPTY%b`, `ab`},
		{`%UNDEFINED%%APPDATA%`, `%UNDEFINED%C:\Users\me\AppData\Roaming`},
		{`plain`, `plain`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := r.ExpandEnvironmentStrings(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
