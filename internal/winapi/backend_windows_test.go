//go:build windows

package winapi_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/windows/registry"

	"github.com/joshuapare/regedit/internal/winapi"
	"github.com/joshuapare/regedit/pkg/types"
)

const testKey = `Software\regedit-winapi-test`

func TestBackend_CurrentUserRoundTrip(t *testing.T) {
	b := winapi.New()
	t.Cleanup(func() { _ = registry.DeleteKey(registry.CURRENT_USER, testKey) })

	root, err := b.Connect(types.CurrentUser, "")
	require.NoError(t, err)
	defer b.CloseKey(root)

	k, err := b.CreateKey(root, testKey, types.AccessAll)
	require.NoError(t, err)
	defer b.CloseKey(k)

	data := []byte{1, 2, 3, 4}
	require.NoError(t, b.SetValue(k, "Blob", types.REG_BINARY, data))

	typ, got, err := b.QueryValue(k, "Blob")
	require.NoError(t, err)
	assert.Equal(t, types.REG_BINARY, typ)
	assert.Equal(t, data, got)

	name, typ, got, err := b.EnumValue(k, 0)
	require.NoError(t, err)
	assert.Equal(t, "Blob", name)
	assert.Equal(t, types.REG_BINARY, typ)
	assert.Equal(t, data, got)

	_, _, _, err = b.EnumValue(k, 1)
	assert.ErrorIs(t, err, types.ErrNoMoreItems)

	_, err = b.EnumKey(k, 0)
	assert.ErrorIs(t, err, types.ErrNoMoreItems)

	_, _, err = b.QueryValue(k, "Missing")
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = b.OpenKey(root, testKey+`\Missing`, types.AccessRead)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestBackend_Expand(t *testing.T) {
	b := winapi.New()
	got, err := b.ExpandEnvironmentStrings(`%SystemRoot%\x`)
	require.NoError(t, err)
	assert.Equal(t, os.Getenv("SystemRoot")+`\x`, got)
}
