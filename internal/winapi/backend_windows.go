//go:build windows

package winapi

import (
	"errors"
	"runtime"
	"strings"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"github.com/joshuapare/regedit/pkg/types"
)

const (
	// maxKeyNameLen is the longest key name in UTF-16 units, plus the NUL.
	maxKeyNameLen = 256
	// maxValueNameLen is the longest value name in UTF-16 units, plus the NUL.
	maxValueNameLen = 16384
	initialDataLen  = 64
)

// Backend calls the native registry. The zero value is ready to use.
type Backend struct{}

// New returns the native backend.
func New() *Backend { return &Backend{} }

// Connect implements types.Backend via RegConnectRegistryW.
func (Backend) Connect(hive types.Hive, computer string) (types.Handle, error) {
	k, err := registry.OpenRemoteKey(strings.TrimLeft(computer, `\`), registry.Key(hive))
	if err != nil {
		return 0, types.NewError(types.ErrKindConnection, types.ErrConnection.Msg, computer, err)
	}
	return types.Handle(k), nil
}

// OpenKey implements types.Backend via RegOpenKeyExW.
func (Backend) OpenKey(parent types.Handle, path string, access types.Access) (types.Handle, error) {
	k, err := registry.OpenKey(registry.Key(parent), path, uint32(access))
	if err != nil {
		return 0, mapErr(err, "cannot open key", path)
	}
	return types.Handle(k), nil
}

// CreateKey implements types.Backend via RegCreateKeyExW.
func (Backend) CreateKey(parent types.Handle, path string, access types.Access) (types.Handle, error) {
	k, _, err := registry.CreateKey(registry.Key(parent), path, uint32(access))
	if err != nil {
		return 0, mapWriteErr(err, "cannot create key", path)
	}
	return types.Handle(k), nil
}

// CloseKey implements types.Backend via RegCloseKey.
func (Backend) CloseKey(h types.Handle) error {
	if err := registry.Key(h).Close(); err != nil {
		return mapErr(err, "cannot close key", "")
	}
	return nil
}

// QueryValue implements types.Backend via RegQueryValueExW, growing the
// buffer while the call reports ERROR_MORE_DATA.
func (Backend) QueryValue(h types.Handle, name string) (types.RegType, []byte, error) {
	p, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return 0, nil, types.NewError(types.ErrKindNotFound, "invalid value name", name, err)
	}
	buf := make([]byte, initialDataLen)
	for {
		var t uint32
		n := uint32(len(buf))
		err = windows.RegQueryValueEx(windows.Handle(h), p, nil, &t, &buf[0], &n)
		if err == nil {
			return types.RegType(t), buf[:n], nil
		}
		if !errors.Is(err, windows.ERROR_MORE_DATA) || n <= uint32(len(buf)) {
			return 0, nil, mapErr(err, "cannot read value", name)
		}
		buf = make([]byte, n)
	}
}

// SetValue implements types.Backend via RegSetValueExW.
func (Backend) SetValue(h types.Handle, name string, t types.RegType, data []byte) error {
	p, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return types.NewError(types.ErrKindWrite, types.ErrWrite.Msg, name, err)
	}
	var pdata *byte
	if len(data) > 0 {
		pdata = &data[0]
	}
	if err := regSetValueEx(windows.Handle(h), p, 0, uint32(t), pdata, uint32(len(data))); err != nil {
		return mapWriteErr(err, types.ErrWrite.Msg, name)
	}
	return nil
}

// EnumKey implements types.Backend via RegEnumKeyExW.
func (Backend) EnumKey(h types.Handle, index uint32) (string, error) {
	// See golang.org/issue/49320: enumeration state is per thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	buf := make([]uint16, maxKeyNameLen)
	n := uint32(len(buf))
	err := windows.RegEnumKeyEx(windows.Handle(h), index, &buf[0], &n, nil, nil, nil, nil)
	if err != nil {
		return "", mapErr(err, "cannot enumerate keys", "")
	}
	return windows.UTF16ToString(buf[:n]), nil
}

// EnumValue implements types.Backend via RegEnumValueW.
func (Backend) EnumValue(h types.Handle, index uint32) (string, types.RegType, []byte, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	name := make([]uint16, maxValueNameLen)
	data := make([]byte, initialDataLen)
	for {
		nameLen := uint32(len(name))
		dataLen := uint32(len(data))
		var t uint32
		err := regEnumValue(windows.Handle(h), index, &name[0], &nameLen, nil, &t, &data[0], &dataLen)
		if err == nil {
			return windows.UTF16ToString(name[:nameLen]), types.RegType(t), data[:dataLen], nil
		}
		if !errors.Is(err, windows.ERROR_MORE_DATA) || dataLen <= uint32(len(data)) {
			return "", 0, nil, mapErr(err, "cannot enumerate values", "")
		}
		data = make([]byte, dataLen)
	}
}

// ExpandEnvironmentStrings implements types.Backend via ExpandEnvironmentStringsW.
func (Backend) ExpandEnvironmentStrings(s string) (string, error) {
	out, err := registry.ExpandString(s)
	if err != nil {
		return "", types.NewError(types.ErrKindState, "cannot expand string", s, err)
	}
	return out, nil
}

func mapErr(err error, msg, name string) error {
	switch {
	case errors.Is(err, windows.ERROR_NO_MORE_ITEMS):
		return types.ErrNoMoreItems
	case errors.Is(err, windows.ERROR_FILE_NOT_FOUND),
		errors.Is(err, windows.ERROR_PATH_NOT_FOUND),
		errors.Is(err, windows.ERROR_BAD_PATHNAME),
		errors.Is(err, windows.ERROR_INVALID_NAME):
		return types.NewError(types.ErrKindNotFound, msg, name, err)
	case errors.Is(err, windows.ERROR_ACCESS_DENIED):
		return types.NewError(types.ErrKindAccess, types.ErrAccess.Msg, name, err)
	case errors.Is(err, windows.ERROR_INVALID_HANDLE):
		return types.NewError(types.ErrKindState, msg, name, err)
	}
	return types.NewError(types.ErrKindState, msg, name, err)
}

func mapWriteErr(err error, msg, name string) error {
	if errors.Is(err, windows.ERROR_ACCESS_DENIED) {
		return types.NewError(types.ErrKindAccess, types.ErrAccess.Msg, name, err)
	}
	return types.NewError(types.ErrKindWrite, msg, name, err)
}
