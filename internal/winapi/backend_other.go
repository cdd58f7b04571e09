//go:build !windows

package winapi

import "github.com/joshuapare/regedit/pkg/types"

// Backend reports types.ErrUnsupportedPlatform from every call.
type Backend struct{}

// New returns the native backend.
func New() *Backend { return &Backend{} }

func (Backend) Connect(types.Hive, string) (types.Handle, error) {
	return 0, types.ErrUnsupportedPlatform
}

func (Backend) OpenKey(types.Handle, string, types.Access) (types.Handle, error) {
	return 0, types.ErrUnsupportedPlatform
}

func (Backend) CreateKey(types.Handle, string, types.Access) (types.Handle, error) {
	return 0, types.ErrUnsupportedPlatform
}

func (Backend) CloseKey(types.Handle) error {
	return types.ErrUnsupportedPlatform
}

func (Backend) QueryValue(types.Handle, string) (types.RegType, []byte, error) {
	return 0, nil, types.ErrUnsupportedPlatform
}

func (Backend) SetValue(types.Handle, string, types.RegType, []byte) error {
	return types.ErrUnsupportedPlatform
}

func (Backend) EnumKey(types.Handle, uint32) (string, error) {
	return "", types.ErrUnsupportedPlatform
}

func (Backend) EnumValue(types.Handle, uint32) (string, types.RegType, []byte, error) {
	return "", 0, nil, types.ErrUnsupportedPlatform
}

func (Backend) ExpandEnvironmentStrings(string) (string, error) {
	return "", types.ErrUnsupportedPlatform
}
