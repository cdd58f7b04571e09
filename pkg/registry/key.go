package registry

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/joshuapare/regedit/internal/format"
	"github.com/joshuapare/regedit/pkg/types"
)

// defaultValueName labels the unnamed value in errors.
const defaultValueName = "(default)"

// Key is an open registry key. Its access mask is fixed when it is opened
// and inherited by every key opened through it.
type Key struct {
	backend types.Backend
	handle  types.Handle
	access  types.Access
	hive    types.Hive
	name    string // leaf name; empty for the root
	path    string // path below the hive; empty for the root
	logger  *slog.Logger

	closeOnce sync.Once
	closed    atomic.Bool
}

// Connect opens the root key of hive, locally or on the computer named by
// WithComputer.
func Connect(hive types.Hive, opts ...Option) (*Key, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if !hive.Valid() {
		return nil, types.NewError(types.ErrKindInvalidHive, types.ErrInvalidHive.Msg,
			fmt.Sprintf("0x%08x", uint32(hive)), nil)
	}

	h, err := cfg.backend.Connect(hive, cfg.computer)
	if err != nil {
		if kind, ok := types.KindOf(err); ok &&
			(kind == types.ErrKindConnection || kind == types.ErrKindUnsupported || kind == types.ErrKindInvalidHive) {
			return nil, err
		}
		return nil, types.NewError(types.ErrKindConnection, types.ErrConnection.Msg, hive.String(), err)
	}

	cfg.logger.Debug("connected to registry",
		"hive", hive.String(), "computer", cfg.computer, "access", cfg.access.String())

	return &Key{
		backend: cfg.backend,
		handle:  h,
		access:  cfg.access,
		hive:    hive,
		logger:  cfg.logger,
	}, nil
}

// Name returns the leaf name the key was opened with; empty for the root.
func (k *Key) Name() string { return k.name }

// Path returns the key path below the hive; empty for the root.
func (k *Key) Path() string { return k.path }

// Hive returns the root hive the key belongs to.
func (k *Key) Hive() types.Hive { return k.hive }

// Access returns the access mask the key was opened with.
func (k *Key) Access() types.Access { return k.access }

// String returns the full path including the hive name.
func (k *Key) String() string {
	if k.path == "" {
		return k.hive.String()
	}
	return k.hive.String() + Separator + k.path
}

// Close releases the native handle. Only the first call reaches the
// backend; later calls return nil.
func (k *Key) Close() error {
	var err error
	k.closeOnce.Do(func() {
		k.closed.Store(true)
		err = k.backend.CloseKey(k.handle)
		k.logger.Debug("closed key", "key", k.String(), "error", err)
	})
	return err
}

func (k *Key) ensureOpen() error {
	if k.closed.Load() {
		return types.NewError(types.ErrKindState, types.ErrClosed.Msg, k.String(), nil)
	}
	return nil
}

// child wraps a handle opened below k.
func (k *Key) child(h types.Handle, path string) *Key {
	return &Key{
		backend: k.backend,
		handle:  h,
		access:  k.access,
		hive:    k.hive,
		name:    LeafName(path),
		path:    JoinPath(k.path, path),
		logger:  k.logger,
	}
}

// OpenKey opens the existing subkey path with k's access mask.
func (k *Key) OpenKey(path string) (*Key, error) {
	if err := k.ensureOpen(); err != nil {
		return nil, err
	}
	h, err := k.backend.OpenKey(k.handle, path, k.access)
	if err != nil {
		return nil, err
	}
	sub := k.child(h, path)
	k.logger.Debug("opened key", "key", sub.String())
	return sub, nil
}

// CreateKey creates the subkey path, or opens it when it exists, and
// returns it opened with k's access mask.
func (k *Key) CreateKey(path string) (*Key, error) {
	if err := k.ensureOpen(); err != nil {
		return nil, err
	}
	h, err := k.backend.CreateKey(k.handle, path, k.access)
	if err != nil {
		return nil, writeErr(err, "cannot create key", path)
	}
	sub := k.child(h, path)
	k.logger.Debug("created key", "key", sub.String())
	return sub, nil
}

// Get resolves name below k. It first opens name as a subkey; only when no
// such subkey exists does it read name as a value of k. When neither exists
// the error matches types.ErrNotFound and names the item.
//
// Get("") reads the default value. It does not return k itself, unlike
// opening a subkey with an empty path.
func (k *Key) Get(name string) (Item, error) {
	if err := k.ensureOpen(); err != nil {
		return Item{}, err
	}

	if name != "" {
		sub, err := k.OpenKey(name)
		if err == nil {
			return Item{key: sub}, nil
		}
		if !types.IsNotFound(err) {
			return Item{}, err
		}
	}

	t, data, err := k.backend.QueryValue(k.handle, name)
	if err != nil {
		if types.IsNotFound(err) {
			return Item{}, types.NewError(types.ErrKindNotFound, types.ErrNotFound.Msg, name, nil)
		}
		return Item{}, err
	}
	return Item{value: format.DecodeValue(t, data)}, nil
}

// Set creates subkey name or writes value name, depending on w. Values
// replace any existing value of the same name.
func (k *Key) Set(name string, w Write) error {
	if err := k.ensureOpen(); err != nil {
		return err
	}
	if w.IsCreateSubkey() {
		h, err := k.backend.CreateKey(k.handle, name, k.access)
		if err != nil {
			return writeErr(err, "cannot create key", name)
		}
		k.logger.Debug("created key", "key", JoinPath(k.String(), name))
		return k.backend.CloseKey(h)
	}
	return k.writeValue(name, w)
}

// SetValue converts v with types.ValueOf and writes it under name with its
// inferred type.
func (k *Key) SetValue(name string, v any) error {
	val, err := types.ValueOf(v)
	if err != nil {
		return err
	}
	return k.Set(name, WriteValue(val))
}

// Default returns the key's unnamed value.
func (k *Key) Default() (types.Value, error) {
	if err := k.ensureOpen(); err != nil {
		return types.Value{}, err
	}
	t, data, err := k.backend.QueryValue(k.handle, "")
	if err != nil {
		if types.IsNotFound(err) {
			return types.Value{}, types.NewError(types.ErrKindNotFound, "default value not set", k.String(), nil)
		}
		return types.Value{}, err
	}
	return format.DecodeValue(t, data), nil
}

// SetDefault writes the key's unnamed value with its inferred type.
func (k *Key) SetDefault(v types.Value) error {
	if err := k.ensureOpen(); err != nil {
		return err
	}
	return k.writeValue("", WriteValue(v))
}

// Expand replaces %NAME% placeholders in s with environment variables, as
// the consumer of a REG_EXPAND_SZ value would. Values are never expanded
// implicitly.
func (k *Key) Expand(s string) (string, error) {
	return k.backend.ExpandEnvironmentStrings(s)
}

func (k *Key) writeValue(name string, w Write) error {
	t, err := w.Type()
	if err != nil {
		return err
	}
	data, err := format.EncodeValue(t, w.Value())
	if err != nil {
		return err
	}
	if err := k.backend.SetValue(k.handle, name, t, data); err != nil {
		if name == "" {
			name = defaultValueName
		}
		return writeErr(err, types.ErrWrite.Msg, name)
	}
	k.logger.Debug("wrote value", "key", k.String(), "name", name, "type", t.String(), "size", len(data))
	return nil
}

// writeErr reports a failed write as a write error. Access errors stay in
// the chain, so errors.Is matches both ErrWrite and ErrAccess.
func writeErr(err error, msg, name string) error {
	if kind, ok := types.KindOf(err); ok {
		switch kind {
		case types.ErrKindState, types.ErrKindUnsupported, types.ErrKindWrite:
			return err
		}
	}
	return types.NewError(types.ErrKindWrite, msg, name, err)
}
