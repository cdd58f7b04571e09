package regtext

import (
	"strings"

	"github.com/joshuapare/regedit/internal/format"
	"github.com/joshuapare/regedit/pkg/registry"
	"github.com/joshuapare/regedit/pkg/types"
)

// Apply replays ops below root through Key.Set. Every op path must name
// root itself or a key below it. Deletion entries fail with an
// ErrKindUnsupported error; ops before the failing one stay applied.
func Apply(root *registry.Key, ops []Op) error {
	a := &applier{root: root, keys: make(map[string]*registry.Key)}
	defer a.close()

	for _, op := range ops {
		switch op := op.(type) {
		case CreateKey:
			if _, err := a.key(op.Path); err != nil {
				return err
			}
		case SetValue:
			k, err := a.key(op.Path)
			if err != nil {
				return err
			}
			v := format.DecodeValue(op.Type, op.Data)
			if err := k.Set(op.Name, registry.WriteValueAs(op.Type, v)); err != nil {
				return err
			}
		case DeleteKey, DeleteValue:
			return types.NewError(types.ErrKindUnsupported, "deletion entries are not supported", op.KeyPath(), nil)
		}
	}
	return nil
}

type applier struct {
	root *registry.Key
	keys map[string]*registry.Key
}

// key creates or opens the key for a full section path, once per path.
func (a *applier) key(path string) (*registry.Key, error) {
	rel, err := a.relative(path)
	if err != nil {
		return nil, err
	}
	if rel == "" {
		return a.root, nil
	}
	id := strings.ToLower(rel)
	if k, ok := a.keys[id]; ok {
		return k, nil
	}
	k, err := a.root.CreateKey(rel)
	if err != nil {
		return nil, err
	}
	a.keys[id] = k
	return k, nil
}

// relative strips the hive and root's own path from a section path.
func (a *applier) relative(path string) (string, error) {
	hive, rest, ok := types.SplitHivePath(path)
	if !ok || hive != a.root.Hive() {
		return "", types.NewError(types.ErrKindInvalidHive, "key is outside the import root", path, nil)
	}
	rest = registry.JoinPath(rest)
	base := a.root.Path()
	switch {
	case base == "":
		return rest, nil
	case strings.EqualFold(rest, base):
		return "", nil
	case len(rest) > len(base) && strings.EqualFold(rest[:len(base)], base) && rest[len(base)] == '\\':
		return rest[len(base)+1:], nil
	}
	return "", types.NewError(types.ErrKindInvalidHive, "key is outside the import root", path, nil)
}

func (a *applier) close() {
	for _, k := range a.keys {
		_ = k.Close()
	}
}
