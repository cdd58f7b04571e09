// Package memreg is an in-memory types.Backend.
//
// It behaves like the native registry where the accessor can observe it:
// key and value names compare case-insensitively, children enumerate in
// creation order, handles carry the access mask they were opened with, and
// enumeration past the last index reports types.ErrNoMoreItems.
package memreg

import (
	"bytes"
	"os"
	"strings"
	"sync"

	"github.com/joshuapare/regedit/pkg/types"
)

type node struct {
	name     string
	children []*node
	values   []*value
}

type value struct {
	name string
	typ  types.RegType
	data []byte
}

type handle struct {
	node   *node
	access types.Access
}

// Registry is a registry tree per computer, each with every predefined hive.
// It is safe for concurrent use.
type Registry struct {
	mu        sync.Mutex
	computers map[string]map[types.Hive]*node
	handles   map[types.Handle]*handle
	next      types.Handle
	lookupEnv func(string) (string, bool)
}

// Option configures a Registry.
type Option func(*Registry)

// WithComputer makes a remote computer reachable through Connect.
func WithComputer(name string) Option {
	return func(r *Registry) {
		r.computers[normalizeComputer(name)] = newHives()
	}
}

// WithEnv makes ExpandEnvironmentStrings resolve against env instead of the
// process environment. Names match case-insensitively.
func WithEnv(env map[string]string) Option {
	return func(r *Registry) {
		r.lookupEnv = func(name string) (string, bool) {
			for k, v := range env {
				if strings.EqualFold(k, name) {
					return v, true
				}
			}
			return "", false
		}
	}
}

// New returns an empty registry with the local computer reachable.
func New(opts ...Option) *Registry {
	r := &Registry{
		computers: map[string]map[types.Hive]*node{"": newHives()},
		handles:   make(map[types.Handle]*handle),
		next:      1,
		lookupEnv: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func newHives() map[types.Hive]*node {
	hives := make(map[types.Hive]*node)
	for _, h := range []types.Hive{
		types.ClassesRoot, types.CurrentUser, types.LocalMachine,
		types.Users, types.PerformanceData, types.CurrentConfig,
	} {
		hives[h] = &node{}
	}
	return hives
}

func normalizeComputer(name string) string {
	return strings.ToLower(strings.TrimLeft(name, `\`))
}

// OpenHandles returns the number of handles not yet closed.
func (r *Registry) OpenHandles() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}

// Connect implements types.Backend.
func (r *Registry) Connect(hive types.Hive, computer string) (types.Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	hives, ok := r.computers[normalizeComputer(computer)]
	if !ok {
		return 0, types.NewError(types.ErrKindConnection, "network path not found", computer, nil)
	}
	root, ok := hives[hive]
	if !ok {
		return 0, types.NewError(types.ErrKindInvalidHive, types.ErrInvalidHive.Msg, hive.String(), nil)
	}
	return r.issue(root, types.AccessAll), nil
}

// OpenKey implements types.Backend.
func (r *Registry) OpenKey(parent types.Handle, path string, access types.Access) (types.Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.lookup(parent)
	if err != nil {
		return 0, err
	}
	n := p.node
	for _, seg := range splitPath(path) {
		n = n.child(seg)
		if n == nil {
			return 0, types.NewError(types.ErrKindNotFound, "key not found", path, nil)
		}
	}
	return r.issue(n, access), nil
}

// CreateKey implements types.Backend.
func (r *Registry) CreateKey(parent types.Handle, path string, access types.Access) (types.Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.lookup(parent)
	if err != nil {
		return 0, err
	}
	n := p.node
	for _, seg := range splitPath(path) {
		c := n.child(seg)
		if c == nil {
			if !p.access.CanCreate() {
				return 0, types.NewError(types.ErrKindAccess, types.ErrAccess.Msg, path, nil)
			}
			c = &node{name: seg}
			n.children = append(n.children, c)
		}
		n = c
	}
	return r.issue(n, access), nil
}

// CloseKey implements types.Backend.
func (r *Registry) CloseKey(h types.Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.lookup(h); err != nil {
		return err
	}
	delete(r.handles, h)
	return nil
}

// QueryValue implements types.Backend.
func (r *Registry) QueryValue(h types.Handle, name string) (types.RegType, []byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k, err := r.lookup(h)
	if err != nil {
		return 0, nil, err
	}
	if !k.access.CanQuery() {
		return 0, nil, types.NewError(types.ErrKindAccess, types.ErrAccess.Msg, name, nil)
	}
	v := k.node.value(name)
	if v == nil {
		return 0, nil, types.NewError(types.ErrKindNotFound, "value not found", name, nil)
	}
	return v.typ, bytes.Clone(v.data), nil
}

// SetValue implements types.Backend.
func (r *Registry) SetValue(h types.Handle, name string, t types.RegType, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k, err := r.lookup(h)
	if err != nil {
		return err
	}
	if !k.access.CanSet() {
		return types.NewError(types.ErrKindAccess, types.ErrAccess.Msg, name, nil)
	}
	if v := k.node.value(name); v != nil {
		v.typ, v.data = t, bytes.Clone(data)
		return nil
	}
	k.node.values = append(k.node.values, &value{name: name, typ: t, data: bytes.Clone(data)})
	return nil
}

// EnumKey implements types.Backend.
func (r *Registry) EnumKey(h types.Handle, index uint32) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k, err := r.lookup(h)
	if err != nil {
		return "", err
	}
	if !k.access.CanEnumerate() {
		return "", types.NewError(types.ErrKindAccess, types.ErrAccess.Msg, k.node.name, nil)
	}
	if int(index) >= len(k.node.children) {
		return "", types.ErrNoMoreItems
	}
	return k.node.children[index].name, nil
}

// EnumValue implements types.Backend.
func (r *Registry) EnumValue(h types.Handle, index uint32) (string, types.RegType, []byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k, err := r.lookup(h)
	if err != nil {
		return "", 0, nil, err
	}
	if !k.access.CanQuery() {
		return "", 0, nil, types.NewError(types.ErrKindAccess, types.ErrAccess.Msg, k.node.name, nil)
	}
	if int(index) >= len(k.node.values) {
		return "", 0, nil, types.ErrNoMoreItems
	}
	v := k.node.values[index]
	return v.name, v.typ, bytes.Clone(v.data), nil
}

// ExpandEnvironmentStrings implements types.Backend. Undefined names are
// left in place, %% is kept literally.
func (r *Registry) ExpandEnvironmentStrings(s string) (string, error) {
	var b strings.Builder
	for {
		start := strings.IndexByte(s, '%')
		if start < 0 {
			break
		}
		end := strings.IndexByte(s[start+1:], '%')
		if end < 0 {
			break
		}
		end += start + 1
		name := s[start+1 : end]
		if val, ok := r.lookupEnv(name); ok && name != "" {
			b.WriteString(s[:start])
			b.WriteString(val)
			s = s[end+1:]
			continue
		}
		// keep the leading % and rescan from the closing one
		b.WriteString(s[:end])
		s = s[end:]
	}
	b.WriteString(s)
	return b.String(), nil
}

func (r *Registry) issue(n *node, access types.Access) types.Handle {
	h := r.next
	r.next++
	r.handles[h] = &handle{node: n, access: access}
	return h
}

func (r *Registry) lookup(h types.Handle) (*handle, error) {
	k, ok := r.handles[h]
	if !ok {
		return nil, types.NewError(types.ErrKindState, "invalid handle", "", nil)
	}
	return k, nil
}

func (n *node) child(name string) *node {
	for _, c := range n.children {
		if strings.EqualFold(c.name, name) {
			return c
		}
	}
	return nil
}

func (n *node) value(name string) *value {
	for _, v := range n.values {
		if strings.EqualFold(v.name, name) {
			return v
		}
	}
	return nil
}

func splitPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool { return r == '\\' })
}
