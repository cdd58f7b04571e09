package registry

import (
	"io"
	"log/slog"

	"github.com/joshuapare/regedit/internal/winapi"
	"github.com/joshuapare/regedit/pkg/types"
)

// Option configures Connect.
type Option func(*config)

type config struct {
	computer string
	access   types.Access
	backend  types.Backend
	logger   *slog.Logger
}

func defaultConfig() config {
	return config{
		access:  types.DefaultAccess,
		backend: winapi.New(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithComputer connects to the registry of a remote machine, given as
// `\\name` or `name`. Empty means the local machine.
func WithComputer(name string) Option {
	return func(c *config) { c.computer = name }
}

// WithAccess sets the access mask of the root key and of every key opened
// from it. The default is read and write.
func WithAccess(access types.Access) Option {
	return func(c *config) { c.access = access }
}

// WithBackend replaces the native registry API.
func WithBackend(b types.Backend) Option {
	return func(c *config) {
		if b != nil {
			c.backend = b
		}
	}
}

// WithLogger receives debug records of handle and write operations.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
