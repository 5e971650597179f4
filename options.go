package hostgate

import (
	"github.com/hoistlabs/hostgate/internal/adapters/fs"
	"github.com/hoistlabs/hostgate/internal/ports"
	"github.com/hoistlabs/hostgate/pkg/log"
)

// Logger is the structured logging interface the gateway uses.
type Logger = log.Logger

// OverrideRepository persists the stored backend override.
type OverrideRepository = ports.OverrideRepository

// Option configures optional behavior of a Gateway.
type Option func(*options)

type options struct {
	logger    ports.Logger
	overrides ports.OverrideRepository
	plugins   []Plugin
}

func defaultOptions() options {
	return options{
		logger: log.Noop{},
	}
}

// WithLogger sets the logger for structured logging.
// If not provided, output is discarded.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithOverrideRepository replaces the default file-backed override store.
func WithOverrideRepository(repo OverrideRepository) Option {
	return func(o *options) {
		o.overrides = repo
	}
}

// WithPlugin registers a plugin to be initialized when the gateway starts.
// Plugins are initialized in registration order and shut down in reverse.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}

func newOverrideFile(path string) ports.OverrideRepository {
	return fs.NewOverrideFile(path)
}
