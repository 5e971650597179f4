package overridewatcher

import "github.com/hoistlabs/hostgate"

// WithOverrideWatcher returns a hostgate Option that enables watching the
// override file for out-of-band edits.
//
// Usage:
//
//	gw, err := hostgate.New(cfg,
//	    overridewatcher.WithOverrideWatcher(overridewatcher.DefaultConfig()),
//	)
func WithOverrideWatcher(cfg Config) hostgate.Option {
	return hostgate.WithPlugin(New(cfg))
}

// WithDefaultOverrideWatcher enables the watcher with default settings
// (100ms debounce).
func WithDefaultOverrideWatcher() hostgate.Option {
	return WithOverrideWatcher(DefaultConfig())
}
