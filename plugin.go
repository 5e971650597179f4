package hostgate

import "context"

// Plugin extends the gateway with optional background behavior.
// Plugins are initialized during Start and shut down during Stop.
type Plugin interface {
	// Name returns the plugin identifier for logging.
	Name() string

	// Initialize starts the plugin. The context is cancelled when the
	// gateway stops.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown stops the plugin and releases its resources.
	Shutdown(ctx context.Context) error
}

// OverrideReloader lets plugins refresh the gateway's override snapshot.
type OverrideReloader interface {
	ReloadOverride(ctx context.Context) error
}

// PluginConfig carries the gateway state plugins may need.
type PluginConfig struct {
	// OverridePath is the file backing the stored override.
	OverridePath string

	// Logger is the gateway's logger.
	Logger Logger

	// Overrides refreshes the override snapshot after out-of-band edits.
	Overrides OverrideReloader
}
