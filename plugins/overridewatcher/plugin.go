// Package overridewatcher reloads the stored backend override when its
// backing file is edited out-of-band (an operator writing the file directly
// instead of using the override API). Without it, such edits would only
// take effect on the next gateway restart.
package overridewatcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hoistlabs/hostgate"
	"github.com/hoistlabs/hostgate/pkg/log"
)

// Config holds configuration options for the override watcher plugin.
type Config struct {
	// DebounceDelay is the quiet period after a file change before the
	// override is reloaded. Editors often produce several events per save.
	// Default: 100 milliseconds.
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 100 * time.Millisecond,
	}
}

// Plugin watches the override file and refreshes the gateway snapshot.
type Plugin struct {
	mu sync.Mutex

	debounceDelay time.Duration

	path      string
	logger    hostgate.Logger
	overrides hostgate.OverrideReloader
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	debounce  *time.Timer
}

// New creates an override watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	return &Plugin{debounceDelay: cfg.DebounceDelay}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "overridewatcher"
}

// Initialize starts watching the override file's directory. Watching the
// directory rather than the file keeps the watch alive across the atomic
// temp-file-and-rename writes the repository performs.
func (p *Plugin) Initialize(ctx context.Context, cfg hostgate.PluginConfig) error {
	p.mu.Lock()
	p.path = cfg.OverridePath
	p.logger = cfg.Logger
	p.overrides = cfg.Overrides
	p.mu.Unlock()

	if p.path == "" || p.overrides == nil {
		p.logger.Warn("override watcher disabled: no override path configured")
		return nil
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go p.watchLoop(watchCtx)

	return nil
}

// Shutdown stops the watcher.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()

	p.mu.Lock()
	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.mu.Unlock()
	return nil
}

func (p *Plugin) watchLoop(ctx context.Context) {
	defer p.wg.Done()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		p.logger.Error("override watcher: failed to create watcher")
		return
	}
	defer watcher.Close()

	dir := filepath.Dir(p.path)
	if err := watcher.Add(dir); err != nil {
		p.logger.Warn("override watcher: cannot watch directory",
			log.String("dir", dir))
		return
	}
	p.logger.Info("override watcher started", log.String("file", p.path))

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(p.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			p.scheduleReload(ctx)

		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("override watcher: watch error")
		}
	}
}

func (p *Plugin) scheduleReload(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.debounce = time.AfterFunc(p.debounceDelay, func() {
		if ctx.Err() != nil {
			return
		}
		if err := p.overrides.ReloadOverride(ctx); err != nil {
			p.logger.Error("override watcher: reload failed")
			return
		}
		p.logger.Info("override reloaded from file")
	})
}
