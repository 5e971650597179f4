// Package hostgate provides an embeddable gateway for hosted research UIs.
//
// The gateway serves the embed loader script third-party pages include,
// resolves which backend a UI instance should target across deployment
// topologies, manages the durable operator override, and proxies WebSocket
// research streams to the resolved engine.
//
// Example usage:
//
//	cfg := hostgate.DefaultConfig()
//	cfg.AppURL = "https://app.example.com"
//	gw, err := hostgate.New(cfg, hostgate.WithLogger(log.New("info", false)))
//	if err != nil {
//	    return err
//	}
//	if err := gw.Start(context.Background()); err != nil {
//	    return err
//	}
//	defer gw.Stop()
package hostgate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hoistlabs/hostgate/internal/adapters/httpapi"
	"github.com/hoistlabs/hostgate/internal/app"
	"github.com/hoistlabs/hostgate/internal/domain"
	"github.com/hoistlabs/hostgate/internal/ports"
	"github.com/hoistlabs/hostgate/internal/proxy"
	"github.com/hoistlabs/hostgate/pkg/resolve"
)

// Config holds the gateway configuration.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config struct {
	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string

	// AppURL is the hosted application the embed loader frames.
	AppURL string

	// APIURL is the deployment's baked-in backend URL.
	APIURL string

	// LegacyAPIURL is the older configuration name for the same value,
	// consulted after APIURL.
	LegacyAPIURL string

	// OverridePath is the file backing the stored override.
	OverridePath string

	// ReadHeaderTimeout bounds header reads on incoming connections.
	ReadHeaderTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with sensible default values.
// At minimum, set AppURL before calling New.
func DefaultConfig() Config {
	return Config{
		ListenAddr:        ":8090",
		OverridePath:      defaultOverridePath(),
		ReadHeaderTimeout: 10 * time.Second,
		ShutdownTimeout:   app.ShutdownTimeout,
	}
}

func defaultOverridePath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".hostgate", "override.json")
	}
	return "override.json"
}

// SetDefaults fills zero-valued fields with defaults.
func (c *Config) SetDefaults() {
	d := DefaultConfig()
	if c.ListenAddr == "" {
		c.ListenAddr = d.ListenAddr
	}
	if c.OverridePath == "" {
		c.OverridePath = d.OverridePath
	}
	if c.ReadHeaderTimeout <= 0 {
		c.ReadHeaderTimeout = d.ReadHeaderTimeout
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
}

// Validate checks the configuration and normalizes URL fields.
func (c *Config) Validate() error {
	if c.AppURL == "" {
		return fmt.Errorf("app-url is required")
	}
	u, err := url.Parse(c.AppURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("app-url %q must be an absolute http(s) url", c.AppURL)
	}

	c.AppURL = strings.TrimRight(c.AppURL, "/")
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	c.LegacyAPIURL = strings.TrimRight(c.LegacyAPIURL, "/")
	return nil
}

// Gateway is the hostgate server. Use New() to create an instance, then
// Start() to begin serving.
type Gateway struct {
	config    Config
	logger    ports.Logger
	lifecycle *app.Lifecycle
	api       *httpapi.Server
	srv       *http.Server
	plugins   []Plugin
}

// New creates a Gateway with the given configuration.
// The instance is created stopped; call Start() to begin serving.
func New(cfg Config, opts ...Option) (*Gateway, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	overrides := o.overrides
	if overrides == nil {
		overrides = newOverrideFile(cfg.OverridePath)
	}

	api := httpapi.NewServer(
		httpapi.Config{
			AppURL: cfg.AppURL,
			Build: resolve.BuildConfig{
				APIURL:       cfg.APIURL,
				LegacyAPIURL: cfg.LegacyAPIURL,
			},
		},
		overrides,
		proxy.New(logger.With(ports.String("component", "proxy"))),
		logger.With(ports.String("component", "http")),
	)

	return &Gateway{
		config:    cfg,
		logger:    logger,
		lifecycle: app.NewLifecycle(logger),
		api:       api,
		plugins:   o.plugins,
	}, nil
}

// Start primes the override snapshot, initializes plugins, and begins
// serving in the background. Returns an error if already running or if
// startup fails.
func (g *Gateway) Start(ctx context.Context) error {
	if !g.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}
	if err := g.lifecycle.TransitionTo(app.StateStarting, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	g.lifecycle.SetCancel(cancel)

	if err := g.api.LoadOverride(runCtx); err != nil {
		cancel()
		_ = g.lifecycle.TransitionTo(app.StateCrashed, "override load failed")
		return fmt.Errorf("load override: %w", err)
	}

	pluginCfg := PluginConfig{
		OverridePath: g.config.OverridePath,
		Logger:       g.logger,
		Overrides:    g,
	}
	for _, p := range g.plugins {
		if err := p.Initialize(runCtx, pluginCfg); err != nil {
			g.logger.Error("plugin initialization failed",
				ports.String("plugin", p.Name()),
				ports.Err(err))
			cancel()
			_ = g.lifecycle.TransitionTo(app.StateCrashed, "plugin init failed: "+p.Name())
			return err
		}
		g.logger.Info("plugin initialized", ports.String("plugin", p.Name()))
	}

	g.srv = &http.Server{
		Addr:              g.config.ListenAddr,
		Handler:           g.api.Handler(),
		ReadHeaderTimeout: g.config.ReadHeaderTimeout,
	}

	g.lifecycle.AddWorker()
	go func() {
		defer g.lifecycle.WorkerDone()

		if err := g.lifecycle.TransitionTo(app.StateRunning, "server starting"); err != nil {
			g.logger.Error("failed to transition to running", ports.Err(err))
			return
		}
		g.logger.Info("gateway listening", ports.String("addr", g.config.ListenAddr))

		if err := g.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			g.logger.Error("server error", ports.Err(err))
			_ = g.lifecycle.TransitionTo(app.StateCrashed, err.Error())
		}
	}()

	return nil
}

// Stop gracefully shuts down the gateway: drains in-flight requests,
// shuts plugins down in reverse order, and waits for workers.
func (g *Gateway) Stop() error {
	if !g.lifecycle.CanStop() {
		return domain.ErrNotRunning
	}
	if err := g.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), g.config.ShutdownTimeout)
	defer cancel()

	var shutdownErr error
	if g.srv != nil {
		if err := g.srv.Shutdown(ctx); err != nil {
			g.logger.Warn("graceful shutdown incomplete, closing", ports.Err(err))
			_ = g.srv.Close()
			shutdownErr = err
		}
	}

	g.lifecycle.Cancel()

	for i := len(g.plugins) - 1; i >= 0; i-- {
		p := g.plugins[i]
		if err := p.Shutdown(context.Background()); err != nil {
			g.logger.Error("plugin shutdown failed",
				ports.String("plugin", p.Name()),
				ports.Err(err))
		}
	}

	if err := g.lifecycle.WaitWithTimeout(g.config.ShutdownTimeout); err != nil {
		_ = g.lifecycle.TransitionTo(app.StateCrashed, "shutdown timeout")
		return err
	}

	if err := g.lifecycle.TransitionTo(app.StateStopped, "shutdown complete"); err != nil {
		return err
	}
	return shutdownErr
}

// ReloadOverride refreshes the in-memory override snapshot from disk.
// Plugins call this when the backing file changes out-of-band.
func (g *Gateway) ReloadOverride(ctx context.Context) error {
	return g.api.LoadOverride(ctx)
}

// State returns the gateway's lifecycle state as a string.
func (g *Gateway) State() string {
	return g.lifecycle.State().String()
}

// Handler exposes the HTTP surface without starting a server, for embedding
// the gateway into an existing mux.
func (g *Gateway) Handler() http.Handler {
	return g.api.Handler()
}
