package cliconfig

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config is the CLI-facing gateway configuration, assembled from defaults,
// an optional TOML file, HOSTGATE_* environment variables, and flags, in
// increasing precedence.
type Config struct {
	ListenAddr   string
	AppURL       string
	APIURL       string
	LegacyAPIURL string
	OverridePath string

	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration

	LogLevel  string
	LogPretty bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ListenAddr:        ":8090",
		OverridePath:      defaultOverridePath(),
		ReadHeaderTimeout: 10 * time.Second,
		ShutdownTimeout:   30 * time.Second,
		LogLevel:          "info",
	}
}

func defaultOverridePath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".hostgate", "override.json")
	}
	return "override.json"
}

// DefaultConfigPath returns the default configuration file path,
// ~/.hostgate/config.toml, or "" when the home directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".hostgate", "config.toml")
	}
	return ""
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.AppURL == "" {
		return fmt.Errorf("app-url is required")
	}
	u, err := url.Parse(c.AppURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("app-url %q must be an absolute http(s) url", c.AppURL)
	}

	if c.ListenAddr == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.ReadHeaderTimeout <= 0 {
		return fmt.Errorf("read header timeout must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}

	// Trailing slashes would leak into resolved endpoints.
	c.AppURL = strings.TrimRight(c.AppURL, "/")
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	c.LegacyAPIURL = strings.TrimRight(c.LegacyAPIURL, "/")

	return nil
}

// configSetter applies configuration values while respecting flag
// precedence: a value is skipped when its flag was explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if non-empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not
// changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
