package cliconfig

import (
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to stay TOML
// friendly.
type FileConfig struct {
	ListenAddr   string `toml:"listen"`
	AppURL       string `toml:"app_url"`
	APIURL       string `toml:"api_url"`
	LegacyAPIURL string `toml:"legacy_api_url"`
	OverridePath string `toml:"override_file"`

	ReadHeaderTimeout string `toml:"read_header_timeout"`
	ShutdownTimeout   string `toml:"shutdown_timeout"`

	LogLevel  string `toml:"log_level"`
	LogPretty *bool  `toml:"log_pretty"`
}

// LoadFileConfig reads and parses a TOML config file.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// ApplyFileConfig applies file values to cfg, skipping explicitly set flags.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("listen", fc.ListenAddr, &cfg.ListenAddr)
	s.setString("app-url", fc.AppURL, &cfg.AppURL)
	s.setString("api-url", fc.APIURL, &cfg.APIURL)
	s.setString("legacy-api-url", fc.LegacyAPIURL, &cfg.LegacyAPIURL)
	s.setString("override-file", fc.OverridePath, &cfg.OverridePath)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("read-header-timeout", fc.ReadHeaderTimeout, &cfg.ReadHeaderTimeout); err != nil {
		return err
	}
	if err := s.setDuration("shutdown-timeout", fc.ShutdownTimeout, &cfg.ShutdownTimeout); err != nil {
		return err
	}

	s.setBool("pretty", fc.LogPretty, &cfg.LogPretty)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
