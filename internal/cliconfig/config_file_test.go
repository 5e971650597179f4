package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFileConfig(t *testing.T) {
	path := writeConfigFile(t, `
listen = ":7070"
app_url = "https://file.example.com"
api_url = "https://api.file.example.com"
legacy_api_url = "https://legacy.file.example.com"
override_file = "/var/lib/hostgate/override.json"
shutdown_timeout = "12s"
log_level = "debug"
log_pretty = true
`)

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig: %v", err)
	}

	cfg := DefaultConfig()
	if err := ApplyFileConfig(&cfg, fc, map[string]bool{}); err != nil {
		t.Fatalf("ApplyFileConfig: %v", err)
	}

	if cfg.ListenAddr != ":7070" {
		t.Errorf("ListenAddr = %v", cfg.ListenAddr)
	}
	if cfg.AppURL != "https://file.example.com" {
		t.Errorf("AppURL = %v", cfg.AppURL)
	}
	if cfg.LegacyAPIURL != "https://legacy.file.example.com" {
		t.Errorf("LegacyAPIURL = %v", cfg.LegacyAPIURL)
	}
	if cfg.OverridePath != "/var/lib/hostgate/override.json" {
		t.Errorf("OverridePath = %v", cfg.OverridePath)
	}
	if cfg.ShutdownTimeout != 12*time.Second {
		t.Errorf("ShutdownTimeout = %v", cfg.ShutdownTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
	if !cfg.LogPretty {
		t.Error("LogPretty should be true")
	}
}

func TestApplyFileConfig_Precedence(t *testing.T) {
	// Env beats file; flags beat both. The changed map carries flag state.
	path := writeConfigFile(t, `
listen = ":7070"
app_url = "https://file.example.com"
`)

	t.Setenv("HOSTGATE_APP_URL", "https://env.example.com")

	cfg := DefaultConfig()
	changed := map[string]bool{"listen": true}
	cfg.ListenAddr = ":5050" // explicitly set by flag

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := ApplyFileConfig(&cfg, fc, changed); err != nil {
		t.Fatal(err)
	}
	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatal(err)
	}

	if cfg.ListenAddr != ":5050" {
		t.Errorf("ListenAddr = %v, flag should win", cfg.ListenAddr)
	}
	if cfg.AppURL != "https://env.example.com" {
		t.Errorf("AppURL = %v, env should win over file", cfg.AppURL)
	}
}

func TestLoadFileConfig_Missing(t *testing.T) {
	if _, err := LoadFileConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadFileConfig_Invalid(t *testing.T) {
	path := writeConfigFile(t, "listen = [not toml")
	if _, err := LoadFileConfig(path); err == nil {
		t.Error("expected error for invalid toml")
	}
}
