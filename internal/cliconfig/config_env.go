package cliconfig

import "os"

// ApplyEnvConfig applies configuration from HOSTGATE_* environment
// variables. Values are skipped for flags that were explicitly set.
// HOSTGATE_API_URL and HOSTGATE_BACKEND_URL are the current and legacy
// names for the deployment's baked-in backend; both feed endpoint
// resolution's build-config step in that order.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("listen", os.Getenv("HOSTGATE_LISTEN"), &cfg.ListenAddr)
	s.setString("app-url", os.Getenv("HOSTGATE_APP_URL"), &cfg.AppURL)
	s.setString("api-url", os.Getenv("HOSTGATE_API_URL"), &cfg.APIURL)
	s.setString("legacy-api-url", os.Getenv("HOSTGATE_BACKEND_URL"), &cfg.LegacyAPIURL)
	s.setString("override-file", os.Getenv("HOSTGATE_OVERRIDE_FILE"), &cfg.OverridePath)
	s.setString("log-level", os.Getenv("HOSTGATE_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("read-header-timeout", os.Getenv("HOSTGATE_READ_HEADER_TIMEOUT"), &cfg.ReadHeaderTimeout); err != nil {
		return err
	}
	if err := s.setDuration("shutdown-timeout", os.Getenv("HOSTGATE_SHUTDOWN_TIMEOUT"), &cfg.ShutdownTimeout); err != nil {
		return err
	}

	s.setBoolFromString("pretty", os.Getenv("HOSTGATE_LOG_PRETTY"), &cfg.LogPretty)

	return nil
}
