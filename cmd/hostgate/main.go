package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/hoistlabs/hostgate"
	"github.com/hoistlabs/hostgate/internal/cliconfig"
	"github.com/hoistlabs/hostgate/pkg/log"
	"github.com/hoistlabs/hostgate/plugins/overridewatcher"
)

const helpDescription = `
Serve the embed loader for a hosted research UI, resolve which backend each
UI instance should target, and proxy research WebSocket streams to the
engine.

Highlights:
  - One endpoint-resolution order across local dev, forwarded-port dev
    containers, production, and embedded iframes.
  - Durable operator override, settable over the API or by editing the
    override file; file edits are picked up live.
  - Prometheus metrics on /metrics, health on /healthz.
`

var exampleUsage = strings.TrimSpace(`
  hostgate --app-url https://app.example.com
  hostgate --config $HOME/.hostgate/config.toml --listen :8090
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:     "hostgate",
		Short:   "Embed and endpoint gateway for hosted research UIs",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default ~/.hostgate/config.toml),
			// then env, with explicitly set flags winning over both.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := log.New(cfg.LogLevel, cfg.LogPretty)
			logger.Info("configuration",
				log.String("listen", cfg.ListenAddr),
				log.String("app_url", cfg.AppURL),
				log.String("api_url", cfg.APIURL),
				log.String("override_file", cfg.OverridePath),
			)

			gw, err := hostgate.New(
				hostgate.Config{
					ListenAddr:        cfg.ListenAddr,
					AppURL:            cfg.AppURL,
					APIURL:            cfg.APIURL,
					LegacyAPIURL:      cfg.LegacyAPIURL,
					OverridePath:      cfg.OverridePath,
					ReadHeaderTimeout: cfg.ReadHeaderTimeout,
					ShutdownTimeout:   cfg.ShutdownTimeout,
				},
				hostgate.WithLogger(logger),
				overridewatcher.WithDefaultOverrideWatcher(),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := gw.Start(ctx); err != nil {
				return err
			}

			<-ctx.Done()
			logger.Info("shutdown signal received")

			if err := gw.Stop(); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			logger.Info("gateway stopped")
			return nil
		},
	}

	flags := root.Flags()
	flags.StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "address the gateway listens on")
	flags.StringVar(&cfg.AppURL, "app-url", cfg.AppURL, "hosted application URL the embed loader frames")
	flags.StringVar(&cfg.APIURL, "api-url", cfg.APIURL, "baked-in backend URL")
	flags.StringVar(&cfg.LegacyAPIURL, "legacy-api-url", cfg.LegacyAPIURL, "legacy name for the baked-in backend URL")
	flags.StringVar(&cfg.OverridePath, "override-file", cfg.OverridePath, "file backing the stored override")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.BoolVar(&cfg.LogPretty, "pretty", cfg.LogPretty, "human-readable log output")
	flags.StringVar(&cfgPath, "config", "", "path to config file (default ~/.hostgate/config.toml)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
