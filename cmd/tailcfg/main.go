// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// tailcfg loads, validates and applies the utility-class build configuration.
//
// Usage:
//
//	tailcfg validate -c tailcfg.yaml
//	tailcfg print --format json
//	tailcfg scan --root . --candidates
//	tailcfg watch --listen :8089
package main

import (
	"fmt"
	"os"

	"github.com/ManuGH/tailcfg/internal/config"
	xglog "github.com/ManuGH/tailcfg/internal/log"
	"github.com/ManuGH/tailcfg/internal/version"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "tailcfg",
		Short:         "Manage the utility-class build configuration",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			xglog.Configure(xglog.Config{
				Level:   opts.logLevel,
				Output:  cmd.ErrOrStderr(),
				Service: "tailcfg",
				Version: version.Version,
			})
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"path to config file (YAML or JSON); defaults to $"+config.EnvConfigPath)
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newValidateCmd(opts),
		newPrintCmd(opts),
		newInitCmd(),
		newScanCmd(opts),
		newThemeCmd(opts),
		newWatchCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// resolvePath returns the explicit flag value or the environment default.
func (o *rootOptions) resolvePath() string {
	if o.configPath != "" {
		return o.configPath
	}
	return config.ParseString(config.EnvConfigPath, "")
}

func (o *rootOptions) load() (*config.Loader, config.Config, error) {
	loader := config.NewLoader(o.resolvePath())
	cfg, err := loader.Load()
	return loader, cfg, err
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tailcfg: %v\n", err)
		os.Exit(1)
	}
}
