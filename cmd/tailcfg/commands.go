// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ManuGH/tailcfg/internal/config"
	"github.com/ManuGH/tailcfg/internal/content"
	"github.com/ManuGH/tailcfg/internal/theme"
	"github.com/ManuGH/tailcfg/internal/version"
	"github.com/spf13/cobra"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load and validate the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := opts.resolvePath()
			if _, _, err := opts.load(); err != nil {
				return fmt.Errorf("configuration error in %s: %w", displayPath(path), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid\n", displayPath(path))
			return nil
		},
	}
}

func newPrintCmd(opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the effective configuration in canonical form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := config.ParseFormat(format)
			if err != nil {
				return err
			}
			_, cfg, err := opts.load()
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg, f)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "output format (yaml or json)")
	return cmd
}

func newInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "tailcfg.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.NewManager(path).Save(config.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newScanCmd(opts *rootOptions) *cobra.Command {
	var (
		root        string
		candidates  bool
		ignore      []string
		concurrency int
	)
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List files selected by the content patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, cfg, err := opts.load()
			if err != nil {
				return err
			}
			scanOpts := content.Options{}
			if cmd.Flags().Changed("ignore") {
				scanOpts.IgnoreDirs = ignore
			}
			res, err := content.Scan(cmd.Context(), root, cfg.Content, scanOpts)
			if err != nil {
				return err
			}

			lines := res.Files
			if candidates {
				_, all, err := content.Candidates(cmd.Context(), res.Root, res.Files, concurrency)
				if err != nil {
					return err
				}
				lines = all
			}
			if len(lines) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&root, "root", ".", "directory the content patterns are relative to")
	cmd.Flags().BoolVar(&candidates, "candidates", false, "print the class candidates found instead of file names")
	cmd.Flags().StringSliceVar(&ignore, "ignore", nil, "directory names to skip (default .git,node_modules)")
	cmd.Flags().IntVar(&concurrency, "concurrency", content.DefaultConcurrency, "parallel file reads for --candidates")
	return cmd
}

func newThemeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "theme",
		Short: "Print the resolved theme as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, cfg, err := opts.load()
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(theme.Resolve(theme.Defaults(), cfg.Theme))
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

func displayPath(path string) string {
	if path == "" {
		return "built-in defaults"
	}
	return path
}
