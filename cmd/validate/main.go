// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// validate checks a tailcfg configuration file.
//
// Usage:
//
//	validate -f tailcfg.yaml
//	validate --file tailcfg.json
//
// Exit codes:
//   - 0: Configuration is valid
//   - 1: Configuration is invalid (parse or validation error)
//   - 2: Usage error (missing required flag)
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ManuGH/tailcfg/internal/config"
	"github.com/ManuGH/tailcfg/internal/validate"
	"github.com/ManuGH/tailcfg/internal/version"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var file string
	var showVersion bool
	fs.StringVar(&file, "file", "", "path to YAML or JSON configuration file")
	fs.StringVar(&file, "f", "", "path to YAML or JSON configuration file (shorthand)")
	fs.BoolVar(&showVersion, "version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if showVersion {
		fmt.Fprintln(stdout, version.Version)
		return exitOK
	}

	if file == "" {
		fmt.Fprintln(stderr, "Error: --file is required")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Usage:")
		fmt.Fprintln(stderr, "  validate -f tailcfg.yaml")
		fmt.Fprintln(stderr, "  validate --file tailcfg.json")
		return exitUsage
	}

	if _, err := config.NewLoader(file).Load(); err != nil {
		fmt.Fprintf(stderr, "Configuration error in %s:\n", file)
		var verr validate.ValidationError
		if errors.As(err, &verr) {
			for _, e := range verr.Errors() {
				fmt.Fprintf(stderr, "  - %s\n", e.Error())
			}
		} else {
			fmt.Fprintf(stderr, "  %v\n", err)
		}
		return exitInvalid
	}

	fmt.Fprintf(stdout, "✓ %s is valid\n", file)
	return exitOK
}
