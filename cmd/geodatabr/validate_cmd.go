// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/geodatabr/geodatabr/internal/config"
	"github.com/geodatabr/geodatabr/internal/export"
)

func runValidate(args []string) int {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file (YAML)")
	_ = fs.Parse(args)

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -config is required")
		return 2
	}

	cfg, err := config.NewLoader(*configPath).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error in %s:\n  %v\n", *configPath, err)
		return 1
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Validation error in %s:\n  %v\n", *configPath, err)
		return 1
	}
	for _, f := range cfg.Formats {
		if _, err := export.Lookup(f); err != nil {
			fmt.Fprintf(os.Stderr, "Validation error in %s:\n  %v\n", *configPath, err)
			return 1
		}
	}

	fmt.Printf("%s is valid\n", *configPath)
	return 0
}

func runFormats(_ []string) int {
	for _, f := range export.Formats() {
		fmt.Println(f)
	}
	return 0
}
