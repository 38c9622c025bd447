// SPDX-License-Identifier: MIT

// geodatabr is the Brazilian territorial dataset toolkit: it downloads DTB
// bases published by IBGE, validates them and exports the dataset to the
// distribution formats.
//
// Usage:
//
//	geodatabr export  [-config FILE] [-year YEAR] [-format LIST] [-minify] [-out DIR]
//	geodatabr serve   [-config FILE] [-listen ADDR]
//	geodatabr validate [-config FILE]
//	geodatabr formats
//	geodatabr version
package main

import (
	"fmt"
	"os"

	xlog "github.com/geodatabr/geodatabr/internal/log"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "export":
		os.Exit(runExport(args))
	case "serve":
		os.Exit(runServe(args))
	case "validate":
		os.Exit(runValidate(args))
	case "formats":
		os.Exit(runFormats(args))
	case "version", "-version", "--version":
		fmt.Printf("geodatabr %s (commit: %s, built: %s)\n", version, commit, buildDate)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: geodatabr <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  export    download, validate and export the dataset")
	fmt.Fprintln(os.Stderr, "  serve     serve the dataset over HTTP")
	fmt.Fprintln(os.Stderr, "  validate  check a configuration file")
	fmt.Fprintln(os.Stderr, "  formats   list available export formats")
	fmt.Fprintln(os.Stderr, "  version   print version information")
}

func configureLogging(level string) {
	xlog.Configure(xlog.Config{
		Level:   level,
		Service: "geodatabr",
		Version: version,
	})
}
