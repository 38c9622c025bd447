// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/geodatabr/geodatabr/internal/config"
	"github.com/geodatabr/geodatabr/internal/jobs"
	xlog "github.com/geodatabr/geodatabr/internal/log"
)

func runExport(args []string) int {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file (YAML)")
	year := fs.Int("year", 0, "DTB base year to export")
	source := fs.String("source", "", "local spreadsheet path (bypasses download)")
	formats := fs.String("format", "", "comma separated formats (default: all)")
	minify := fs.Bool("minify", false, "minify output where the format allows it")
	out := fs.String("out", "", "output directory")
	strict := fs.Bool("strict-counts", false, "fail when counts diverge from the pinned snapshot")
	_ = fs.Parse(args)

	cfg, err := config.NewLoader(*configPath).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 1
	}
	if *year != 0 {
		cfg.Year = *year
	}
	if *source != "" {
		cfg.Source = *source
	}
	if *formats != "" {
		cfg.Formats = splitList(*formats)
	}
	if *minify {
		cfg.Minify = true
	}
	if *out != "" {
		cfg.DistDir = *out
	}
	if *strict {
		cfg.StrictCounts = true
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 1
	}

	configureLogging(cfg.LogLevel)
	logger := xlog.WithComponent("cli")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	status, err := jobs.Run(ctx, jobs.Config{
		Year:         cfg.Year,
		Source:       cfg.Source,
		DataDir:      cfg.DataDir,
		DistDir:      cfg.DistDir,
		Formats:      cfg.Formats,
		Minify:       cfg.Minify,
		StrictCounts: cfg.StrictCounts,
	})
	if err != nil {
		logger.Error().Err(err).Str("event", "export.failed").Msg("export run failed")
		return 1
	}

	fmt.Printf("exported %d records into %d files under %s\n",
		status.Counts.Total(), len(status.Files), cfg.DistDir)
	return 0
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
