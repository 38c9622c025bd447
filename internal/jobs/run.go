// SPDX-License-Identifier: MIT

// Package jobs orchestrates the full export cycle: acquire the base,
// parse it into the canonical dataset, validate, and export every requested
// format.
package jobs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/geodatabr/geodatabr/internal/dataset"
	"github.com/geodatabr/geodatabr/internal/export"
	"github.com/geodatabr/geodatabr/internal/ibge"
	xlog "github.com/geodatabr/geodatabr/internal/log"
	"github.com/geodatabr/geodatabr/internal/metrics"
	"github.com/geodatabr/geodatabr/internal/parser"
)

// Config holds the parameters of one export run.
type Config struct {
	Year         int
	Source       string // local spreadsheet path; bypasses download when set
	DataDir      string // download cache
	DistDir      string // artifact output
	Formats      []string
	Minify       bool
	StrictCounts bool
}

// Status reports the outcome of a run.
type Status struct {
	LastRun time.Time      `json:"last_run"`
	Year    int            `json:"year"`
	Counts  dataset.Counts `json:"counts"`
	Files   []string       `json:"files"`
}

// Load acquires and parses the dataset described by cfg without exporting.
func Load(ctx context.Context, cfg Config) (*dataset.Dataset, error) {
	logger := xlog.WithComponentFromContext(ctx, "jobs")

	var (
		raw []byte
		err error
	)
	if cfg.Source != "" {
		logger.Info().
			Str("event", "load.local").
			Str("path", cfg.Source).
			Msg("reading local base spreadsheet")
		raw, err = os.ReadFile(filepath.Clean(cfg.Source))
		if err != nil {
			return nil, fmt.Errorf("read source spreadsheet: %w", err)
		}
	} else {
		base, err := ibge.BaseForYear(cfg.Year)
		if err != nil {
			return nil, err
		}
		raw, err = ibge.NewClient(cfg.DataDir).Fetch(ctx, base)
		if err != nil {
			return nil, fmt.Errorf("fetch base %d: %w", cfg.Year, err)
		}
	}

	ds, err := parser.Parse(bytes.NewReader(raw), cfg.Year)
	if err != nil {
		return nil, fmt.Errorf("parse base: %w", err)
	}

	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("validate dataset: %w", err)
	}

	if cfg.StrictCounts {
		want, ok := dataset.ReferenceCounts[cfg.Year]
		if !ok {
			return nil, fmt.Errorf("no reference counts pinned for base %d", cfg.Year)
		}
		if err := ds.VerifyCounts(want); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// Run performs the complete cycle: load -> validate -> export all formats.
// Formats are exported concurrently; artifacts land in cfg.DistDir via
// atomic writes.
func Run(ctx context.Context, cfg Config) (*Status, error) {
	logger := xlog.WithComponentFromContext(ctx, "jobs")
	logger.Info().
		Str("event", "run.start").
		Int("year", cfg.Year).
		Strs("formats", cfg.Formats).
		Msg("starting export run")

	formats := cfg.Formats
	if len(formats) == 0 {
		formats = export.Formats()
	}

	// Resolve every exporter up front so an unknown format fails the run
	// before any download happens.
	exporters := make([]export.Exporter, 0, len(formats))
	for _, name := range formats {
		e, err := export.Lookup(name)
		if err != nil {
			return nil, err
		}
		exporters = append(exporters, e)
	}

	ds, err := Load(ctx, cfg)
	if err != nil {
		return nil, err
	}

	opts := export.Options{Minify: cfg.Minify}

	var (
		mu      sync.Mutex
		written []string
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, e := range exporters {
		g.Go(func() error {
			start := time.Now()
			files, err := e.Export(ds, opts)
			size := 0
			for _, f := range files {
				size += len(f.Data)
			}
			metrics.ObserveExport(e.Format(), size, time.Since(start), err)
			if err != nil {
				return fmt.Errorf("export %s: %w", e.Format(), err)
			}

			if err := export.WriteFiles(gctx, cfg.DistDir, files); err != nil {
				return fmt.Errorf("write %s artifacts: %w", e.Format(), err)
			}

			mu.Lock()
			for _, f := range files {
				written = append(written, f.Name)
			}
			mu.Unlock()

			formatLogger := xlog.WithComponentFromContext(gctx, "jobs")
			formatLogger.Info().
				Str("event", "run.format_done").
				Str("format", e.Format()).
				Int("files", len(files)).
				Int("bytes", size).
				Dur("duration", time.Since(start)).
				Msg("format exported")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(written)
	status := &Status{
		LastRun: time.Now().UTC(),
		Year:    ds.Year,
		Counts:  ds.Counts(),
		Files:   written,
	}
	logger.Info().
		Str("event", "run.done").
		Int("files", len(written)).
		Int("records", status.Counts.Total()).
		Msg("export run completed")
	return status, nil
}
