// SPDX-License-Identifier: MIT

// Package config loads application configuration with precedence
// ENV > YAML file > defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// AppConfig is the resolved application configuration.
type AppConfig struct {
	// Year selects the DTB base to download and export.
	Year int `yaml:"year"`
	// Source optionally points at a local spreadsheet, bypassing download.
	Source string `yaml:"source"`
	// DataDir holds the download cache.
	DataDir string `yaml:"dataDir"`
	// DistDir receives the exported artifacts.
	DistDir string `yaml:"distDir"`
	// Formats restricts the export to the named formats; empty means all.
	Formats []string `yaml:"formats"`
	// Minify strips optional whitespace from text formats.
	Minify bool `yaml:"minify"`
	// StrictCounts fails the run when counts diverge from the pinned
	// snapshot for the base year.
	StrictCounts bool `yaml:"strictCounts"`
	// Listen is the HTTP API bind address.
	Listen string `yaml:"listen"`
	// RateLimit is the per-IP request budget per minute for the HTTP API.
	RateLimit int `yaml:"rateLimit"`
	// LogLevel sets the zerolog level.
	LogLevel string `yaml:"logLevel"`
}

// Defaults returns the built-in configuration.
func Defaults() AppConfig {
	return AppConfig{
		Year:      2016,
		DataDir:   ".cache",
		DistDir:   "dist",
		Listen:    ":8080",
		RateLimit: 600,
		LogLevel:  "info",
	}
}

var (
	// ErrNoBase reports a configuration with neither a base year nor a
	// local source.
	ErrNoBase = errors.New("either year or source must be set")
	// ErrInvalidRateLimit reports a non-positive rate limit.
	ErrInvalidRateLimit = errors.New("rateLimit must be positive")
)

// Validate checks the resolved configuration for structural problems.
func Validate(cfg AppConfig) error {
	if cfg.Year == 0 && cfg.Source == "" {
		return ErrNoBase
	}
	if cfg.DistDir == "" {
		return errors.New("distDir must not be empty")
	}
	if cfg.RateLimit <= 0 {
		return ErrInvalidRateLimit
	}
	for _, f := range cfg.Formats {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("formats must not contain empty entries")
		}
	}
	return nil
}
