// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownConfigField classifies strict YAML parse failures caused by
// unknown keys. Use errors.Is instead of string matching.
var ErrUnknownConfigField = errors.New("unknown config field")

// Loader resolves configuration with precedence ENV > file > defaults.
type Loader struct {
	configPath string
}

// NewLoader creates a loader. configPath may be empty, in which case only
// environment variables and defaults apply.
func NewLoader(configPath string) *Loader {
	return &Loader{configPath: configPath}
}

// Load resolves the configuration: defaults first, then the YAML file
// (strict), then the environment.
func (l *Loader) Load() (AppConfig, error) {
	cfg := Defaults()

	if l.configPath != "" {
		if err := l.applyFile(&cfg); err != nil {
			return AppConfig{}, err
		}
	}

	l.applyEnv(&cfg)
	return cfg, nil
}

func (l *Loader) applyFile(cfg *AppConfig) error {
	path := filepath.Clean(l.configPath)
	data, err := os.ReadFile(path) // #nosec G304 -- operator-provided config path
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		if strings.Contains(err.Error(), "not found in type") {
			return fmt.Errorf("%w: %v", ErrUnknownConfigField, err)
		}
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func (l *Loader) applyEnv(cfg *AppConfig) {
	cfg.Year = ParseInt("GEODATABR_YEAR", cfg.Year)
	cfg.Source = ParseString("GEODATABR_SOURCE", cfg.Source)
	cfg.DataDir = ParseString("GEODATABR_DATA_DIR", cfg.DataDir)
	cfg.DistDir = ParseString("GEODATABR_DIST_DIR", cfg.DistDir)
	cfg.Minify = ParseBool("GEODATABR_MINIFY", cfg.Minify)
	cfg.StrictCounts = ParseBool("GEODATABR_STRICT_COUNTS", cfg.StrictCounts)
	cfg.Listen = ParseString("GEODATABR_LISTEN", cfg.Listen)
	cfg.RateLimit = ParseInt("GEODATABR_RATE_LIMIT", cfg.RateLimit)
	cfg.LogLevel = ParseString("GEODATABR_LOG_LEVEL", cfg.LogLevel)

	if v, ok := os.LookupEnv("GEODATABR_FORMATS"); ok && v != "" {
		var formats []string
		for _, f := range strings.Split(v, ",") {
			if f = strings.TrimSpace(f); f != "" {
				formats = append(formats, f)
			}
		}
		cfg.Formats = formats
	}
}
