// SPDX-License-Identifier: MIT

// Package ibge fetches DTB (Divisão Territorial Brasileira) bases published
// by IBGE: a registry of known base years plus an HTTP client that downloads
// and caches the spreadsheet inside each base archive.
package ibge

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed bases.yaml
var basesYAML []byte

// ErrUnknownBase reports a base year missing from the registry.
var ErrUnknownBase = errors.New("base year is not available for download")

// Base describes one downloadable DTB publication.
type Base struct {
	Year    int    `yaml:"year"`
	Archive string `yaml:"archive"`
	File    string `yaml:"file"`
	Format  string `yaml:"format"`
}

type basesFile struct {
	Bases []Base `yaml:"bases"`
}

// Bases returns the registry of known DTB bases.
func Bases() ([]Base, error) {
	var f basesFile
	dec := yamlStrictDecoder(basesYAML)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode bases registry: %w", err)
	}
	return f.Bases, nil
}

// BaseForYear returns the registry entry for the given year.
func BaseForYear(year int) (Base, error) {
	bases, err := Bases()
	if err != nil {
		return Base{}, err
	}
	for _, b := range bases {
		if b.Year == year {
			return b, nil
		}
	}
	return Base{}, fmt.Errorf("%w: %d", ErrUnknownBase, year)
}

func yamlStrictDecoder(data []byte) *yaml.Decoder {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec
}
