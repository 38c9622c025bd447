// SPDX-License-Identifier: MIT

// Package export encodes the canonical dataset into the distribution
// formats. Every exporter produces the same records losslessly; tabular
// formats emit one file per entity level, the rest a single file.
package export

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/geodatabr/geodatabr/internal/dataset"
)

// ErrUnknownFormat reports a format name with no registered exporter.
var ErrUnknownFormat = errors.New("unknown export format")

// Options controls encoder behavior shared by all formats.
type Options struct {
	// Minify strips optional whitespace wherever the format allows it.
	Minify bool
}

// File is one produced artifact.
type File struct {
	Name string
	Data []byte
}

// Exporter encodes a dataset into one format.
type Exporter interface {
	// Format is the registry key ("json", "csv", ...).
	Format() string
	// ContentType is the MIME type of a single produced file.
	ContentType() string
	// Export encodes ds. Multi-file formats return one File per table.
	Export(ds *dataset.Dataset, opts Options) ([]File, error)
}

var (
	mu       sync.RWMutex
	registry = make(map[string]Exporter)
)

// Register adds an exporter to the registry. Duplicate registrations panic;
// they indicate a programming error at init time.
func Register(e Exporter) {
	mu.Lock()
	defer mu.Unlock()
	if _, dup := registry[e.Format()]; dup {
		panic(fmt.Sprintf("export: duplicate registration for format %q", e.Format()))
	}
	registry[e.Format()] = e
}

// Lookup returns the exporter registered for the given format.
func Lookup(format string) (Exporter, error) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := registry[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return e, nil
}

// Formats returns the registered format names, sorted.
func Formats() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register(jsonExporter{})
	Register(msgpackExporter{})
	Register(plistExporter{})
	Register(ubjsonExporter{})
	Register(xmlExporter{})
	Register(yamlExporter{})
	Register(csvExporter{comma: ',', format: "csv", contentType: "text/csv"})
	Register(csvExporter{comma: '\t', format: "tsv", contentType: "text/tab-separated-values"})
	Register(sqlExporter{})
	Register(sqliteExporter{})
	Register(xlsxExporter{})
	Register(phpExporter{})
}
