// SPDX-License-Identifier: MIT

package export

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/geodatabr/geodatabr/internal/dataset"
)

type yamlExporter struct{}

func (yamlExporter) Format() string      { return "yaml" }
func (yamlExporter) ContentType() string { return "application/yaml" }

func (e yamlExporter) Export(ds *dataset.Dataset, opts Options) ([]File, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	indent := 2
	if opts.Minify {
		// yaml.v3 has no flow-style switch on the encoder; the smallest
		// block-style indent is the minified variant.
		indent = 1
	}
	enc.SetIndent(indent)
	if err := enc.Encode(ds.Document()); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close yaml encoder: %w", err)
	}
	return []File{{Name: ds.Name() + ".yaml", Data: buf.Bytes()}}, nil
}
