// SPDX-License-Identifier: MIT

package export

import (
	"encoding/json"
	"fmt"

	"github.com/geodatabr/geodatabr/internal/dataset"
)

type jsonExporter struct{}

func (jsonExporter) Format() string      { return "json" }
func (jsonExporter) ContentType() string { return "application/json" }

func (e jsonExporter) Export(ds *dataset.Dataset, opts Options) ([]File, error) {
	var (
		data []byte
		err  error
	)
	if opts.Minify {
		data, err = json.Marshal(ds.Document())
	} else {
		data, err = json.MarshalIndent(ds.Document(), "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	if !opts.Minify {
		data = append(data, '\n')
	}
	return []File{{Name: ds.Name() + ".json", Data: data}}, nil
}
