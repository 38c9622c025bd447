// SPDX-License-Identifier: MIT

package export

import (
	"fmt"

	"github.com/jmank88/ubjson"

	"github.com/geodatabr/geodatabr/internal/dataset"
)

type ubjsonExporter struct{}

func (ubjsonExporter) Format() string      { return "ubjson" }
func (ubjsonExporter) ContentType() string { return "application/ubjson" }

// Export encodes the dataset as Universal Binary JSON. The encoder works on
// generic values, so the dataset is converted through its generic document.
func (e ubjsonExporter) Export(ds *dataset.Dataset, _ Options) ([]File, error) {
	data, err := ubjson.Marshal(ds.Generic())
	if err != nil {
		return nil, fmt.Errorf("encode ubjson: %w", err)
	}
	return []File{{Name: ds.Name() + ".ubj", Data: data}}, nil
}
