// SPDX-License-Identifier: MIT

package export

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/geodatabr/geodatabr/internal/dataset"
)

type msgpackExporter struct{}

func (msgpackExporter) Format() string      { return "msgpack" }
func (msgpackExporter) ContentType() string { return "application/x-msgpack" }

func (e msgpackExporter) Export(ds *dataset.Dataset, _ Options) ([]File, error) {
	data, err := msgpack.Marshal(ds.Document())
	if err != nil {
		return nil, fmt.Errorf("encode msgpack: %w", err)
	}
	return []File{{Name: ds.Name() + ".msgpack", Data: data}}, nil
}
