// SPDX-License-Identifier: MIT

package export

import (
	"fmt"

	"github.com/elliotchance/phpserialize"

	"github.com/geodatabr/geodatabr/internal/dataset"
)

type phpExporter struct{}

func (phpExporter) Format() string      { return "php" }
func (phpExporter) ContentType() string { return "application/vnd.php.serialized" }

// Export encodes the dataset with PHP's serialize() wire format, one
// associative array per table.
func (e phpExporter) Export(ds *dataset.Dataset, _ Options) ([]File, error) {
	data, err := phpserialize.Marshal(ds.Generic(), nil)
	if err != nil {
		return nil, fmt.Errorf("encode php serialization: %w", err)
	}
	return []File{{Name: ds.Name() + ".phpd", Data: data}}, nil
}
