// SPDX-License-Identifier: MIT

package export

import (
	"fmt"

	"howett.net/plist"

	"github.com/geodatabr/geodatabr/internal/dataset"
)

type plistExporter struct{}

func (plistExporter) Format() string      { return "plist" }
func (plistExporter) ContentType() string { return "application/x-plist" }

// Export produces an Apple binary property list. Minified output is the
// binary format's natural state, so Minify is a no-op here.
func (e plistExporter) Export(ds *dataset.Dataset, _ Options) ([]File, error) {
	data, err := plist.Marshal(ds.Document(), plist.BinaryFormat)
	if err != nil {
		return nil, fmt.Errorf("encode plist: %w", err)
	}
	return []File{{Name: ds.Name() + ".plist", Data: data}}, nil
}
