// SPDX-License-Identifier: MIT

package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/geodatabr/geodatabr/internal/dataset"
)

// csvExporter covers both CSV and TSV; the two differ only in the field
// separator, file extension and content type.
type csvExporter struct {
	comma       rune
	format      string
	contentType string
}

func (e csvExporter) Format() string      { return e.format }
func (e csvExporter) ContentType() string { return e.contentType }

func (e csvExporter) Export(ds *dataset.Dataset, _ Options) ([]File, error) {
	files := make([]File, 0, len(dataset.Tables))
	for _, t := range dataset.Tables {
		rows := ds.Rows(t.Name)
		if len(rows) == 0 {
			continue
		}

		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		w.Comma = e.comma

		if err := w.Write(t.Columns); err != nil {
			return nil, fmt.Errorf("write %s header for %s: %w", e.format, t.Name, err)
		}
		record := make([]string, len(t.Columns))
		for _, row := range rows {
			for i, v := range row {
				switch x := v.(type) {
				case int64:
					record[i] = strconv.FormatInt(x, 10)
				case string:
					record[i] = x
				default:
					record[i] = fmt.Sprint(x)
				}
			}
			if err := w.Write(record); err != nil {
				return nil, fmt.Errorf("write %s row for %s: %w", e.format, t.Name, err)
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, fmt.Errorf("flush %s for %s: %w", e.format, t.Name, err)
		}

		files = append(files, File{Name: t.FileBase + "." + e.format, Data: buf.Bytes()})
	}
	return files, nil
}
