// SPDX-License-Identifier: MIT

package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/geodatabr/geodatabr/internal/dataset"
)

type xlsxExporter struct{}

func (xlsxExporter) Format() string { return "xlsx" }
func (xlsxExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Export writes one workbook with one sheet per entity level, a header row
// followed by the records in canonical order.
func (e xlsxExporter) Export(ds *dataset.Dataset, _ Options) ([]File, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, t := range dataset.Tables {
		sheet := t.FileBase
		if i == 0 {
			// The default sheet is renamed instead of adding a new one.
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return nil, fmt.Errorf("rename sheet %s: %w", sheet, err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("create sheet %s: %w", sheet, err)
			}
		}

		header := make([]any, len(t.Columns))
		for j, col := range t.Columns {
			header[j] = col
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return nil, fmt.Errorf("write header for %s: %w", sheet, err)
		}

		for j, row := range ds.Rows(t.Name) {
			cell, err := excelize.CoordinatesToCellName(1, j+2)
			if err != nil {
				return nil, fmt.Errorf("cell name for %s row %d: %w", sheet, j, err)
			}
			values := append([]any(nil), row...)
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return nil, fmt.Errorf("write row for %s: %w", sheet, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return []File{{Name: ds.Name() + ".xlsx", Data: buf.Bytes()}}, nil
}
