// SPDX-License-Identifier: MIT

package export

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/geodatabr/geodatabr/internal/dataset"
)

// The XML shape mirrors the historical dump layout: a database element
// containing one table element per entity level, rows of named fields.
type xmlDatabase struct {
	XMLName xml.Name   `xml:"database"`
	Name    string     `xml:"name,attr"`
	Tables  []xmlTable `xml:"table"`
}

type xmlTable struct {
	Name string   `xml:"name,attr"`
	Rows []xmlRow `xml:"row"`
}

type xmlRow struct {
	Fields []xmlField `xml:"field"`
}

type xmlField struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type xmlExporter struct{}

func (xmlExporter) Format() string      { return "xml" }
func (xmlExporter) ContentType() string { return "application/xml" }

func (e xmlExporter) Export(ds *dataset.Dataset, opts Options) ([]File, error) {
	doc := xmlDatabase{Name: ds.Name()}
	for _, t := range dataset.Tables {
		rows := ds.Rows(t.Name)
		if len(rows) == 0 {
			continue
		}
		table := xmlTable{Name: t.Name, Rows: make([]xmlRow, 0, len(rows))}
		for _, row := range rows {
			fields := make([]xmlField, 0, len(t.Columns))
			for i, col := range t.Columns {
				fields = append(fields, xmlField{Name: col, Value: fieldString(row[i])})
			}
			table.Rows = append(table.Rows, xmlRow{Fields: fields})
		}
		doc.Tables = append(doc.Tables, table)
	}

	var (
		data []byte
		err  error
	)
	if opts.Minify {
		data, err = xml.Marshal(doc)
	} else {
		data, err = xml.MarshalIndent(doc, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("encode xml: %w", err)
	}

	out := append([]byte(xml.Header), data...)
	if !opts.Minify {
		out = append(out, '\n')
	}
	return []File{{Name: ds.Name() + ".xml", Data: out}}, nil
}

func fieldString(v any) string {
	switch x := v.(type) {
	case int64:
		return strconv.FormatInt(x, 10)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
