// SPDX-License-Identifier: MIT

package dataset

// Document is the ordered table -> records mapping used by the hierarchical
// encoders (JSON, YAML, MessagePack, property list). Field order matches the
// canonical table order.
type Document struct {
	States         []State        `json:"uf" yaml:"uf" msgpack:"uf" plist:"uf"`
	Mesoregions    []Mesoregion   `json:"mesorregiao" yaml:"mesorregiao" msgpack:"mesorregiao" plist:"mesorregiao"`
	Microregions   []Microregion  `json:"microrregiao" yaml:"microrregiao" msgpack:"microrregiao" plist:"microrregiao"`
	Municipalities []Municipality `json:"municipio" yaml:"municipio" msgpack:"municipio" plist:"municipio"`
	Districts      []District     `json:"distrito" yaml:"distrito" msgpack:"distrito" plist:"distrito"`
	Subdistricts   []Subdistrict  `json:"subdistrito" yaml:"subdistrito" msgpack:"subdistrito" plist:"subdistrito"`
}

// Document returns the dataset as a Document.
func (ds *Dataset) Document() Document {
	return Document{
		States:         ds.States,
		Mesoregions:    ds.Mesoregions,
		Microregions:   ds.Microregions,
		Municipalities: ds.Municipalities,
		Districts:      ds.Districts,
		Subdistricts:   ds.Subdistricts,
	}
}

// Dataset converts a decoded Document back into a Dataset. Used by the
// round-trip checks on decodable formats.
func (d Document) Dataset(year int) *Dataset {
	return &Dataset{
		Year:           year,
		States:         d.States,
		Mesoregions:    d.Mesoregions,
		Microregions:   d.Microregions,
		Municipalities: d.Municipalities,
		Districts:      d.Districts,
		Subdistricts:   d.Subdistricts,
	}
}

// Generic returns the dataset as generic maps and slices, for encoders that
// marshal through reflection on interface values (UBJSON, PHP serialization).
func (ds *Dataset) Generic() map[string]any {
	doc := make(map[string]any, len(Tables))
	for _, t := range Tables {
		rows := ds.Rows(t.Name)
		records := make([]any, 0, len(rows))
		for _, row := range rows {
			record := make(map[string]any, len(t.Columns))
			for i, col := range t.Columns {
				record[col] = row[i]
			}
			records = append(records, record)
		}
		doc[t.Name] = records
	}
	return doc
}
