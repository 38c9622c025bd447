// SPDX-License-Identifier: MIT

package dataset

// TableSpec describes one dataset table: its SQL/serialization name, the
// plural file base used for per-table artifacts (CSV, TSV, sheets) and its
// column order.
type TableSpec struct {
	Name     string
	FileBase string
	Columns  []string
}

// Tables lists the dataset tables in canonical (top-down) order.
var Tables = []TableSpec{
	{
		Name:     "uf",
		FileBase: "estados",
		Columns:  []string{"id", "nome"},
	},
	{
		Name:     "mesorregiao",
		FileBase: "mesorregioes",
		Columns:  []string{"id", "id_uf", "nome"},
	},
	{
		Name:     "microrregiao",
		FileBase: "microrregioes",
		Columns:  []string{"id", "id_mesorregiao", "id_uf", "nome"},
	},
	{
		Name:     "municipio",
		FileBase: "municipios",
		Columns:  []string{"id", "id_microrregiao", "id_mesorregiao", "id_uf", "nome"},
	},
	{
		Name:     "distrito",
		FileBase: "distritos",
		Columns:  []string{"id", "id_municipio", "id_microrregiao", "id_mesorregiao", "id_uf", "nome"},
	},
	{
		Name:     "subdistrito",
		FileBase: "subdistritos",
		Columns:  []string{"id", "id_distrito", "id_municipio", "id_microrregiao", "id_mesorregiao", "id_uf", "nome"},
	},
}

// TableByName returns the spec for the named table.
func TableByName(name string) (TableSpec, bool) {
	for _, t := range Tables {
		if t.Name == name {
			return t, true
		}
	}
	return TableSpec{}, false
}

// Rows returns the records of the named table as ordered column values
// matching the table's column spec. Numeric values are int64, names string.
func (ds *Dataset) Rows(table string) [][]any {
	switch table {
	case "uf":
		rows := make([][]any, 0, len(ds.States))
		for _, r := range ds.States {
			rows = append(rows, []any{r.ID, r.Name})
		}
		return rows
	case "mesorregiao":
		rows := make([][]any, 0, len(ds.Mesoregions))
		for _, r := range ds.Mesoregions {
			rows = append(rows, []any{r.ID, r.StateID, r.Name})
		}
		return rows
	case "microrregiao":
		rows := make([][]any, 0, len(ds.Microregions))
		for _, r := range ds.Microregions {
			rows = append(rows, []any{r.ID, r.MesoregionID, r.StateID, r.Name})
		}
		return rows
	case "municipio":
		rows := make([][]any, 0, len(ds.Municipalities))
		for _, r := range ds.Municipalities {
			rows = append(rows, []any{r.ID, r.MicroregionID, r.MesoregionID, r.StateID, r.Name})
		}
		return rows
	case "distrito":
		rows := make([][]any, 0, len(ds.Districts))
		for _, r := range ds.Districts {
			rows = append(rows, []any{r.ID, r.MunicipalityID, r.MicroregionID, r.MesoregionID, r.StateID, r.Name})
		}
		return rows
	case "subdistrito":
		rows := make([][]any, 0, len(ds.Subdistricts))
		for _, r := range ds.Subdistricts {
			rows = append(rows, []any{r.ID, r.DistrictID, r.MunicipalityID, r.MicroregionID, r.MesoregionID, r.StateID, r.Name})
		}
		return rows
	}
	return nil
}
