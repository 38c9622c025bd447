// SPDX-License-Identifier: MIT

package dataset

import "fmt"

// Counts holds per-table record counts.
type Counts struct {
	States         int `json:"uf" yaml:"uf"`
	Mesoregions    int `json:"mesorregiao" yaml:"mesorregiao"`
	Microregions   int `json:"microrregiao" yaml:"microrregiao"`
	Municipalities int `json:"municipio" yaml:"municipio"`
	Districts      int `json:"distrito" yaml:"distrito"`
	Subdistricts   int `json:"subdistrito" yaml:"subdistrito"`
}

// ReferenceCounts pins the documented record counts per base year.
var ReferenceCounts = map[int]Counts{
	2016: {
		States:         27,
		Mesoregions:    137,
		Microregions:   558,
		Municipalities: 5570,
		Districts:      10302,
		Subdistricts:   662,
	},
}

// Counts returns the dataset's per-table record counts.
func (ds *Dataset) Counts() Counts {
	return Counts{
		States:         len(ds.States),
		Mesoregions:    len(ds.Mesoregions),
		Microregions:   len(ds.Microregions),
		Municipalities: len(ds.Municipalities),
		Districts:      len(ds.Districts),
		Subdistricts:   len(ds.Subdistricts),
	}
}

// Total returns the sum of all table counts.
func (c Counts) Total() int {
	return c.States + c.Mesoregions + c.Microregions + c.Municipalities + c.Districts + c.Subdistricts
}

// VerifyCounts compares the dataset counts against a pinned snapshot and
// reports every mismatching table.
func (ds *Dataset) VerifyCounts(want Counts) error {
	got := ds.Counts()
	type pair struct {
		table     string
		got, want int
	}
	pairs := []pair{
		{"uf", got.States, want.States},
		{"mesorregiao", got.Mesoregions, want.Mesoregions},
		{"microrregiao", got.Microregions, want.Microregions},
		{"municipio", got.Municipalities, want.Municipalities},
		{"distrito", got.Districts, want.Districts},
		{"subdistrito", got.Subdistricts, want.Subdistricts},
	}
	var mismatches []string
	for _, p := range pairs {
		if p.got != p.want {
			mismatches = append(mismatches, fmt.Sprintf("%s: got %d, want %d", p.table, p.got, p.want))
		}
	}
	if len(mismatches) > 0 {
		return fmt.Errorf("%w: %v", ErrCountMismatch, mismatches)
	}
	return nil
}
