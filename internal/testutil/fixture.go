// SPDX-License-Identifier: MIT

// Package testutil provides shared test fixtures.
package testutil

import "github.com/geodatabr/geodatabr/internal/dataset"

// FixtureDataset returns a small internally consistent dataset covering two
// states and every entity level, including names that exercise quoting and
// accents in the encoders.
func FixtureDataset() *dataset.Dataset {
	ds := &dataset.Dataset{
		Year: 2016,
		States: []dataset.State{
			{ID: 11, Name: "Rondônia"},
			{ID: 35, Name: "São Paulo"},
		},
		Mesoregions: []dataset.Mesoregion{
			{ID: 1101, StateID: 11, Name: "Leste Rondoniense"},
			{ID: 3515, StateID: 35, Name: "Metropolitana de São Paulo"},
		},
		Microregions: []dataset.Microregion{
			{ID: 11006, MesoregionID: 1101, StateID: 11, Name: "Cacoal"},
			{ID: 35061, MesoregionID: 3515, StateID: 35, Name: "São Paulo"},
		},
		Municipalities: []dataset.Municipality{
			{ID: 1100049, MicroregionID: 11006, MesoregionID: 1101, StateID: 11, Name: "Cacoal"},
			{ID: 3550308, MicroregionID: 35061, MesoregionID: 3515, StateID: 35, Name: "São Paulo"},
			{ID: 3552502, MicroregionID: 35061, MesoregionID: 3515, StateID: 35, Name: "Santana de Parnaíba"},
		},
		Districts: []dataset.District{
			{ID: 110004905, MunicipalityID: 1100049, MicroregionID: 11006, MesoregionID: 1101, StateID: 11, Name: "Cacoal"},
			{ID: 355030801, MunicipalityID: 3550308, MicroregionID: 35061, MesoregionID: 3515, StateID: 35, Name: "São Paulo"},
			{ID: 355250205, MunicipalityID: 3552502, MicroregionID: 35061, MesoregionID: 3515, StateID: 35, Name: "Santana de Parnaíba"},
		},
		Subdistricts: []dataset.Subdistrict{
			{ID: 35503080151, DistrictID: 355030801, MunicipalityID: 3550308, MicroregionID: 35061, MesoregionID: 3515, StateID: 35, Name: "Água Rasa"},
			{ID: 35503080152, DistrictID: 355030801, MunicipalityID: 3550308, MicroregionID: 35061, MesoregionID: 3515, StateID: 35, Name: "Bela Vista d'Oeste"},
		},
	}
	ds.Sort()
	return ds
}

// FixtureCounts returns the per-table counts of FixtureDataset.
func FixtureCounts() dataset.Counts {
	return dataset.Counts{
		States:         2,
		Mesoregions:    2,
		Microregions:   2,
		Municipalities: 3,
		Districts:      3,
		Subdistricts:   2,
	}
}
