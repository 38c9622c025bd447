// SPDX-License-Identifier: MIT

// Package dataset defines the canonical in-memory model of the Brazilian
// territorial division (DTB): states, mesoregions, microregions,
// municipalities, districts and subdistricts in strict tree containment.
package dataset

import (
	"sort"
	"strconv"
)

// State is a top-level federative unit (UF).
type State struct {
	ID   int64  `json:"id" yaml:"id" msgpack:"id" plist:"id"`
	Name string `json:"nome" yaml:"nome" msgpack:"nome" plist:"nome"`
}

// Mesoregion belongs to exactly one State.
type Mesoregion struct {
	ID      int64  `json:"id" yaml:"id" msgpack:"id" plist:"id"`
	StateID int64  `json:"id_uf" yaml:"id_uf" msgpack:"id_uf" plist:"id_uf"`
	Name    string `json:"nome" yaml:"nome" msgpack:"nome" plist:"nome"`
}

// Microregion belongs to exactly one Mesoregion.
type Microregion struct {
	ID           int64  `json:"id" yaml:"id" msgpack:"id" plist:"id"`
	MesoregionID int64  `json:"id_mesorregiao" yaml:"id_mesorregiao" msgpack:"id_mesorregiao" plist:"id_mesorregiao"`
	StateID      int64  `json:"id_uf" yaml:"id_uf" msgpack:"id_uf" plist:"id_uf"`
	Name         string `json:"nome" yaml:"nome" msgpack:"nome" plist:"nome"`
}

// Municipality belongs to exactly one Microregion.
type Municipality struct {
	ID            int64  `json:"id" yaml:"id" msgpack:"id" plist:"id"`
	MicroregionID int64  `json:"id_microrregiao" yaml:"id_microrregiao" msgpack:"id_microrregiao" plist:"id_microrregiao"`
	MesoregionID  int64  `json:"id_mesorregiao" yaml:"id_mesorregiao" msgpack:"id_mesorregiao" plist:"id_mesorregiao"`
	StateID       int64  `json:"id_uf" yaml:"id_uf" msgpack:"id_uf" plist:"id_uf"`
	Name          string `json:"nome" yaml:"nome" msgpack:"nome" plist:"nome"`
}

// District belongs to exactly one Municipality.
type District struct {
	ID             int64  `json:"id" yaml:"id" msgpack:"id" plist:"id"`
	MunicipalityID int64  `json:"id_municipio" yaml:"id_municipio" msgpack:"id_municipio" plist:"id_municipio"`
	MicroregionID  int64  `json:"id_microrregiao" yaml:"id_microrregiao" msgpack:"id_microrregiao" plist:"id_microrregiao"`
	MesoregionID   int64  `json:"id_mesorregiao" yaml:"id_mesorregiao" msgpack:"id_mesorregiao" plist:"id_mesorregiao"`
	StateID        int64  `json:"id_uf" yaml:"id_uf" msgpack:"id_uf" plist:"id_uf"`
	Name           string `json:"nome" yaml:"nome" msgpack:"nome" plist:"nome"`
}

// Subdistrict belongs to exactly one District.
type Subdistrict struct {
	ID             int64  `json:"id" yaml:"id" msgpack:"id" plist:"id"`
	DistrictID     int64  `json:"id_distrito" yaml:"id_distrito" msgpack:"id_distrito" plist:"id_distrito"`
	MunicipalityID int64  `json:"id_municipio" yaml:"id_municipio" msgpack:"id_municipio" plist:"id_municipio"`
	MicroregionID  int64  `json:"id_microrregiao" yaml:"id_microrregiao" msgpack:"id_microrregiao" plist:"id_microrregiao"`
	MesoregionID   int64  `json:"id_mesorregiao" yaml:"id_mesorregiao" msgpack:"id_mesorregiao" plist:"id_mesorregiao"`
	StateID        int64  `json:"id_uf" yaml:"id_uf" msgpack:"id_uf" plist:"id_uf"`
	Name           string `json:"nome" yaml:"nome" msgpack:"nome" plist:"nome"`
}

// Dataset holds one snapshot of the territorial division.
type Dataset struct {
	Year           int
	States         []State
	Mesoregions    []Mesoregion
	Microregions   []Microregion
	Municipalities []Municipality
	Districts      []District
	Subdistricts   []Subdistrict
}

// Name returns the dataset name used for exported artifacts ("dtb_<year>").
func (ds *Dataset) Name() string {
	if ds.Year == 0 {
		return "dtb"
	}
	return "dtb_" + strconv.Itoa(ds.Year)
}

// Sort orders every table by ascending ID. Exports rely on this order being
// deterministic.
func (ds *Dataset) Sort() {
	sort.Slice(ds.States, func(i, j int) bool { return ds.States[i].ID < ds.States[j].ID })
	sort.Slice(ds.Mesoregions, func(i, j int) bool { return ds.Mesoregions[i].ID < ds.Mesoregions[j].ID })
	sort.Slice(ds.Microregions, func(i, j int) bool { return ds.Microregions[i].ID < ds.Microregions[j].ID })
	sort.Slice(ds.Municipalities, func(i, j int) bool { return ds.Municipalities[i].ID < ds.Municipalities[j].ID })
	sort.Slice(ds.Districts, func(i, j int) bool { return ds.Districts[i].ID < ds.Districts[j].ID })
	sort.Slice(ds.Subdistricts, func(i, j int) bool { return ds.Subdistricts[i].ID < ds.Subdistricts[j].ID })
}
