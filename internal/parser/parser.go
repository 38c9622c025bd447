// SPDX-License-Identifier: MIT

// Package parser turns a DTB spreadsheet into the canonical dataset. The DTB
// publication is one flat sheet where every row carries the full ancestry of
// a subdistrict-level record; the parser composes full numeric codes and
// deduplicates each entity level.
package parser

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/geodatabr/geodatabr/internal/dataset"
	xlog "github.com/geodatabr/geodatabr/internal/log"
)

var (
	// ErrNoHeader reports a sheet without a recognizable DTB header row.
	ErrNoHeader = errors.New("header row not found")
	// ErrMissingColumn reports a required DTB column absent from the header.
	ErrMissingColumn = errors.New("missing column")
	// ErrEmptySheet reports a spreadsheet without any data rows.
	ErrEmptySheet = errors.New("no data rows")
)

// columns holds the header cell index of each DTB column we consume.
type columns struct {
	uf       int
	ufName   int
	meso     int
	mesoName int
	micro    int
	micName  int
	munFull  int
	munName  int
	distFull int
	dstName  int
	subFull  int
	subName  int
}

// candidates per column, in normalized header form. The DTB layout drifted
// across publications; each list covers the observed variants.
var headerCandidates = map[string][]string{
	"uf":        {"uf"},
	"uf_name":   {"nome uf"},
	"meso":      {"mesorregiao geografica", "mesorregiao"},
	"meso_name": {"nome mesorregiao"},
	"micro":     {"microrregiao geografica", "microrregiao"},
	"mic_name":  {"nome microrregiao"},
	"mun_full":  {"codigo municipio completo", "codigo de municipio completo"},
	"mun_name":  {"nome municipio"},
	"dist_full": {"codigo de distrito completo", "codigo distrito completo"},
	"dst_name":  {"nome distrito"},
	"sub_full":  {"codigo de subdistrito completo", "codigo subdistrito completo"},
	"sub_name":  {"nome subdistrito"},
}

// Parse reads a DTB spreadsheet and builds the dataset for the given year.
func Parse(r io.Reader, year int) (*dataset.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	headerIdx, cols, err := locateHeader(rows)
	if err != nil {
		return nil, err
	}
	if headerIdx+1 >= len(rows) {
		return nil, ErrEmptySheet
	}

	b := newBuilder(year)
	for i, row := range rows[headerIdx+1:] {
		if isBlank(row) {
			continue
		}
		if err := b.addRow(row, cols); err != nil {
			return nil, fmt.Errorf("row %d: %w", headerIdx+2+i, err)
		}
	}

	ds := b.dataset()
	logger := xlog.WithComponent("parser")
	logger.Info().
		Str("event", "parse.done").
		Int("year", year).
		Int("municipios", len(ds.Municipalities)).
		Int("distritos", len(ds.Districts)).
		Int("subdistritos", len(ds.Subdistricts)).
		Msg("spreadsheet parsed")
	return ds, nil
}

func locateHeader(rows [][]string) (int, columns, error) {
	for i, row := range rows {
		index := make(map[string]int, len(row))
		for j, cell := range row {
			index[normalizeHeader(cell)] = j
		}
		if _, ok := index["uf"]; !ok {
			continue
		}
		if _, ok := index["nome uf"]; !ok {
			continue
		}

		find := func(key string) (int, error) {
			for _, cand := range headerCandidates[key] {
				if j, ok := index[cand]; ok {
					return j, nil
				}
			}
			return 0, fmt.Errorf("%w: %s", ErrMissingColumn, headerCandidates[key][0])
		}

		var cols columns
		var err error
		if cols.uf, err = find("uf"); err != nil {
			return 0, columns{}, err
		}
		if cols.ufName, err = find("uf_name"); err != nil {
			return 0, columns{}, err
		}
		if cols.meso, err = find("meso"); err != nil {
			return 0, columns{}, err
		}
		if cols.mesoName, err = find("meso_name"); err != nil {
			return 0, columns{}, err
		}
		if cols.micro, err = find("micro"); err != nil {
			return 0, columns{}, err
		}
		if cols.micName, err = find("mic_name"); err != nil {
			return 0, columns{}, err
		}
		if cols.munFull, err = find("mun_full"); err != nil {
			return 0, columns{}, err
		}
		if cols.munName, err = find("mun_name"); err != nil {
			return 0, columns{}, err
		}
		if cols.distFull, err = find("dist_full"); err != nil {
			return 0, columns{}, err
		}
		if cols.dstName, err = find("dst_name"); err != nil {
			return 0, columns{}, err
		}
		if cols.subFull, err = find("sub_full"); err != nil {
			return 0, columns{}, err
		}
		if cols.subName, err = find("sub_name"); err != nil {
			return 0, columns{}, err
		}
		return i, cols, nil
	}
	return 0, columns{}, ErrNoHeader
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

type builder struct {
	year  int
	ufs   map[int64]dataset.State
	mesos map[int64]dataset.Mesoregion
	mics  map[int64]dataset.Microregion
	muns  map[int64]dataset.Municipality
	dists map[int64]dataset.District
	subs  map[int64]dataset.Subdistrict
}

func newBuilder(year int) *builder {
	return &builder{
		year:  year,
		ufs:   make(map[int64]dataset.State),
		mesos: make(map[int64]dataset.Mesoregion),
		mics:  make(map[int64]dataset.Microregion),
		muns:  make(map[int64]dataset.Municipality),
		dists: make(map[int64]dataset.District),
		subs:  make(map[int64]dataset.Subdistrict),
	}
}

func (b *builder) addRow(row []string, cols columns) error {
	uf, err := cellInt(row, cols.uf)
	if err != nil {
		return fmt.Errorf("uf: %w", err)
	}
	meso, err := cellInt(row, cols.meso)
	if err != nil {
		return fmt.Errorf("mesorregiao: %w", err)
	}
	micro, err := cellInt(row, cols.micro)
	if err != nil {
		return fmt.Errorf("microrregiao: %w", err)
	}
	mun, err := cellInt(row, cols.munFull)
	if err != nil {
		return fmt.Errorf("municipio: %w", err)
	}
	dist, err := cellInt(row, cols.distFull)
	if err != nil {
		return fmt.Errorf("distrito: %w", err)
	}

	// Relative codes compose with the UF prefix into globally unique IDs:
	// UF(2) + meso(2) = 4 digits, UF(2) + micro(3) = 5 digits. Municipality,
	// district and subdistrict columns already carry the full code.
	mesoID := uf*100 + meso
	microID := uf*1000 + micro

	b.ufs[uf] = dataset.State{ID: uf, Name: cellString(row, cols.ufName)}
	b.mesos[mesoID] = dataset.Mesoregion{ID: mesoID, StateID: uf, Name: cellString(row, cols.mesoName)}
	b.mics[microID] = dataset.Microregion{ID: microID, MesoregionID: mesoID, StateID: uf, Name: cellString(row, cols.micName)}
	b.muns[mun] = dataset.Municipality{ID: mun, MicroregionID: microID, MesoregionID: mesoID, StateID: uf, Name: cellString(row, cols.munName)}
	b.dists[dist] = dataset.District{ID: dist, MunicipalityID: mun, MicroregionID: microID, MesoregionID: mesoID, StateID: uf, Name: cellString(row, cols.dstName)}

	// Rows without a subdistrict leave the cell empty or carry a zero
	// suffix in the full code.
	subCell := cellString(row, cols.subFull)
	if subCell == "" {
		return nil
	}
	sub, err := strconv.ParseInt(subCell, 10, 64)
	if err != nil {
		return fmt.Errorf("subdistrito: parse %q: %w", subCell, err)
	}
	if sub == 0 || sub%100 == 0 {
		return nil
	}
	b.subs[sub] = dataset.Subdistrict{
		ID:             sub,
		DistrictID:     dist,
		MunicipalityID: mun,
		MicroregionID:  microID,
		MesoregionID:   mesoID,
		StateID:        uf,
		Name:           cellString(row, cols.subName),
	}
	return nil
}

func (b *builder) dataset() *dataset.Dataset {
	ds := &dataset.Dataset{Year: b.year}
	for _, v := range b.ufs {
		ds.States = append(ds.States, v)
	}
	for _, v := range b.mesos {
		ds.Mesoregions = append(ds.Mesoregions, v)
	}
	for _, v := range b.mics {
		ds.Microregions = append(ds.Microregions, v)
	}
	for _, v := range b.muns {
		ds.Municipalities = append(ds.Municipalities, v)
	}
	for _, v := range b.dists {
		ds.Districts = append(ds.Districts, v)
	}
	for _, v := range b.subs {
		ds.Subdistricts = append(ds.Subdistricts, v)
	}
	ds.Sort()
	return ds
}

func cellString(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func cellInt(row []string, idx int) (int64, error) {
	s := cellString(row, idx)
	if s == "" {
		return 0, errors.New("empty cell")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", s, err)
	}
	return n, nil
}
