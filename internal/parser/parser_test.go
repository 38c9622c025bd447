// SPDX-License-Identifier: MIT

package parser_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/geodatabr/geodatabr/internal/dataset"
	"github.com/geodatabr/geodatabr/internal/parser"
)

// dtbHeader mirrors the column layout of the published DTB spreadsheets.
var dtbHeader = []any{
	"UF", "Nome_UF",
	"Mesorregião Geográfica", "Nome_Mesorregião",
	"Microrregião Geográfica", "Nome_Microrregião",
	"Código Município Completo", "Nome_Município",
	"Código de Distrito Completo", "Nome_Distrito",
	"Código de Subdistrito Completo", "Nome_Subdistrito",
}

func sheetBytes(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseBuildsDataset(t *testing.T) {
	rows := [][]any{
		dtbHeader,
		// Subdistrict code ending in 00 marks a district without subdistricts.
		{"11", "Rondônia", "6", "Leste Rondoniense", "6", "Cacoal",
			"1100049", "Cacoal", "110004905", "Cacoal", "11000490500", ""},
		{"35", "São Paulo", "15", "Metropolitana de São Paulo", "61", "São Paulo",
			"3550308", "São Paulo", "355030801", "Água Rasa", "35503080151", "Água Rasa"},
		{"35", "São Paulo", "15", "Metropolitana de São Paulo", "61", "São Paulo",
			"3550308", "São Paulo", "355030801", "Água Rasa", "35503080152", "Bela Vista"},
	}

	ds, err := parser.Parse(bytes.NewReader(sheetBytes(t, rows)), 2016)
	require.NoError(t, err)

	assert.Equal(t, 2016, ds.Year)
	require.Len(t, ds.States, 2)
	assert.Equal(t, dataset.State{ID: 11, Name: "Rondônia"}, ds.States[0])
	assert.Equal(t, dataset.State{ID: 35, Name: "São Paulo"}, ds.States[1])

	// Relative codes compose with the UF prefix.
	require.Len(t, ds.Mesoregions, 2)
	assert.Equal(t, int64(1106), ds.Mesoregions[0].ID)
	assert.Equal(t, int64(3515), ds.Mesoregions[1].ID)
	require.Len(t, ds.Microregions, 2)
	assert.Equal(t, int64(11006), ds.Microregions[0].ID)
	assert.Equal(t, int64(35061), ds.Microregions[1].ID)

	require.Len(t, ds.Municipalities, 2)
	assert.Equal(t, dataset.Municipality{
		ID: 3550308, MicroregionID: 35061, MesoregionID: 3515, StateID: 35, Name: "São Paulo",
	}, ds.Municipalities[1])

	require.Len(t, ds.Districts, 2)
	assert.Equal(t, int64(355030801), ds.Districts[1].ID)
	assert.Equal(t, int64(3550308), ds.Districts[1].MunicipalityID)

	// The zero-suffixed subdistrict row is skipped; both São Paulo rows kept.
	require.Len(t, ds.Subdistricts, 2)
	assert.Equal(t, int64(35503080151), ds.Subdistricts[0].ID)
	assert.Equal(t, "Água Rasa", ds.Subdistricts[0].Name)
	assert.Equal(t, int64(35503080152), ds.Subdistricts[1].ID)

	require.NoError(t, ds.Validate())
}

func TestParseDeduplicatesAncestors(t *testing.T) {
	rows := [][]any{
		dtbHeader,
		{"35", "São Paulo", "15", "Metropolitana de São Paulo", "61", "São Paulo",
			"3550308", "São Paulo", "355030801", "São Paulo", "35503080100", ""},
		{"35", "São Paulo", "15", "Metropolitana de São Paulo", "61", "São Paulo",
			"3552502", "Santana de Parnaíba", "355250205", "Santana de Parnaíba", "35525020500", ""},
	}

	ds, err := parser.Parse(bytes.NewReader(sheetBytes(t, rows)), 2016)
	require.NoError(t, err)
	assert.Len(t, ds.States, 1)
	assert.Len(t, ds.Mesoregions, 1)
	assert.Len(t, ds.Microregions, 1)
	assert.Len(t, ds.Municipalities, 2)
}

func TestParseSkipsPreamble(t *testing.T) {
	rows := [][]any{
		{"DIVISÃO TERRITORIAL BRASILEIRA - 2016"},
		{},
		dtbHeader,
		{"11", "Rondônia", "6", "Leste Rondoniense", "6", "Cacoal",
			"1100049", "Cacoal", "110004905", "Cacoal", "11000490500", ""},
	}

	ds, err := parser.Parse(bytes.NewReader(sheetBytes(t, rows)), 2016)
	require.NoError(t, err)
	assert.Len(t, ds.Municipalities, 1)
}

func TestParseHeaderVariants(t *testing.T) {
	header := []any{
		"UF", "Nome_UF",
		"Mesorregião", "Nome_Mesorregião",
		"Microrregião", "Nome_Microrregião",
		"Código de Município Completo", "Nome_Município",
		"Código Distrito Completo", "Nome_Distrito",
		"Código Subdistrito Completo", "Nome_Subdistrito",
	}
	rows := [][]any{
		header,
		{"11", "Rondônia", "6", "Leste Rondoniense", "6", "Cacoal",
			"1100049", "Cacoal", "110004905", "Cacoal", "11000490500", ""},
	}

	ds, err := parser.Parse(bytes.NewReader(sheetBytes(t, rows)), 2014)
	require.NoError(t, err)
	assert.Equal(t, "dtb_2014", ds.Name())
	assert.Len(t, ds.Districts, 1)
}

func TestParseMissingColumn(t *testing.T) {
	header := make([]any, len(dtbHeader))
	copy(header, dtbHeader)
	header[6] = "Algo Estranho" // drop the municipality code column

	_, err := parser.Parse(bytes.NewReader(sheetBytes(t, [][]any{
		header,
		{"11", "Rondônia", "6", "Leste Rondoniense", "6", "Cacoal"},
	})), 2016)
	require.Error(t, err)
	assert.ErrorIs(t, err, parser.ErrMissingColumn)
}

func TestParseNoHeader(t *testing.T) {
	_, err := parser.Parse(bytes.NewReader(sheetBytes(t, [][]any{
		{"nothing", "useful", "here"},
	})), 2016)
	require.Error(t, err)
	assert.ErrorIs(t, err, parser.ErrNoHeader)
}

func TestParseEmptySheet(t *testing.T) {
	_, err := parser.Parse(bytes.NewReader(sheetBytes(t, [][]any{dtbHeader})), 2016)
	require.Error(t, err)
	assert.ErrorIs(t, err, parser.ErrEmptySheet)
}

func TestParseSubdistrictCell(t *testing.T) {
	base := []any{"11", "Rondônia", "6", "Leste Rondoniense", "6", "Cacoal",
		"1100049", "Cacoal", "110004905", "Cacoal"}

	row := func(sub, name string) []any {
		return append(append([]any{}, base...), sub, name)
	}

	t.Run("empty cell skips the record", func(t *testing.T) {
		ds, err := parser.Parse(bytes.NewReader(sheetBytes(t, [][]any{
			dtbHeader,
			row("", ""),
		})), 2016)
		require.NoError(t, err)
		assert.Empty(t, ds.Subdistricts)
		assert.Len(t, ds.Districts, 1)
	})

	t.Run("malformed code is an error", func(t *testing.T) {
		_, err := parser.Parse(bytes.NewReader(sheetBytes(t, [][]any{
			dtbHeader,
			row("abc", "Quebrado"),
		})), 2016)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "subdistrito")
	})
}

func TestParseBadNumericCell(t *testing.T) {
	rows := [][]any{
		dtbHeader,
		{"xx", "Rondônia", "6", "Leste Rondoniense", "6", "Cacoal",
			"1100049", "Cacoal", "110004905", "Cacoal", "11000490500", ""},
	}
	_, err := parser.Parse(bytes.NewReader(sheetBytes(t, rows)), 2016)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}
