// SPDX-License-Identifier: MIT

package export_test

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geodatabr/geodatabr/internal/export"
	"github.com/geodatabr/geodatabr/internal/testutil"
)

func TestCSVOneFilePerTable(t *testing.T) {
	e, err := export.Lookup("csv")
	require.NoError(t, err)

	files, err := e.Export(testutil.FixtureDataset(), export.Options{})
	require.NoError(t, err)

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{
		"estados.csv", "mesorregioes.csv", "microrregioes.csv",
		"municipios.csv", "distritos.csv", "subdistritos.csv",
	}, names)
}

func TestCSVContent(t *testing.T) {
	e, err := export.Lookup("csv")
	require.NoError(t, err)

	files, err := e.Export(testutil.FixtureDataset(), export.Options{})
	require.NoError(t, err)

	var estados string
	for _, f := range files {
		if f.Name == "estados.csv" {
			estados = string(f.Data)
		}
	}
	require.NotEmpty(t, estados)

	records, err := csv.NewReader(strings.NewReader(estados)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"id", "nome"}, records[0])
	assert.Equal(t, []string{"11", "Rondônia"}, records[1])
	assert.Equal(t, []string{"35", "São Paulo"}, records[2])
}

func TestTSVUsesTabs(t *testing.T) {
	e, err := export.Lookup("tsv")
	require.NoError(t, err)

	files, err := e.Export(testutil.FixtureDataset(), export.Options{})
	require.NoError(t, err)
	require.NotEmpty(t, files)

	assert.Equal(t, "estados.tsv", files[0].Name)
	lines := strings.Split(strings.TrimSpace(string(files[0].Data)), "\n")
	assert.Equal(t, "id\tnome", lines[0])
	assert.Contains(t, lines[1], "11\tRondônia")
}
