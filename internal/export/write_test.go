// SPDX-License-Identifier: MIT

package export_test

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geodatabr/geodatabr/internal/export"
)

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dist")
	files := []export.File{
		{Name: "a.json", Data: []byte(`{"ok":true}`)},
		{Name: "b.csv", Data: []byte("id,nome\n")},
	}

	require.NoError(t, export.WriteFiles(context.Background(), dir, files))

	for _, f := range files {
		got, err := os.ReadFile(filepath.Join(dir, f.Name))
		require.NoError(t, err)
		assert.Equal(t, f.Data, got)
	}

	// Re-running replaces files in place.
	files[0].Data = []byte(`{"ok":false}`)
	require.NoError(t, export.WriteFiles(context.Background(), dir, files[:1]))
	got, err := os.ReadFile(filepath.Join(dir, "a.json"))
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"ok":false}`), got)
}

func TestZipBundle(t *testing.T) {
	bundle, err := export.ZipBundle("dtb_csv", []export.File{
		{Name: "estados.csv", Data: []byte("id,nome\n11,Rondônia\n")},
		{Name: "municipios.csv", Data: []byte("id,nome\n")},
	})
	require.NoError(t, err)
	assert.Equal(t, "dtb_csv.zip", bundle.Name)

	zr, err := zip.NewReader(bytes.NewReader(bundle.Data), int64(len(bundle.Data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	assert.Equal(t, "estados.csv", zr.File[0].Name)
}
