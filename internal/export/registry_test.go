// SPDX-License-Identifier: MIT

package export_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geodatabr/geodatabr/internal/export"
)

func TestFormatsRegistry(t *testing.T) {
	want := []string{"csv", "json", "msgpack", "php", "plist", "sql", "sqlite3", "tsv", "ubjson", "xlsx", "xml", "yaml"}
	assert.Equal(t, want, export.Formats())
}

func TestLookup(t *testing.T) {
	e, err := export.Lookup("json")
	require.NoError(t, err)
	assert.Equal(t, "json", e.Format())
	assert.Equal(t, "application/json", e.ContentType())

	_, err = export.Lookup("parquet")
	require.Error(t, err)
	assert.ErrorIs(t, err, export.ErrUnknownFormat)
}
