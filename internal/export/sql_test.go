// SPDX-License-Identifier: MIT

package export_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geodatabr/geodatabr/internal/export"
)

func TestSQLDump(t *testing.T) {
	file := exportOne(t, "sql", export.Options{})
	sql := string(file.Data)

	assert.Equal(t, "dtb_2016.sql", file.Name)

	// Structure
	assert.Contains(t, sql, "CREATE TABLE uf (")
	assert.Contains(t, sql, "  id SMALLINT NOT NULL")
	assert.Contains(t, sql, "CREATE TABLE subdistrito (")
	assert.Contains(t, sql, "  id BIGINT NOT NULL")
	assert.Contains(t, sql, "  nome VARCHAR(32) NOT NULL")
	assert.Contains(t, sql, "  nome VARCHAR(64) NOT NULL")

	// Data, quoted and escaped
	assert.Contains(t, sql, "INSERT INTO uf VALUES (11, 'Rondônia');")
	assert.Contains(t, sql, `'Bela Vista d\'Oeste'`)

	// Lazy constraints in the portable dialect
	assert.Contains(t, sql, "ALTER TABLE municipio\n  ADD CONSTRAINT pk_municipio\n    PRIMARY KEY (id);")
	assert.Contains(t, sql, "ADD CONSTRAINT fk_municipio_microrregiao")

	// Indexes
	assert.Contains(t, sql, "CREATE INDEX fk_mesorregiao_uf ON mesorregiao (id_uf);")
	assert.Contains(t, sql, "CREATE INDEX fk_subdistrito_distrito ON subdistrito (id_distrito);")

	// Comment banners
	assert.Contains(t, sql, `-- Structure for table "uf"`)
	assert.Contains(t, sql, `-- Data for table "municipio"`)
}

func TestSQLDumpMinified(t *testing.T) {
	file := exportOne(t, "sql", export.Options{Minify: true})
	sql := string(file.Data)

	assert.NotContains(t, sql, "--")
	assert.Contains(t, sql, "CREATE TABLE uf ( id SMALLINT NOT NULL, nome VARCHAR(32) NOT NULL );")

	// One statement per line, nothing pretty-printed.
	for _, line := range strings.Split(strings.TrimSpace(sql), "\n") {
		require.True(t, strings.HasSuffix(line, ";"), "line %q is not a complete statement", line)
	}
}
