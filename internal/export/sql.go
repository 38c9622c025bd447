// SPDX-License-Identifier: MIT

package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/geodatabr/geodatabr/internal/dataset"
)

// sqlDialect captures the differences between the portable dump and the
// SQLite flavor: SQLite wants inline constraints and doubled-quote escaping,
// the portable dump attaches constraints lazily via ALTER TABLE and escapes
// quotes with a backslash.
type sqlDialect struct {
	lazyConstraints bool
	createIndexes   bool
	quoteEscape     string
}

var (
	standardSQL = sqlDialect{lazyConstraints: true, createIndexes: true, quoteEscape: `\'`}
	sqliteSQL   = sqlDialect{lazyConstraints: false, createIndexes: true, quoteEscape: "''"}
)

// levelType maps each entity level to the SQL integer type wide enough for
// its ID (2-digit UF codes up to 11-digit subdistrict codes).
var levelType = map[string]string{
	"uf":           "SMALLINT",
	"mesorregiao":  "SMALLINT",
	"microrregiao": "INTEGER",
	"municipio":    "INTEGER",
	"distrito":     "INTEGER",
	"subdistrito":  "BIGINT",
}

func columnType(table, column string) string {
	if column == "nome" {
		if table == "uf" {
			return "VARCHAR(32)"
		}
		return "VARCHAR(64)"
	}
	level := table
	if ref, ok := strings.CutPrefix(column, "id_"); ok {
		level = ref
	}
	return levelType[level]
}

// foreignRefs returns the referenced tables of a table's id_* columns, in
// column order.
func foreignRefs(t dataset.TableSpec) []string {
	var refs []string
	for _, col := range t.Columns {
		if ref, ok := strings.CutPrefix(col, "id_"); ok {
			refs = append(refs, ref)
		}
	}
	return refs
}

type sqlWriter struct {
	b      strings.Builder
	minify bool
}

func (w *sqlWriter) comment(format string, args ...any) {
	if w.minify {
		return
	}
	fmt.Fprintf(&w.b, "\n--\n-- "+format+"\n--\n", args...)
}

func (w *sqlWriter) stmt(s string) {
	if w.minify {
		s = strings.Join(strings.Fields(s), " ")
	}
	w.b.WriteString(s)
	w.b.WriteString("\n")
}

func createTable(t dataset.TableSpec, d sqlDialect) string {
	lines := make([]string, 0, len(t.Columns)+len(t.Columns))
	for _, col := range t.Columns {
		lines = append(lines, fmt.Sprintf("  %s %s NOT NULL", col, columnType(t.Name, col)))
	}
	if !d.lazyConstraints {
		lines = append(lines, fmt.Sprintf("  CONSTRAINT pk_%s\n    PRIMARY KEY (id)", t.Name))
		for _, ref := range foreignRefs(t) {
			lines = append(lines, fmt.Sprintf("  CONSTRAINT fk_%s_%s\n    FOREIGN KEY (id_%s)\n      REFERENCES %s(id)", t.Name, ref, ref, ref))
		}
	}
	return fmt.Sprintf("CREATE TABLE %s (\n%s\n);", t.Name, strings.Join(lines, ",\n"))
}

func lazyConstraints(t dataset.TableSpec) []string {
	stmts := []string{
		fmt.Sprintf("ALTER TABLE %s\n  ADD CONSTRAINT pk_%s\n    PRIMARY KEY (id);", t.Name, t.Name),
	}
	for _, ref := range foreignRefs(t) {
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s\n  ADD CONSTRAINT fk_%s_%s\n    FOREIGN KEY (id_%s)\n      REFERENCES %s(id);", t.Name, t.Name, ref, ref, ref))
	}
	return stmts
}

func indexes(t dataset.TableSpec) []string {
	var stmts []string
	for _, ref := range foreignRefs(t) {
		stmts = append(stmts, fmt.Sprintf("CREATE INDEX fk_%s_%s ON %s (id_%s);", t.Name, ref, t.Name, ref))
	}
	return stmts
}

func insert(t dataset.TableSpec, row []any, d sqlDialect) string {
	values := make([]string, len(row))
	for i, v := range row {
		switch x := v.(type) {
		case int64:
			values[i] = strconv.FormatInt(x, 10)
		case string:
			values[i] = "'" + strings.ReplaceAll(x, "'", d.quoteEscape) + "'"
		default:
			values[i] = fmt.Sprint(x)
		}
	}
	return fmt.Sprintf("INSERT INTO %s VALUES (%s);", t.Name, strings.Join(values, ", "))
}

// dumpSQL renders the dataset as an SQL script in the given dialect.
func dumpSQL(ds *dataset.Dataset, d sqlDialect, minify bool) []byte {
	w := &sqlWriter{minify: minify}
	for _, t := range dataset.Tables {
		rows := ds.Rows(t.Name)
		if len(rows) == 0 {
			continue
		}

		w.comment("Structure for table %q", t.Name)
		w.stmt(createTable(t, d))

		w.comment("Data for table %q", t.Name)
		for _, row := range rows {
			w.stmt(insert(t, row, d))
		}

		if d.lazyConstraints {
			w.comment("Constraints for table %q", t.Name)
			for _, s := range lazyConstraints(t) {
				w.stmt(s)
			}
		}

		if d.createIndexes {
			refs := foreignRefs(t)
			if len(refs) > 0 {
				w.comment("Indexes for table %q", t.Name)
				for _, s := range indexes(t) {
					w.stmt(s)
				}
			}
		}
	}
	return []byte(strings.TrimLeft(w.b.String(), "\n"))
}

type sqlExporter struct{}

func (sqlExporter) Format() string      { return "sql" }
func (sqlExporter) ContentType() string { return "application/sql" }

func (e sqlExporter) Export(ds *dataset.Dataset, opts Options) ([]File, error) {
	return []File{{Name: ds.Name() + ".sql", Data: dumpSQL(ds, standardSQL, opts.Minify)}}, nil
}
