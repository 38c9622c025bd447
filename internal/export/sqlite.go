// SPDX-License-Identifier: MIT

package export

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver (pure Go, no CGO)

	"github.com/geodatabr/geodatabr/internal/dataset"
)

type sqliteExporter struct{}

func (sqliteExporter) Format() string      { return "sqlite3" }
func (sqliteExporter) ContentType() string { return "application/vnd.sqlite3" }

// Export materializes the SQLite-dialect schema into a database file and
// returns its bytes. The database is built in a scratch directory so a failed
// export never leaves a partial file behind.
func (e sqliteExporter) Export(ds *dataset.Dataset, _ Options) ([]File, error) {
	workDir, err := os.MkdirTemp("", "geodatabr-sqlite-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	dbPath := filepath.Join(workDir, ds.Name()+".sqlite3")
	if err := buildSQLiteFile(ds, dbPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(dbPath) // #nosec G304 -- path is under our scratch dir
	if err != nil {
		return nil, fmt.Errorf("read database file: %w", err)
	}
	return []File{{Name: ds.Name() + ".sqlite3", Data: data}}, nil
}

func buildSQLiteFile(ds *dataset.Dataset, dbPath string) error {
	db, err := sql.Open("sqlite", "file:"+dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, t := range dataset.Tables {
		rows := ds.Rows(t.Name)
		if len(rows) == 0 {
			continue
		}

		if _, err := tx.Exec(createTable(t, sqliteSQL)); err != nil {
			return fmt.Errorf("create table %s: %w", t.Name, err)
		}

		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.Columns)), ", ")
		stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s VALUES (%s)", t.Name, placeholders)) //nolint:gosec // table name from static spec
		if err != nil {
			return fmt.Errorf("prepare insert for %s: %w", t.Name, err)
		}
		for _, row := range rows {
			if _, err := stmt.Exec(row...); err != nil {
				_ = stmt.Close()
				return fmt.Errorf("insert into %s: %w", t.Name, err)
			}
		}
		if err := stmt.Close(); err != nil {
			return fmt.Errorf("close insert statement for %s: %w", t.Name, err)
		}

		for _, idx := range indexes(t) {
			if _, err := tx.Exec(idx); err != nil {
				return fmt.Errorf("create index on %s: %w", t.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
