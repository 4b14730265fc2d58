package export

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/synthgen/internal/dataset"
	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

var typeMap = map[dataset.Kind]string{
	dataset.KindString:   "TEXT",
	dataset.KindInt:      "INTEGER",
	dataset.KindDecimal:  "NUMERIC",
	dataset.KindBool:     "INTEGER",
	dataset.KindDate:     "TEXT",
	dataset.KindDateTime: "TEXT",
	dataset.KindTime:     "TEXT",
}

// sqliteWriter writes one database file per artifact, holding one table
// named after the artifact.
type sqliteWriter struct {
	qb squirrel.StatementBuilderType
}

func newSQLiteWriter() *sqliteWriter {
	return &sqliteWriter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func (w *sqliteWriter) Ext() string { return ".sqlite" }

func (w *sqliteWriter) Write(ctx context.Context, path string, tbl *dataset.Table) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to create SQLite database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, createTableSQL(tbl.Schema)); err != nil {
		return fmt.Errorf("failed to create table %s: %w", tbl.Name, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	names := tbl.Names()
	values := make([]any, len(names))
	for i, row := range tbl.Rows {
		for j, v := range row {
			values[j] = v.Native()
		}
		query, args, err := w.qb.Insert(tbl.Name).Columns(names...).Values(values...).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert for %s: %w", tbl.Name, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert row %d into %s: %w", i, tbl.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", tbl.Name, err)
	}
	return db.Close()
}

func createTableSQL(s dataset.Schema) string {
	defs := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		def := fmt.Sprintf("%s %s", c.Name, typeMap[c.Kind])
		if !c.Nullable {
			def += " NOT NULL"
		}
		if i == 0 {
			def += " PRIMARY KEY"
		}
		defs[i] = def
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", s.Name, strings.Join(defs, ", "))
}
