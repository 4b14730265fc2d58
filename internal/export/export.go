// Package export writes generated tables to disk. Every run is staged in a
// scratch directory next to the final artifacts and promoted only once all
// artifacts and the manifest are written.
package export

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/synthgen/internal/dataset"
)

// Writer serializes one table to one file.
type Writer interface {
	Ext() string
	Write(ctx context.Context, path string, tbl *dataset.Table) error
}

// WriteError is an I/O failure while producing one artifact.
type WriteError struct {
	Entity string
	Path   string
	Err    error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s to %s: %v", e.Entity, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// WriterFor returns the writer for format. nullMarker is used by text
// formats that have no native null.
func WriterFor(format, nullMarker string) (Writer, error) {
	switch format {
	case "csv":
		return &csvWriter{null: nullMarker}, nil
	case "json":
		return &jsonWriter{}, nil
	case "sqlite":
		return newSQLiteWriter(), nil
	case "xlsx":
		return &xlsxWriter{null: nullMarker}, nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

type Options struct {
	Dir        string
	Format     string
	NullMarker string
}

// Progress is called before each artifact is written.
type Progress func(name string, rows int)

// PerformExport writes every table plus the manifest. On any failure the
// staging directory is removed and no artifact of this run is promoted.
func PerformExport(ctx context.Context, opts Options, tables []*dataset.Table, m *Manifest, progress Progress) (err error) {
	w, err := WriterFor(opts.Format, opts.NullMarker)
	if err != nil {
		return err
	}

	stage, err := NewStage(opts.Dir)
	if err != nil {
		return &WriteError{Entity: "staging", Path: opts.Dir, Err: err}
	}
	defer func() {
		if err != nil {
			stage.Discard()
		}
	}()

	m.Format = opts.Format
	m.NullMarker = opts.NullMarker
	m.Artifacts = m.Artifacts[:0]

	for _, tbl := range tables {
		if err := ctx.Err(); err != nil {
			return err
		}
		if progress != nil {
			progress(tbl.Name, len(tbl.Rows))
		}
		file := tbl.Name + w.Ext()
		path := stage.Path(file)
		if err := w.Write(ctx, path, tbl); err != nil {
			return &WriteError{Entity: tbl.Name, Path: path, Err: err}
		}
		m.Artifacts = append(m.Artifacts, Artifact{
			Name:    tbl.Name,
			File:    file,
			Rows:    len(tbl.Rows),
			Columns: tbl.Names(),
		})
	}

	path := stage.Path(ManifestFile)
	if err := WriteManifest(path, m); err != nil {
		return &WriteError{Entity: "manifest", Path: path, Err: err}
	}
	return stage.Commit()
}
