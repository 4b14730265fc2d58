package export

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/synthgen/internal/dataset"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

type xlsxWriter struct {
	null string
}

func (w *xlsxWriter) Ext() string { return ".xlsx" }

func (w *xlsxWriter) Write(ctx context.Context, path string, tbl *dataset.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, len(tbl.Columns))
	for i, name := range tbl.Names() {
		header[i] = name
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for r, row := range tbl.Rows {
		if r%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = w.cell(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r, err)
		}
	}

	return f.SaveAs(path)
}

func (w *xlsxWriter) cell(v dataset.Value) any {
	if v.IsNull() {
		return w.null
	}
	switch v.Kind() {
	case dataset.KindDecimal:
		return v.Number().InexactFloat64()
	case dataset.KindInt, dataset.KindBool:
		return v.Native()
	default:
		s, _ := v.Text()
		return s
	}
}
