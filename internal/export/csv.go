package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/Lumos-Labs-HQ/synthgen/internal/dataset"
)

type csvWriter struct {
	null string
}

func (w *csvWriter) Ext() string { return ".csv" }

func (w *csvWriter) Write(_ context.Context, path string, tbl *dataset.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file for %s: %w", tbl.Name, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(tbl.Names()); err != nil {
		return err
	}

	record := make([]string, len(tbl.Columns))
	for _, row := range tbl.Rows {
		for i, v := range row {
			s, ok := v.Text()
			if !ok {
				s = w.null
			}
			record[i] = s
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return file.Close()
}
