package export

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Lumos-Labs-HQ/synthgen/internal/dataset"
)

// jsonWriter emits an array of objects whose keys keep schema order, which
// rules out marshalling maps.
type jsonWriter struct{}

func (w *jsonWriter) Ext() string { return ".json" }

func (w *jsonWriter) Write(_ context.Context, path string, tbl *dataset.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create JSON file for %s: %w", tbl.Name, err)
	}
	defer file.Close()

	keys := make([][]byte, len(tbl.Columns))
	for i, name := range tbl.Names() {
		if keys[i], err = json.Marshal(name); err != nil {
			return err
		}
	}

	out := bufio.NewWriter(file)
	out.WriteString("[")
	for r, row := range tbl.Rows {
		if r > 0 {
			out.WriteString(",")
		}
		out.WriteString("\n  {")
		for i, v := range row {
			if i > 0 {
				out.WriteString(", ")
			}
			val, err := json.Marshal(v.Native())
			if err != nil {
				return fmt.Errorf("failed to marshal %s.%s: %w", tbl.Name, tbl.Columns[i].Name, err)
			}
			out.Write(keys[i])
			out.WriteString(": ")
			out.Write(val)
		}
		out.WriteString("}")
	}
	if len(tbl.Rows) > 0 {
		out.WriteString("\n")
	}
	out.WriteString("]\n")

	if err := out.Flush(); err != nil {
		return err
	}
	return file.Close()
}
