package cmd

import (
	"fmt"
	"sort"

	"github.com/Lumos-Labs-HQ/synthgen/internal/dataset"
	"github.com/Lumos-Labs-HQ/synthgen/internal/entity"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema [entity]",
	Short: "Print the declared column order of each artifact",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schemas := entity.Schemas()
		if len(args) == 1 {
			s, ok := entity.SchemaFor(args[0])
			if !ok {
				return fmt.Errorf("unknown entity %q", args[0])
			}
			schemas = []dataset.Schema{s}
		}

		out := cmd.OutOrStdout()
		for i, s := range schemas {
			if i > 0 {
				fmt.Fprintln(out)
			}
			color.New(color.FgCyan, color.Bold).Fprintf(out, "%s\n", s.Name)
			for j, c := range s.Columns {
				null := ""
				if c.Nullable {
					null = " (nullable)"
				}
				fmt.Fprintf(out, "  %2d  %-32s %s%s\n", j+1, c.Name, c.Kind, null)
			}
		}
		return nil
	},
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
