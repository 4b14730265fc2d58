package cmd

import (
	"errors"
	"fmt"

	"github.com/Lumos-Labs-HQ/synthgen/internal/audit"
	"github.com/Lumos-Labs-HQ/synthgen/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var checkDir string

// ErrFindings is returned by check when the dataset has problems.
var ErrFindings = errors.New("dataset check found problems")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify a generated CSV dataset",
	Long: `
Re-read a CSV dataset and verify that every artifact listed in its manifest
exists with the declared header and row count, that every reference column
resolves, and that order totals match their lines.

Examples:
  synthgen check
  synthgen check --dir fixtures`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := checkDir
		if dir == "" {
			if configErr != nil {
				return configErr
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			dir = cfg.OutputDir
		}

		color.Cyan("🔍 Checking dataset in %s...", dir)
		report, err := audit.Check(dir)
		if err != nil {
			return err
		}

		for _, name := range sortedKeys(report.Rows) {
			color.White("  %-22s %8d rows", name, report.Rows[name])
		}
		fmt.Fprintln(color.Output)

		if report.OK() {
			color.Green("✅ Dataset %s passed all checks", report.RunID)
			return nil
		}
		for _, f := range report.Findings {
			color.Red("  ❌ %s", f)
		}
		return fmt.Errorf("%w: %d finding(s)", ErrFindings, len(report.Findings))
	},
}

func init() {
	checkCmd.Flags().StringVarP(&checkDir, "dir", "d", "", "Dataset directory (default from config, sample_data)")
}
