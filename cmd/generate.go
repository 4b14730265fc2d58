package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/Lumos-Labs-HQ/synthgen/internal/config"
	"github.com/Lumos-Labs-HQ/synthgen/internal/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	genSeed       int64
	genOut        string
	genFormat     string
	genAsOf       string
	genNullMarker string
	genCounts     map[string]int
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate the full synthetic dataset",
	Long: `
Generate every table in dependency order and write one artifact per table,
plus a manifest.yaml describing the run. Artifacts are staged and only
replace a previous run's files once every one of them has been written.

Examples:
  synthgen generate
  synthgen generate --seed 7 --out fixtures
  synthgen generate --count orders=500 --count customers=100
  synthgen generate --sqlite`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		s, err := seeder.NewSeeder(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		res, err := s.Seed(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintln(color.Output)
		for _, a := range res.Manifest.Artifacts {
			color.White("  %-22s %8d rows  %s", a.Name, a.Rows, a.File)
		}
		color.Cyan("📦 Run %s written to %s", res.Manifest.RunID, res.Dir)
		return nil
	},
}

func init() {
	addGenerateFlags(generateCmd.Flags())
}

func addGenerateFlags(f *pflag.FlagSet) {
	f.Int64Var(&genSeed, "seed", 0, "Master random seed (default from config, 42)")
	f.StringVarP(&genOut, "out", "o", "", "Output directory (default from config, sample_data)")
	f.StringVar(&genFormat, "format", "", "Artifact format: csv, json, sqlite or xlsx")
	f.StringVar(&genAsOf, "as-of", "", "Reference date (YYYY-MM-DD) all relative dates are computed from")
	f.StringVar(&genNullMarker, "null-marker", "", `Text written for absent values (default \N)`)
	f.StringToIntVar(&genCounts, "count", nil, "Row count override, e.g. --count orders=500 (repeatable)")

	f.Bool("csv", false, "Shorthand for --format csv")
	f.Bool("json", false, "Shorthand for --format json")
	f.Bool("sqlite", false, "Shorthand for --format sqlite")
	f.Bool("xlsx", false, "Shorthand for --format xlsx")
}

// applyFlags layers explicitly set command flags over the loaded config.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Lookup("seed") == nil {
		return nil
	}

	if flags.Changed("seed") {
		cfg.Seed = genSeed
	}
	if flags.Changed("out") {
		cfg.OutputDir = genOut
	}
	if flags.Changed("as-of") {
		cfg.AsOf = genAsOf
	}
	if flags.Changed("null-marker") {
		cfg.NullMarker = genNullMarker
	}

	formats := 0
	if flags.Changed("format") {
		cfg.Format = genFormat
		formats++
	}
	for _, name := range config.Formats {
		if on, _ := flags.GetBool(name); on {
			cfg.Format = name
			formats++
		}
	}
	if formats > 1 {
		return &config.ValidationError{Field: "format", Reason: "please specify only one output format"}
	}

	if flags.Changed("count") {
		for name, n := range genCounts {
			if err := cfg.Counts.Set(name, n); err != nil {
				return err
			}
		}
	}
	return nil
}
