package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Lumos-Labs-HQ/synthgen/internal/config"
	"github.com/Lumos-Labs-HQ/synthgen/internal/entity"
	"github.com/Lumos-Labs-HQ/synthgen/internal/export"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func TestMain(m *testing.M) {
	color.Output = io.Discard
	color.NoColor = true
	os.Exit(m.Run())
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"plain", errors.New("boom"), ExitFailure},
		{"config", &config.ValidationError{Field: "format", Reason: "bad"}, ExitConfig},
		{"wrapped config", fmt.Errorf("load: %w", &config.ValidationError{Field: "seed"}), ExitConfig},
		{"invariant", &entity.InvariantViolation{Entity: "orders", Row: 1, Invariant: "total", Detail: "x"}, ExitInvariant},
		{"write", &export.WriteError{Entity: "products", Path: "p.csv", Err: os.ErrPermission}, ExitWrite},
		{"findings", fmt.Errorf("%w: 2 finding(s)", ErrFindings), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func parseGenerate(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "generate"}
	addGenerateFlags(c.Flags())
	if err := c.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v): %v", args, err)
	}
	return c
}

func TestApplyFlags(t *testing.T) {
	c := parseGenerate(t,
		"--seed", "7",
		"-o", "fixtures",
		"--as-of", "2024-06-30",
		"--null-marker", "NULL",
		"--count", "orders=12",
		"--count", "quality_inspections=3",
		"--sqlite",
	)

	cfg := config.DefaultConfig()
	if err := applyFlags(c, cfg); err != nil {
		t.Fatalf("applyFlags failed: %v", err)
	}

	if cfg.Seed != 7 || cfg.OutputDir != "fixtures" || cfg.AsOf != "2024-06-30" || cfg.NullMarker != "NULL" {
		t.Errorf("scalar flags not applied: %+v", cfg)
	}
	if cfg.Format != "sqlite" {
		t.Errorf("Format = %q, want sqlite", cfg.Format)
	}
	if cfg.Counts.Orders != 12 || cfg.Counts.QualityInspections != 3 {
		t.Errorf("counts not applied: %+v", cfg.Counts)
	}
	if cfg.Counts.Products != config.DefaultConfig().Counts.Products {
		t.Errorf("untouched count changed: %d", cfg.Counts.Products)
	}
}

func TestApplyFlagsLeavesUnsetValues(t *testing.T) {
	c := parseGenerate(t)
	cfg := config.DefaultConfig()
	if err := applyFlags(c, cfg); err != nil {
		t.Fatalf("applyFlags failed: %v", err)
	}
	if *cfg != *config.DefaultConfig() {
		t.Errorf("config changed without flags: %+v", cfg)
	}
}

func TestApplyFlagsRejectsConflicts(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"two shorthands", []string{"--csv", "--json"}},
		{"format and shorthand", []string{"--format", "csv", "--xlsx"}},
		{"unknown entity", []string{"--count", "invoices=3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := parseGenerate(t, tt.args...)
			err := applyFlags(c, config.DefaultConfig())
			if ExitCode(err) != ExitConfig {
				t.Errorf("applyFlags(%v) = %v, want a config error", tt.args, err)
			}
		})
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestGenerateThenCheck(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	_, err := run(t, "generate", "-q", "--out", dir, "--seed", "99",
		"--count", "products=10",
		"--count", "recipes=4",
		"--count", "customers=10",
		"--count", "orders=8",
		"--count", "shipments=6",
		"--count", "returns=4",
		"--count", "waste=5",
		"--count", "quality_inspections=6",
	)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	for _, s := range entity.Schemas() {
		if _, err := os.Stat(filepath.Join(dir, s.Name+".csv")); err != nil {
			t.Errorf("missing artifact %s: %v", s.Name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, export.ManifestFile)); err != nil {
		t.Errorf("missing manifest: %v", err)
	}

	if _, err := run(t, "check", "-q", "--dir", dir); err != nil {
		t.Fatalf("check on a fresh dataset failed: %v", err)
	}

	if err := os.Remove(filepath.Join(dir, "orders.csv")); err != nil {
		t.Fatal(err)
	}
	_, err = run(t, "check", "-q", "--dir", dir)
	if !errors.Is(err, ErrFindings) {
		t.Errorf("check after removing orders.csv = %v, want ErrFindings", err)
	}
}

func TestSchemaCommand(t *testing.T) {
	out, err := run(t, "schema", entity.OrderLines)
	if err != nil {
		t.Fatalf("schema failed: %v", err)
	}
	if !strings.HasPrefix(out, entity.OrderLines+"\n") {
		t.Errorf("output should start with the artifact name, got %q", out)
	}
	for _, c := range entity.OrderLineSchema.Columns {
		if !strings.Contains(out, c.Name) {
			t.Errorf("output missing column %s", c.Name)
		}
	}

	if _, err := run(t, "schema", "invoices"); err == nil {
		t.Error("expected an error for an unknown entity")
	}
}
