package seeder

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/synthgen/internal/config"
	"github.com/Lumos-Labs-HQ/synthgen/internal/dataset"
	"github.com/Lumos-Labs-HQ/synthgen/internal/entity"
	"github.com/Lumos-Labs-HQ/synthgen/internal/export"
	"github.com/Lumos-Labs-HQ/synthgen/internal/idgen"
	"github.com/Lumos-Labs-HQ/synthgen/internal/random"
	"github.com/fatih/color"
)

// Seeder runs the generation plan. One Seeder owns the run's random source,
// identifier counters and pools; it is not safe for concurrent use.
type Seeder struct {
	config *config.Config
	asOf   time.Time
	plan   []Step
	src    *random.Source
	ids    *idgen.Allocator
	pools  *Pools
}

func NewSeeder(cfg *config.Config) (*Seeder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	asOf, err := cfg.AsOfDate()
	if err != nil {
		return nil, err
	}
	if err := entity.ValidateTables(); err != nil {
		return nil, fmt.Errorf("lookup table validation failed: %w", err)
	}
	plan := Plan()
	if err := validatePlan(plan); err != nil {
		return nil, fmt.Errorf("generation plan validation failed: %w", err)
	}

	return &Seeder{
		config: cfg,
		asOf:   asOf,
		plan:   plan,
		src:    random.New(cfg.Seed),
		ids:    idgen.NewAllocator(),
		pools:  newPools(),
	}, nil
}

func (s *Seeder) counts() map[string]int {
	out := make(map[string]int)
	for _, e := range s.config.Counts.Entries() {
		out[e.Name] = e.Count
	}
	return out
}

func (s *Seeder) reset() {
	s.src.Seed(s.config.Seed)
	s.ids.Reset()
	s.pools = newPools()
}

// Generate builds every table in memory. Nothing touches the disk.
func (s *Seeder) Generate(ctx context.Context) ([]*dataset.Table, error) {
	s.reset()
	env := entity.NewEnv(s.src, s.ids, s.asOf)
	counts := s.counts()

	names := make([]string, len(s.plan))
	for i, st := range s.plan {
		names[i] = st.Name
	}
	color.Cyan("🌱 Starting dataset generation (seed %d, as of %s)...", s.config.Seed, s.config.AsOf)
	color.Cyan("📋 Generation order: %s", strings.Join(names, " → "))
	fmt.Fprintln(color.Output)

	var tables []*dataset.Table
	for _, st := range s.plan {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		count := counts[st.Name]
		for _, dep := range st.Requires {
			if count > 0 && len(s.pools.IDs[dep]) == 0 {
				return nil, fmt.Errorf("cannot generate %s: no %s to reference", st.Name, dep)
			}
		}
		for _, dep := range st.Optional {
			if count > 0 && len(s.pools.IDs[dep]) == 0 {
				color.Yellow("⚠️  No %s generated; %s will leave that reference empty", dep, st.Name)
			}
		}

		color.Cyan("  📝 Generating %s (%d records)...", st.Name, count)
		built, ids, err := st.run(env, count, s.pools)
		if err != nil {
			return nil, fmt.Errorf("failed to generate %s: %w", st.Name, err)
		}
		s.pools.IDs[st.Name] = ids
		tables = append(tables, built...)
		color.Green("  ✅ %s generated successfully", st.Name)
	}
	return tables, nil
}

// Seed generates the full dataset and writes it to the configured output
// directory. Either every artifact is promoted or none is.
func (s *Seeder) Seed(ctx context.Context) (*Result, error) {
	tables, err := s.Generate(ctx)
	if err != nil {
		return nil, err
	}

	m := &export.Manifest{
		RunID:          s.runID(),
		Seed:           s.config.Seed,
		AsOf:           s.config.AsOf,
		WeakReferences: append([]string(nil), entity.WeakReferences...),
	}
	opts := export.Options{
		Dir:        s.config.OutputDir,
		Format:     s.config.Format,
		NullMarker: s.config.NullMarker,
	}

	fmt.Fprintln(color.Output)
	color.Cyan("💾 Writing %d %s artifacts to %s", len(tables), opts.Format, opts.Dir)
	progress := func(name string, rows int) {
		color.Cyan("  📝 Writing %s (%d rows)...", name, rows)
	}
	if err := export.PerformExport(ctx, opts, tables, m, progress); err != nil {
		return nil, err
	}

	color.Green("\n✅ Dataset generation completed successfully!")
	return &Result{Dir: opts.Dir, Tables: tables, Manifest: m}, nil
}

func (s *Seeder) runID() string {
	parts := []string{strconv.FormatInt(s.config.Seed, 10), s.config.AsOf}
	for _, e := range s.config.Counts.Entries() {
		parts = append(parts, fmt.Sprintf("%s=%d", e.Name, e.Count))
	}
	return export.RunID(parts...)
}
