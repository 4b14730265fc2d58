package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/synthgen/internal/idgen"
	"github.com/spf13/viper"
)

const (
	FileName   = "synthgen.config.json"
	EnvPrefix  = "SYNTHGEN"
	AsOfLayout = "2006-01-02"
)

// Formats lists the artifact formats a run can write.
var Formats = []string{"csv", "json", "sqlite", "xlsx"}

type Config struct {
	Seed       int64  `json:"seed" mapstructure:"seed"`
	AsOf       string `json:"as_of" mapstructure:"as_of"`
	OutputDir  string `json:"output_dir" mapstructure:"output_dir"`
	Format     string `json:"format" mapstructure:"format"`
	NullMarker string `json:"null_marker" mapstructure:"null_marker"`
	Counts     Counts `json:"counts" mapstructure:"counts"`
}

// Counts is the number of top-level rows per entity. Child tables
// (recipe_lines, order_lines) are sized by their parents.
type Counts struct {
	Products           int `json:"products" mapstructure:"products"`
	Recipes            int `json:"recipes" mapstructure:"recipes"`
	Customers          int `json:"customers" mapstructure:"customers"`
	Orders             int `json:"orders" mapstructure:"orders"`
	Shipments          int `json:"shipments" mapstructure:"shipments"`
	Returns            int `json:"returns" mapstructure:"returns"`
	Waste              int `json:"waste" mapstructure:"waste"`
	QualityInspections int `json:"quality_inspections" mapstructure:"quality_inspections"`
}

// ValidationError is a configuration problem found before any row is generated.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func DefaultConfig() *Config {
	return &Config{
		Seed:       42,
		AsOf:       "2025-01-01",
		OutputDir:  "sample_data",
		Format:     "csv",
		NullMarker: `\N`,
		Counts: Counts{
			Products:           1000,
			Recipes:            500,
			Customers:          5000,
			Orders:             10000,
			Shipments:          8000,
			Returns:            1500,
			Waste:              3000,
			QualityInspections: 5000,
		},
	}
}

// SetDefaults registers every key with v so that env overrides resolve even
// when no config file is present.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("seed", d.Seed)
	v.SetDefault("as_of", d.AsOf)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("format", d.Format)
	v.SetDefault("null_marker", d.NullMarker)
	for _, e := range d.Counts.Entries() {
		v.SetDefault("counts."+e.Name, e.Count)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the process-wide viper instance populated by the CLI.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	return &cfg, nil
}

// AsOfDate parses the reference date every relative date is computed from.
func (c *Config) AsOfDate() (time.Time, error) {
	t, err := time.Parse(AsOfLayout, c.AsOf)
	if err != nil {
		return time.Time{}, invalid("as_of", "%q is not a YYYY-MM-DD date", c.AsOf)
	}
	return t, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return invalid("output_dir", "cannot be empty")
	}
	supported := false
	for _, f := range Formats {
		if c.Format == f {
			supported = true
			break
		}
	}
	if !supported {
		return invalid("format", "unsupported format %q. Supported formats: %v", c.Format, Formats)
	}
	if c.NullMarker == "" {
		return invalid("null_marker", "cannot be empty")
	}
	if _, err := c.AsOfDate(); err != nil {
		return err
	}

	for _, e := range c.Counts.Entries() {
		if e.Count < 0 {
			return invalid("counts."+e.Name, "must not be negative, got %d", e.Count)
		}
		if capacity := e.Kind.Capacity(); e.Count > capacity {
			return invalid("counts."+e.Name, "%d exceeds the %d-digit %s identifier space (%d)", e.Count, e.Kind.Width, e.Kind.Prefix, capacity)
		}
	}

	n := c.Counts
	pools := []struct {
		field    string
		count    int
		requires map[string]int
	}{
		{"counts.recipes", n.Recipes, map[string]int{"products": n.Products}},
		{"counts.orders", n.Orders, map[string]int{"customers": n.Customers, "products": n.Products}},
		{"counts.shipments", n.Shipments, map[string]int{"orders": n.Orders}},
		{"counts.returns", n.Returns, map[string]int{"orders": n.Orders, "products": n.Products, "customers": n.Customers}},
		{"counts.quality_inspections", n.QualityInspections, map[string]int{"products": n.Products}},
	}
	for _, p := range pools {
		if p.count == 0 {
			continue
		}
		for _, name := range []string{"customers", "products", "orders"} {
			if size, ok := p.requires[name]; ok && size == 0 {
				return invalid(p.field, "%d rows requested but counts.%s is 0", p.count, name)
			}
		}
	}
	return nil
}

// Entry pairs an entity's config key with its count and identifier shape.
type Entry struct {
	Name  string
	Count int
	Kind  idgen.Kind
}

// Entries lists the counts in generation order.
func (n Counts) Entries() []Entry {
	return []Entry{
		{"products", n.Products, idgen.Product},
		{"recipes", n.Recipes, idgen.Recipe},
		{"customers", n.Customers, idgen.Customer},
		{"orders", n.Orders, idgen.Order},
		{"shipments", n.Shipments, idgen.Shipment},
		{"returns", n.Returns, idgen.Return},
		{"waste", n.Waste, idgen.Waste},
		{"quality_inspections", n.QualityInspections, idgen.Inspection},
	}
}

// Set overrides one count by its config key.
func (n *Counts) Set(name string, count int) error {
	switch name {
	case "products":
		n.Products = count
	case "recipes":
		n.Recipes = count
	case "customers":
		n.Customers = count
	case "orders":
		n.Orders = count
	case "shipments":
		n.Shipments = count
	case "returns":
		n.Returns = count
	case "waste":
		n.Waste = count
	case "quality_inspections":
		n.QualityInspections = count
	default:
		return invalid("counts", "unknown entity %q", name)
	}
	return nil
}

// InitializeProject writes a default config file into the current directory.
func InitializeProject() error {
	if _, err := os.Stat(FileName); err == nil {
		return fmt.Errorf("%s already exists", FileName)
	}
	data, err := json.MarshalIndent(DefaultConfig(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(FileName, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to create file %s: %w", FileName, err)
	}
	return nil
}
