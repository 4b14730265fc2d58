// Package entity generates the rows of every synthetic table. Each generator
// is a function of a row count, the run's random source and the identifier
// pools of the entities it references. A generator checks every row it emits
// and stops at the first row that breaks one of its invariants.
package entity

import (
	"fmt"
	"time"

	"github.com/Lumos-Labs-HQ/synthgen/internal/dataset"
	"github.com/Lumos-Labs-HQ/synthgen/internal/faker"
	"github.com/Lumos-Labs-HQ/synthgen/internal/idgen"
	"github.com/Lumos-Labs-HQ/synthgen/internal/random"
	"github.com/shopspring/decimal"
)

// Artifact names, also used as file stems.
const (
	Products           = "products"
	Recipes            = "recipes"
	RecipeLines        = "recipe_lines"
	Customers          = "customers"
	Orders             = "orders"
	OrderLines         = "order_lines"
	Shipments          = "shipments"
	Returns            = "returns"
	Waste              = "waste"
	QualityInspections = "quality_inspections"
)

// Env is what every generator receives from the orchestrator.
type Env struct {
	Src  *random.Source
	IDs  *idgen.Allocator
	AsOf time.Time
}

// NewEnv truncates asOf to a UTC midnight so date arithmetic stays whole-day.
func NewEnv(src *random.Source, ids *idgen.Allocator, asOf time.Time) Env {
	return Env{
		Src:  src,
		IDs:  ids,
		AsOf: midnight(asOf),
	}
}

// InvariantViolation reports a generated row that breaks one of its
// entity's contracts. It is a generator defect, never a data condition.
type InvariantViolation struct {
	Entity    string
	Row       int
	Invariant string
	Detail    string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("%s row %d violates %s: %s", e.Entity, e.Row, e.Invariant, e.Detail)
}

func violation(entity string, row int, invariant, format string, args ...any) *InvariantViolation {
	return &InvariantViolation{
		Entity:    entity,
		Row:       row,
		Invariant: invariant,
		Detail:    fmt.Sprintf(format, args...),
	}
}

func pick(env Env, pool []string) string {
	return random.Choice(env.Src, pool)
}

func dims(env Env) string {
	return fmt.Sprintf("%dx%dx%d", env.Src.Int(10, 100), env.Src.Int(10, 100), env.Src.Int(5, 50))
}

func orBlank(env Env, p float64, kind faker.Kind) string {
	if env.Src.Chance(p) {
		return env.Src.Text(kind)
	}
	return ""
}

// times multiplies a money amount by n and rounds to cents.
func times(d decimal.Decimal, n int) decimal.Decimal {
	return d.Mul(decimal.NewFromInt(int64(n))).Round(2)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func days(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func col(name string, k dataset.Kind) dataset.Column {
	return dataset.Column{Name: name, Kind: k}
}

func optional(name string, k dataset.Kind) dataset.Column {
	return dataset.Column{Name: name, Kind: k, Nullable: true}
}

const (
	kStr   = dataset.KindString
	kInt   = dataset.KindInt
	kDec   = dataset.KindDecimal
	kBool  = dataset.KindBool
	kDate  = dataset.KindDate
	kStamp = dataset.KindDateTime
	kClock = dataset.KindTime
)

// Schemas lists every artifact schema in generation order.
func Schemas() []dataset.Schema {
	return []dataset.Schema{
		ProductSchema,
		RecipeSchema,
		RecipeLineSchema,
		CustomerSchema,
		OrderSchema,
		OrderLineSchema,
		ShipmentSchema,
		ReturnSchema,
		WasteSchema,
		InspectionSchema,
	}
}

// SchemaFor looks up an artifact schema by name.
func SchemaFor(name string) (dataset.Schema, bool) {
	for _, s := range Schemas() {
		if s.Name == name {
			return s, true
		}
	}
	return dataset.Schema{}, false
}

// WeakReferences names FK-shaped columns that are synthesized and may not
// resolve to an existing row.
var WeakReferences = []string{Returns + ".order_line_id"}
