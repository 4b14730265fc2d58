package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/synthgen/internal/dataset"
	"github.com/Lumos-Labs-HQ/synthgen/internal/faker"
	"github.com/Lumos-Labs-HQ/synthgen/internal/idgen"
	"github.com/Lumos-Labs-HQ/synthgen/internal/random"
	"github.com/shopspring/decimal"
)

const (
	minRecipeLines = 3
	maxRecipeLines = 10
)

type Recipe struct {
	RecipeID              string
	ProductID             string
	RecipeName            string
	Version               string
	YieldQuantity         int
	BatchSize             int
	ProductionTimeMinutes int
	IsActive              bool
	CreatedDate           time.Time
	UpdatedDate           time.Time
	LineCount             int
	TotalMaterialCost     decimal.Decimal
}

// RecipeLine is one bill-of-materials entry. Materials come from a fixed
// vocabulary, not from a generated table.
type RecipeLine struct {
	RecipeLineID     string
	RecipeID         string
	MaterialName     string
	MaterialSKU      string
	QuantityRequired decimal.Decimal
	UnitOfMeasure    string
	CostPerUnit      decimal.Decimal
	LineCost         decimal.Decimal
	SequenceNumber   int
	IsCritical       bool
}

var RecipeSchema = dataset.Schema{
	Name: Recipes,
	Columns: []dataset.Column{
		col("recipe_id", kStr),
		col("product_id", kStr),
		col("recipe_name", kStr),
		col("version", kStr),
		col("yield_quantity", kInt),
		col("batch_size", kInt),
		col("production_time_minutes", kInt),
		col("is_active", kBool),
		col("created_date", kDate),
		col("updated_date", kDate),
		col("line_count", kInt),
		col("total_material_cost", kDec),
	},
}

var RecipeLineSchema = dataset.Schema{
	Name: RecipeLines,
	Columns: []dataset.Column{
		col("recipe_line_id", kStr),
		col("recipe_id", kStr),
		col("material_name", kStr),
		col("material_sku", kStr),
		col("quantity_required", kDec),
		col("unit_of_measure", kStr),
		col("cost_per_unit", kDec),
		col("line_cost", kDec),
		col("sequence_number", kInt),
		col("is_critical", kBool),
	},
}

func (r Recipe) Values() []dataset.Value {
	return []dataset.Value{
		dataset.String(r.RecipeID),
		dataset.String(r.ProductID),
		dataset.String(r.RecipeName),
		dataset.String(r.Version),
		dataset.Int(r.YieldQuantity),
		dataset.Int(r.BatchSize),
		dataset.Int(r.ProductionTimeMinutes),
		dataset.Bool(r.IsActive),
		dataset.Date(r.CreatedDate),
		dataset.Date(r.UpdatedDate),
		dataset.Int(r.LineCount),
		dataset.Money(r.TotalMaterialCost),
	}
}

func (l RecipeLine) Values() []dataset.Value {
	return []dataset.Value{
		dataset.String(l.RecipeLineID),
		dataset.String(l.RecipeID),
		dataset.String(l.MaterialName),
		dataset.String(l.MaterialSKU),
		dataset.Money(l.QuantityRequired),
		dataset.String(l.UnitOfMeasure),
		dataset.Money(l.CostPerUnit),
		dataset.Money(l.LineCost),
		dataset.Int(l.SequenceNumber),
		dataset.Bool(l.IsCritical),
	}
}

// GenerateRecipes builds count recipes, each pointing at a product from
// products, with 3 to 10 material lines. The recipe row is finalized only
// after its lines are built.
func GenerateRecipes(env Env, count int, products []string) ([]Recipe, []RecipeLine, error) {
	if count > 0 && len(products) == 0 {
		return nil, nil, fmt.Errorf("recipes: product pool is empty")
	}
	recipes := make([]Recipe, 0, count)
	var lines []RecipeLine

	for i := 0; i < count; i++ {
		id, err := env.IDs.Next(idgen.Recipe)
		if err != nil {
			return nil, nil, err
		}
		r := Recipe{
			RecipeID:              id,
			ProductID:             pick(env, products),
			RecipeName:            "Recipe for " + env.Src.Text(faker.KindPhrase),
			Version:               fmt.Sprintf("%d.%d", env.Src.Int(1, 5), env.Src.Int(0, 9)),
			YieldQuantity:         env.Src.Int(1, 100),
			BatchSize:             env.Src.Int(10, 1000),
			ProductionTimeMinutes: env.Src.Int(30, 480),
			IsActive:              env.Src.Chance(0.9),
			CreatedDate:           env.Src.DaysBefore(env.AsOf, 30, 365),
			UpdatedDate:           env.AsOf,
		}

		materials := random.Sample(env.Src, rawMaterials, env.Src.Int(minRecipeLines, maxRecipeLines))
		children := make([]RecipeLine, 0, len(materials))
		total := decimal.Zero
		for j, material := range materials {
			l := RecipeLine{
				RecipeLineID:     idgen.Line(id, j+1),
				RecipeID:         id,
				MaterialName:     material,
				MaterialSKU:      fmt.Sprintf("MAT-%s-%03d", strings.ToUpper(material[:3]), env.Src.Int(1, 999)),
				QuantityRequired: env.Src.Decimal(0.1, 100, 2),
				UnitOfMeasure:    random.Choice(env.Src, unitsOfMeasure),
				CostPerUnit:      env.Src.Decimal(0.5, 50, 2),
				SequenceNumber:   j + 1,
				IsCritical:       env.Src.Chance(0.3),
			}
			l.LineCost = l.QuantityRequired.Mul(l.CostPerUnit).Round(2)
			total = total.Add(l.LineCost)
			children = append(children, l)
		}
		r.LineCount = len(children)
		r.TotalMaterialCost = total

		if err := r.verify(i, children); err != nil {
			return nil, nil, err
		}
		recipes = append(recipes, r)
		lines = append(lines, children...)
	}
	return recipes, lines, nil
}

func (r Recipe) verify(row int, lines []RecipeLine) error {
	if n := len(lines); n < minRecipeLines || n > maxRecipeLines {
		return violation(Recipes, row, "line-count", "%d lines, want %d..%d", n, minRecipeLines, maxRecipeLines)
	}
	if r.LineCount != len(lines) {
		return violation(Recipes, row, "line-count", "line_count %d != %d children", r.LineCount, len(lines))
	}
	seen := make(map[string]bool, len(lines))
	sum := decimal.Zero
	for _, l := range lines {
		if l.RecipeID != r.RecipeID {
			return violation(RecipeLines, row, "parent-reference", "line %s points at %s", l.RecipeLineID, l.RecipeID)
		}
		if seen[l.MaterialName] {
			return violation(RecipeLines, row, "distinct-materials", "material %q repeated in %s", l.MaterialName, r.RecipeID)
		}
		seen[l.MaterialName] = true
		if want := l.QuantityRequired.Mul(l.CostPerUnit).Round(2); !l.LineCost.Equal(want) {
			return violation(RecipeLines, row, "line-cost", "line_cost %s != %s", l.LineCost, want)
		}
		sum = sum.Add(l.LineCost)
	}
	if !r.TotalMaterialCost.Equal(sum) {
		return violation(Recipes, row, "total-material-cost", "total %s != sum of lines %s", r.TotalMaterialCost, sum)
	}
	return nil
}

func RecipeIDs(rows []Recipe) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.RecipeID
	}
	return ids
}
