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

var (
	minMarkup = decimal.RequireFromString("1.3")
	maxMarkup = decimal.RequireFromString("2.5")
)

type Product struct {
	ProductID    string
	SKU          string
	ProductName  string
	Category     string
	Subcategory  string
	Brand        string
	UnitCost     decimal.Decimal
	UnitPrice    decimal.Decimal
	WeightKg     decimal.Decimal
	Dimensions   string
	IsActive     bool
	ReorderPoint int
	LeadTimeDays int
	CreatedDate  time.Time
	UpdatedDate  time.Time

	markup decimal.Decimal
}

var ProductSchema = dataset.Schema{
	Name: Products,
	Columns: []dataset.Column{
		col("product_id", kStr),
		col("sku", kStr),
		col("product_name", kStr),
		col("category", kStr),
		col("subcategory", kStr),
		col("brand", kStr),
		col("unit_cost", kDec),
		col("unit_price", kDec),
		col("weight_kg", kDec),
		col("dimensions_cm", kStr),
		col("is_active", kBool),
		col("reorder_point", kInt),
		col("lead_time_days", kInt),
		col("created_date", kDate),
		col("updated_date", kDate),
	},
}

func (p Product) Values() []dataset.Value {
	return []dataset.Value{
		dataset.String(p.ProductID),
		dataset.String(p.SKU),
		dataset.String(p.ProductName),
		dataset.String(p.Category),
		dataset.String(p.Subcategory),
		dataset.String(p.Brand),
		dataset.Money(p.UnitCost),
		dataset.Money(p.UnitPrice),
		dataset.Money(p.WeightKg),
		dataset.String(p.Dimensions),
		dataset.Bool(p.IsActive),
		dataset.Int(p.ReorderPoint),
		dataset.Int(p.LeadTimeDays),
		dataset.Date(p.CreatedDate),
		dataset.Date(p.UpdatedDate),
	}
}

// GenerateProducts builds the product catalog. Products reference nothing.
func GenerateProducts(env Env, count int) ([]Product, error) {
	out := make([]Product, 0, count)
	for i := 0; i < count; i++ {
		id, err := env.IDs.Next(idgen.Product)
		if err != nil {
			return nil, err
		}
		category := random.Choice(env.Src, productCategories)
		sub := random.Choice(env.Src, subcategories[category])

		p := Product{
			ProductID:    id,
			SKU:          fmt.Sprintf("%s-%s-%05d", abbrev(category), abbrev(sub), i+1),
			ProductName:  env.Src.Text(faker.KindPhrase) + " " + sub,
			Category:     category,
			Subcategory:  sub,
			Brand:        env.Src.Text(faker.KindCompany),
			UnitCost:     env.Src.Decimal(5, 500, 2),
			WeightKg:     env.Src.Decimal(0.1, 50, 2),
			Dimensions:   dims(env),
			IsActive:     env.Src.Chance(0.95),
			ReorderPoint: env.Src.Int(10, 100),
			LeadTimeDays: env.Src.Int(7, 45),
			CreatedDate:  env.Src.DaysBefore(env.AsOf, 30, 730),
			UpdatedDate:  env.AsOf,
		}
		p.markup = decimal.NewFromFloat(env.Src.Uniform(1.3, 2.5))
		p.UnitPrice = p.UnitCost.Mul(p.markup).Round(2)

		if err := p.verify(i); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (p Product) verify(row int) error {
	if !contains(subcategories[p.Category], p.Subcategory) {
		return violation(Products, row, "subcategory-of-category", "%q is not a subcategory of %q", p.Subcategory, p.Category)
	}
	if p.markup.LessThan(minMarkup) || p.markup.GreaterThan(maxMarkup) {
		return violation(Products, row, "markup-range", "markup %s outside [1.3, 2.5]", p.markup)
	}
	if want := p.UnitCost.Mul(p.markup).Round(2); !p.UnitPrice.Equal(want) {
		return violation(Products, row, "unit-price", "unit_price %s != round(unit_cost*markup) %s", p.UnitPrice, want)
	}
	return nil
}

func abbrev(s string) string {
	if len(s) > 3 {
		s = s[:3]
	}
	return strings.ToUpper(s)
}

// ProductIDs extracts the identifier pool.
func ProductIDs(rows []Product) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ProductID
	}
	return ids
}
