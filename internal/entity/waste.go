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

type WasteRecord struct {
	WasteID                  string
	WastedAt                 time.Time
	WasteType                string
	WasteCategory            string
	ProductID                dataset.Optional[string]
	MaterialSKU              string
	BatchID                  string
	FacilityLocation         string
	Department               string
	Quantity                 decimal.Decimal
	UnitOfMeasure            string
	UnitCost                 decimal.Decimal
	TotalMaterialCost        decimal.Decimal
	DisposalMethod           string
	DisposalCost             decimal.Decimal
	DisposalDate             time.Time
	DisposalVendor           string
	IsPreventable            bool
	RootCause                string
	CorrectiveAction         string
	EnvironmentalImpactScore decimal.Decimal
	CarbonFootprintKg        decimal.Decimal
	RecordedBy               string
	UpdatedAt                time.Time
}

var WasteSchema = dataset.Schema{
	Name: Waste,
	Columns: []dataset.Column{
		col("waste_id", kStr),
		col("waste_date", kDate),
		col("waste_type", kStr),
		col("waste_category", kStr),
		optional("product_id", kStr),
		col("material_sku", kStr),
		col("batch_id", kStr),
		col("facility_location", kStr),
		col("department", kStr),
		col("quantity", kDec),
		col("unit_of_measure", kStr),
		col("unit_cost", kDec),
		col("total_material_cost", kDec),
		col("disposal_method", kStr),
		col("disposal_cost", kDec),
		col("disposal_date", kDate),
		col("disposal_vendor", kStr),
		col("is_preventable", kBool),
		col("root_cause", kStr),
		col("corrective_action", kStr),
		col("environmental_impact_score", kDec),
		col("carbon_footprint_kg", kDec),
		col("recorded_by", kStr),
		col("created_date", kStamp),
		col("updated_date", kStamp),
	},
}

func (w WasteRecord) Values() []dataset.Value {
	return []dataset.Value{
		dataset.String(w.WasteID),
		dataset.Date(w.WastedAt),
		dataset.String(w.WasteType),
		dataset.String(w.WasteCategory),
		dataset.OptionalString(w.ProductID),
		dataset.String(w.MaterialSKU),
		dataset.String(w.BatchID),
		dataset.String(w.FacilityLocation),
		dataset.String(w.Department),
		dataset.Money(w.Quantity),
		dataset.String(w.UnitOfMeasure),
		dataset.Money(w.UnitCost),
		dataset.Money(w.TotalMaterialCost),
		dataset.String(w.DisposalMethod),
		dataset.Money(w.DisposalCost),
		dataset.Date(w.DisposalDate),
		dataset.String(w.DisposalVendor),
		dataset.Bool(w.IsPreventable),
		dataset.String(w.RootCause),
		dataset.String(w.CorrectiveAction),
		dataset.Decimal(w.EnvironmentalImpactScore, 1),
		dataset.Money(w.CarbonFootprintKg),
		dataset.String(w.RecordedBy),
		dataset.DateTime(w.WastedAt),
		dataset.DateTime(w.UpdatedAt),
	}
}

// GenerateWaste builds count waste records. About 70% name a product from
// products; with an empty pool product_id is always null.
func GenerateWaste(env Env, count int, products []string) ([]WasteRecord, error) {
	out := make([]WasteRecord, 0, count)

	for i := 0; i < count; i++ {
		id, err := env.IDs.Next(idgen.Waste)
		if err != nil {
			return nil, err
		}
		w := WasteRecord{
			WasteID:       id,
			WastedAt:      env.Src.TimeOfDay(env.Src.DaysBefore(env.AsOf, 1, 365)),
			WasteType:     random.Choice(env.Src, wasteTypes),
			WasteCategory: random.Choice(env.Src, wasteCategories),
			UpdatedAt:     env.AsOf,
		}
		w.DisposalMethod = random.Choice(env.Src, disposalOptions(w.WasteCategory))

		w.Quantity = env.Src.Decimal(1, 500, 2)
		w.UnitCost = env.Src.Decimal(5, 200, 2)
		w.TotalMaterialCost = w.Quantity.Mul(w.UnitCost).Round(2)
		w.DisposalCost = w.Quantity.Mul(disposalCostPerUnit[w.DisposalMethod]).Round(2)

		if env.Src.Chance(0.7) && len(products) > 0 {
			w.ProductID = dataset.Some(pick(env, products))
		}
		w.MaterialSKU = fmt.Sprintf("MAT-%s-%03d", random.Choice(env.Src, wasteMaterials), env.Src.Int(1, 999))
		w.BatchID = fmt.Sprintf("BATCH%d", env.Src.Int(1000, 9999))
		w.FacilityLocation = random.Choice(env.Src, wasteSites)
		w.Department = random.Choice(env.Src, departments)
		w.UnitOfMeasure = random.Choice(env.Src, wasteUnitsOfMeasure)
		w.DisposalDate = midnight(w.WastedAt).AddDate(0, 0, env.Src.Int(1, 7))
		if w.DisposalMethod == "Donation" {
			w.DisposalVendor = "Donation Center"
		} else {
			w.DisposalVendor = env.Src.Text(faker.KindCompany)
		}
		w.IsPreventable = env.Src.Chance(0.6)
		if env.Src.Chance(0.5) {
			w.RootCause = random.Choice(env.Src, rootCauses)
		}
		w.CorrectiveAction = orBlank(env, 0.3, faker.KindSentence)
		w.EnvironmentalImpactScore = env.Src.Decimal(1, 10, 1)
		w.CarbonFootprintKg = w.Quantity.Mul(decimal.NewFromFloat(env.Src.Uniform(0.5, 5))).Round(2)
		w.RecordedBy = env.Src.Text(faker.KindName)

		if err := w.verify(i, products); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

func (w WasteRecord) verify(row int, products []string) error {
	if !contains(disposalOptions(w.WasteCategory), w.DisposalMethod) {
		return violation(Waste, row, "disposal-method", "method %q not allowed for category %q", w.DisposalMethod, w.WasteCategory)
	}
	perUnit, ok := disposalCostPerUnit[w.DisposalMethod]
	if !ok {
		return violation(Waste, row, "disposal-method", "no per-unit cost for %q", w.DisposalMethod)
	}
	if want := w.Quantity.Mul(perUnit).Round(2); !w.DisposalCost.Equal(want) {
		return violation(Waste, row, "disposal-cost", "disposal_cost %s != round(quantity*%s) %s", w.DisposalCost, perUnit, want)
	}
	if want := w.Quantity.Mul(w.UnitCost).Round(2); !w.TotalMaterialCost.Equal(want) {
		return violation(Waste, row, "total-material-cost", "total %s != round(quantity*unit_cost) %s", w.TotalMaterialCost, want)
	}
	if !within(midnight(w.WastedAt), w.DisposalDate, 1, 7) {
		return violation(Waste, row, "disposal-date", "disposed %d days after waste", days(midnight(w.WastedAt), w.DisposalDate))
	}
	if w.ProductID.Valid && !contains(products, w.ProductID.Val) {
		return violation(Waste, row, "product-reference", "unknown product %s", w.ProductID.Val)
	}
	return nil
}
