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

type Inspection struct {
	InspectionID                string
	InspectedAt                 time.Time
	InspectionType              string
	InspectionStatus            string
	ProductID                   string
	BatchID                     string
	OrderID                     dataset.Optional[string]
	FacilityLocation            string
	InspectorName               string
	InspectorID                 string
	SampleSize                  int
	DefectCount                 int
	DefectType                  dataset.Optional[string]
	SeverityLevel               dataset.Optional[string]
	DefectDescription           string
	Measurement1                decimal.Decimal
	Measurement2                decimal.Decimal
	Measurement3                decimal.Decimal
	SpecificationMet            bool
	TolerancePercentage         decimal.Decimal
	VisualInspectionScore       decimal.Decimal
	FunctionalTestResult        string
	ComplianceStandard          string
	CorrectiveActionRequired    bool
	CorrectiveActionDescription string
	FollowUpDate                dataset.Optional[time.Time]
	RootCauseAnalysis           string
	CostOfQuality               decimal.Decimal
	Disposition                 string
	Notes                       string
	UpdatedAt                   time.Time
}

var InspectionSchema = dataset.Schema{
	Name: QualityInspections,
	Columns: []dataset.Column{
		col("inspection_id", kStr),
		col("inspection_date", kDate),
		col("inspection_time", kClock),
		col("inspection_type", kStr),
		col("inspection_status", kStr),
		col("product_id", kStr),
		col("batch_id", kStr),
		optional("order_id", kStr),
		col("facility_location", kStr),
		col("inspector_name", kStr),
		col("inspector_id", kStr),
		col("sample_size", kInt),
		col("defect_count", kInt),
		optional("defect_type", kStr),
		optional("severity_level", kStr),
		col("defect_description", kStr),
		col("measurement_1", kDec),
		col("measurement_2", kDec),
		col("measurement_3", kDec),
		col("specification_met", kBool),
		col("tolerance_percentage", kDec),
		col("visual_inspection_score", kDec),
		col("functional_test_result", kStr),
		col("compliance_standard", kStr),
		col("corrective_action_required", kBool),
		col("corrective_action_description", kStr),
		optional("follow_up_date", kDate),
		col("root_cause_analysis", kStr),
		col("cost_of_quality", kDec),
		col("disposition", kStr),
		col("notes", kStr),
		col("created_date", kStamp),
		col("updated_date", kStamp),
	},
}

func (q Inspection) Values() []dataset.Value {
	return []dataset.Value{
		dataset.String(q.InspectionID),
		dataset.Date(q.InspectedAt),
		dataset.Clock(q.InspectedAt),
		dataset.String(q.InspectionType),
		dataset.String(q.InspectionStatus),
		dataset.String(q.ProductID),
		dataset.String(q.BatchID),
		dataset.OptionalString(q.OrderID),
		dataset.String(q.FacilityLocation),
		dataset.String(q.InspectorName),
		dataset.String(q.InspectorID),
		dataset.Int(q.SampleSize),
		dataset.Int(q.DefectCount),
		dataset.OptionalString(q.DefectType),
		dataset.OptionalString(q.SeverityLevel),
		dataset.String(q.DefectDescription),
		dataset.Money(q.Measurement1),
		dataset.Money(q.Measurement2),
		dataset.Money(q.Measurement3),
		dataset.Bool(q.SpecificationMet),
		dataset.Money(q.TolerancePercentage),
		dataset.Decimal(q.VisualInspectionScore, 1),
		dataset.String(q.FunctionalTestResult),
		dataset.String(q.ComplianceStandard),
		dataset.Bool(q.CorrectiveActionRequired),
		dataset.String(q.CorrectiveActionDescription),
		dataset.OptionalDate(q.FollowUpDate),
		dataset.String(q.RootCauseAnalysis),
		dataset.Money(q.CostOfQuality),
		dataset.String(q.Disposition),
		dataset.String(q.Notes),
		dataset.DateTime(q.InspectedAt),
		dataset.DateTime(q.UpdatedAt),
	}
}

// GenerateInspections builds count quality inspections. Only Final Product
// and Customer Return inspections carry an order, and only when orders is
// non-empty. Defect fields are filled for non-passing statuses alone.
func GenerateInspections(env Env, count int, products, orders []string) ([]Inspection, error) {
	if count > 0 && len(products) == 0 {
		return nil, fmt.Errorf("quality_inspections: product pool is empty")
	}
	out := make([]Inspection, 0, count)

	for i := 0; i < count; i++ {
		id, err := env.IDs.Next(idgen.Inspection)
		if err != nil {
			return nil, err
		}
		q := Inspection{
			InspectionID:     id,
			InspectedAt:      env.Src.TimeOfDay(env.Src.DaysBefore(env.AsOf, 1, 365)),
			InspectionType:   random.Choice(env.Src, inspectionTypes),
			InspectionStatus: random.WeightedChoice(env.Src, inspectionStatuses),
			CostOfQuality:    decimal.Zero,
			Disposition:      "Accept",
			UpdatedAt:        env.AsOf,
		}
		defective := defectiveStatuses[q.InspectionStatus]
		if defective {
			q.DefectCount = env.Src.Int(1, 5)
		}

		q.ProductID = pick(env, products)
		q.BatchID = fmt.Sprintf("BATCH%d", env.Src.Int(1000, 9999))
		if orderedInspections[q.InspectionType] && len(orders) > 0 {
			q.OrderID = dataset.Some(pick(env, orders))
		}
		q.FacilityLocation = random.Choice(env.Src, plants)
		q.InspectorName = env.Src.Text(faker.KindName)
		q.InspectorID = fmt.Sprintf("EMP%04d", env.Src.Int(1, 100))
		q.SampleSize = env.Src.Int(1, 100)
		if defective {
			q.DefectType = dataset.Some(random.Choice(env.Src, defectTypes))
			q.SeverityLevel = dataset.Some(random.Choice(env.Src, severityLevels))
			q.DefectDescription = env.Src.Text(faker.KindSentence)
		}
		q.Measurement1 = env.Src.Decimal(90, 110, 2)
		q.Measurement2 = env.Src.Decimal(45, 55, 2)
		q.Measurement3 = env.Src.Decimal(18, 22, 2)
		q.SpecificationMet = q.InspectionStatus == "Pass"
		q.TolerancePercentage = env.Src.Decimal(-5, 5, 2)
		q.VisualInspectionScore = env.Src.Decimal(1, 10, 1)
		q.FunctionalTestResult = random.Choice(env.Src, functionalResults)
		q.ComplianceStandard = random.Choice(env.Src, complianceStandards)

		if defective {
			q.CorrectiveActionRequired = env.Src.Chance(0.7)
			q.CorrectiveActionDescription = orBlank(env, 0.5, faker.KindSentence)
			q.FollowUpDate = dataset.Some(midnight(q.InspectedAt).AddDate(0, 0, env.Src.Int(7, 30)))
		}
		if q.InspectionStatus == "Fail" {
			q.RootCauseAnalysis = env.Src.Text(faker.KindSentence)
		}
		if defective {
			q.CostOfQuality = env.Src.Decimal(0, 1000, 2)
			q.Disposition = random.Choice(env.Src, dispositions)
		}
		q.Notes = orBlank(env, 0.3, faker.KindSentence)

		if err := q.verify(i); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

func (q Inspection) verify(row int) error {
	defective := defectiveStatuses[q.InspectionStatus]
	if q.SpecificationMet != (q.InspectionStatus == "Pass") {
		return violation(QualityInspections, row, "specification-met", "specification_met=%v for status %q", q.SpecificationMet, q.InspectionStatus)
	}
	if q.OrderID.Valid && !orderedInspections[q.InspectionType] {
		return violation(QualityInspections, row, "order-reference", "%s inspection carries order %s", q.InspectionType, q.OrderID.Val)
	}
	if defective {
		if q.DefectCount < 1 || q.DefectCount > 5 {
			return violation(QualityInspections, row, "defect-count", "%d defects for status %q", q.DefectCount, q.InspectionStatus)
		}
		if !q.DefectType.Valid || !q.SeverityLevel.Valid || !q.FollowUpDate.Valid {
			return violation(QualityInspections, row, "defect-fields", "status %q missing defect detail", q.InspectionStatus)
		}
		return nil
	}
	if q.DefectCount != 0 || q.DefectType.Valid || q.SeverityLevel.Valid || q.FollowUpDate.Valid ||
		q.DefectDescription != "" || q.CorrectiveActionRequired || q.CorrectiveActionDescription != "" {
		return violation(QualityInspections, row, "defect-fields", "status %q carries defect detail", q.InspectionStatus)
	}
	if !q.CostOfQuality.IsZero() || q.Disposition != "Accept" {
		return violation(QualityInspections, row, "disposition", "status %q has disposition %q, cost %s", q.InspectionStatus, q.Disposition, q.CostOfQuality)
	}
	return nil
}
