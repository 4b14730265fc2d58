package entity

import (
	"fmt"

	"github.com/Lumos-Labs-HQ/synthgen/internal/random"
	"github.com/shopspring/decimal"
)

// Fixed vocabularies and lookup tables. They are read-only after init and
// checked once by ValidateTables before a run starts.

var productCategories = []string{
	"Electronics", "Furniture", "Clothing", "Food & Beverage", "Home & Garden",
	"Sports & Outdoors", "Toys & Games", "Health & Beauty", "Automotive", "Books & Media",
}

var subcategories = map[string][]string{
	"Electronics":       {"Smartphones", "Laptops", "Tablets", "Accessories"},
	"Furniture":         {"Chairs", "Tables", "Sofas", "Storage"},
	"Clothing":          {"Shirts", "Pants", "Dresses", "Shoes"},
	"Food & Beverage":   {"Snacks", "Beverages", "Fresh Produce", "Packaged Foods"},
	"Home & Garden":     {"Kitchen", "Bath", "Garden Tools", "Decor"},
	"Sports & Outdoors": {"Fitness", "Camping", "Team Sports", "Water Sports"},
	"Toys & Games":      {"Action Figures", "Board Games", "Puzzles", "Educational"},
	"Health & Beauty":   {"Skincare", "Makeup", "Hair Care", "Wellness"},
	"Automotive":        {"Parts", "Accessories", "Tools", "Fluids"},
	"Books & Media":     {"Fiction", "Non-Fiction", "Movies", "Music"},
}

var rawMaterials = []string{
	"Steel Alloy", "Aluminum", "Copper Wire", "Plastic Resin", "Cotton Fabric", "Polyester Fabric",
	"Leather", "Rubber", "Glass", "Wood", "Cardboard", "Foam", "Silicon", "Paint", "Adhesive",
	"Fasteners", "Electronic Components", "Packaging Materials", "Labels", "Ink",
}

var (
	customerTypes    = []string{"Individual", "Business"}
	customerSegments = []string{"Premium", "Standard", "Basic", "Enterprise"}
	paymentTerms     = []int{0, 15, 30, 45, 60}
)

var (
	orderStatuses  = []string{"Pending", "Confirmed", "Processing", "Shipped", "Delivered", "Cancelled"}
	paymentMethods = []string{"Credit Card", "Debit Card", "PayPal", "Bank Transfer", "Cash on Delivery"}
	taxRate        = decimal.RequireFromString("0.08")
)

var (
	carriers         = []string{"FedEx", "UPS", "DHL", "USPS", "Amazon Logistics"}
	shipmentStatuses = []string{"Pending", "In Transit", "Out for Delivery", "Delivered", "Failed Delivery", "Returned"}
	serviceLevels    = []string{"Standard", "Express", "2-Day", "Overnight", "Economy"}
	warehouses       = []string{"NYC", "LAX", "CHI", "ATL", "DFW"}
)

// transitDays is the inclusive range of transit days per service level.
var transitDays = map[string][2]int{
	"Standard":  {5, 7},
	"Express":   {3, 4},
	"2-Day":     {2, 2},
	"Overnight": {1, 1},
	"Economy":   {7, 14},
}

var (
	returnReasons = []string{
		"Defective Product", "Wrong Item Received", "Not as Described", "Changed Mind",
		"Better Price Elsewhere", "Damaged in Shipping", "Size/Fit Issue", "Quality Issues",
		"Late Delivery", "No Longer Needed",
	}
	returnStatuses   = []string{"Requested", "Approved", "In Transit", "Received", "Inspected", "Refunded", "Rejected"}
	refundMethods    = []string{"Original Payment Method", "Store Credit", "Exchange", "Bank Transfer"}
	returnConditions = []string{"New", "Like New", "Used", "Damaged"}
	restockingRate   = decimal.RequireFromString("0.15")
)

var (
	approvedStatuses   = set("Approved", "In Transit", "Received", "Inspected", "Refunded")
	receivedStatuses   = set("Received", "Inspected", "Refunded")
	restockingReasons  = set("Changed Mind", "Better Price Elsewhere", "No Longer Needed")
	inspectedStatuses  = set("Inspected", "Refunded")
	defectiveStatuses  = set("Fail", "Conditional Pass", "Re-inspection Required")
	orderedInspections = set("Final Product", "Customer Return")
)

var (
	wasteTypes = []string{
		"Material Scrap", "Packaging Waste", "Defective Product", "Expired Materials", "Production Overrun",
		"Trim Waste", "Off-spec Product", "Contaminated Materials", "Obsolete Inventory",
	}
	disposalMethods = []string{
		"Recycling", "Landfill", "Incineration", "Composting", "Hazardous Waste Disposal",
		"Donation", "Resale", "Reprocessing",
	}
	wasteCategories = []string{"Recyclable", "Non-Recyclable", "Hazardous", "Organic"}
	rootCauses      = []string{
		"Equipment Malfunction", "Human Error", "Quality Failure", "Process Inefficiency",
		"Design Issue", "Material Defect", "Forecasting Error", "Supplier Issue",
	}
	wasteMaterials = []string{"STE", "ALU", "PLA", "CTN"}
	plants         = []string{"Plant-A", "Plant-B", "Plant-C"}
	wasteSites     = []string{"Plant-A", "Plant-B", "Plant-C", "Warehouse-1", "Warehouse-2"}
	departments    = []string{"Production", "Packaging", "Quality Control", "Warehouse", "Shipping"}
)

// allowedDisposal restricts the disposal methods per waste category. A
// category absent from the map accepts every method.
var allowedDisposal = map[string][]string{
	"Recyclable": {"Recycling", "Reprocessing", "Resale"},
	"Hazardous":  {"Hazardous Waste Disposal"},
	"Organic":    {"Composting", "Incineration"},
}

// disposalCostPerUnit is negative for Resale, which earns a credit.
var disposalCostPerUnit = map[string]decimal.Decimal{
	"Recycling":                decimal.NewFromInt(2),
	"Landfill":                 decimal.NewFromInt(5),
	"Incineration":             decimal.NewFromInt(8),
	"Composting":               decimal.NewFromInt(3),
	"Hazardous Waste Disposal": decimal.NewFromInt(50),
	"Donation":                 decimal.Zero,
	"Resale":                   decimal.NewFromInt(-5),
	"Reprocessing":             decimal.NewFromInt(10),
}

var (
	inspectionTypes = []string{
		"Incoming Material", "In-Process", "Final Product", "First Article", "Random Sample",
		"Customer Return", "Audit", "Regulatory Compliance",
	}
	inspectionStatuses = []random.Weighted[string]{
		{Value: "Pass", Weight: 0.80},
		{Value: "Fail", Weight: 0.10},
		{Value: "Conditional Pass", Weight: 0.05},
		{Value: "Re-inspection Required", Weight: 0.05},
	}
	defectTypes = []string{
		"Dimensional", "Visual/Cosmetic", "Functional", "Material", "Assembly", "Packaging",
		"Documentation", "Performance", "Safety", "Contamination",
	}
	severityLevels      = []string{"Critical", "Major", "Minor", "Observation"}
	functionalResults   = []string{"Pass", "Fail", "N/A"}
	complianceStandards = []string{"ISO-9001", "ISO-14001", "FDA", "CE", "UL", "N/A"}
	dispositions        = []string{"Accept", "Reject", "Rework", "Use As Is", "Scrap"}
)

var (
	unitsOfMeasure      = []string{"kg", "liters", "meters", "units", "grams"}
	wasteUnitsOfMeasure = []string{"kg", "liters", "units", "meters"}
)

func set(values ...string) map[string]bool {
	m := make(map[string]bool, len(values))
	for _, v := range values {
		m[v] = true
	}
	return m
}

func disposalOptions(category string) []string {
	if allowed, ok := allowedDisposal[category]; ok {
		return allowed
	}
	return disposalMethods
}

// ValidateTables checks that every lookup table covers every enum value the
// generators can draw.
func ValidateTables() error {
	for _, c := range productCategories {
		if len(subcategories[c]) == 0 {
			return fmt.Errorf("category %q has no subcategories", c)
		}
	}
	for _, l := range serviceLevels {
		r, ok := transitDays[l]
		if !ok {
			return fmt.Errorf("service level %q has no transit days", l)
		}
		if r[0] < 1 || r[1] < r[0] {
			return fmt.Errorf("service level %q has invalid transit range %v", l, r)
		}
	}
	for _, m := range disposalMethods {
		if _, ok := disposalCostPerUnit[m]; !ok {
			return fmt.Errorf("disposal method %q has no per-unit cost", m)
		}
	}
	for _, c := range wasteCategories {
		for _, m := range disposalOptions(c) {
			if _, ok := disposalCostPerUnit[m]; !ok {
				return fmt.Errorf("waste category %q allows unknown disposal method %q", c, m)
			}
		}
	}
	for c := range allowedDisposal {
		if !contains(wasteCategories, c) {
			return fmt.Errorf("disposal rule for unknown waste category %q", c)
		}
	}
	if len(rawMaterials) < 10 {
		return fmt.Errorf("need at least 10 raw materials for a full recipe, have %d", len(rawMaterials))
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
