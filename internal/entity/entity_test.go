package entity

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Lumos-Labs-HQ/synthgen/internal/dataset"
	"github.com/Lumos-Labs-HQ/synthgen/internal/idgen"
	"github.com/Lumos-Labs-HQ/synthgen/internal/random"
	"github.com/shopspring/decimal"
)

var testAsOf = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newEnv(seed int64) Env {
	return NewEnv(random.New(seed), idgen.NewAllocator(), testAsOf)
}

type world struct {
	products    []Product
	recipes     []Recipe
	recipeLines []RecipeLine
	customers   []Customer
	orders      []Order
	orderLines  []OrderLine
	shipments   []Shipment
	returns     []Return
	waste       []WasteRecord
	inspections []Inspection
}

func generateWorld(t *testing.T, seed int64, n int) world {
	t.Helper()
	env := newEnv(seed)
	var w world
	var err error

	if w.products, err = GenerateProducts(env, n); err != nil {
		t.Fatalf("products: %v", err)
	}
	products := ProductIDs(w.products)
	if w.recipes, w.recipeLines, err = GenerateRecipes(env, n, products); err != nil {
		t.Fatalf("recipes: %v", err)
	}
	if w.customers, err = GenerateCustomers(env, n); err != nil {
		t.Fatalf("customers: %v", err)
	}
	customers := CustomerIDs(w.customers)
	if w.orders, w.orderLines, err = GenerateOrders(env, n, customers, products); err != nil {
		t.Fatalf("orders: %v", err)
	}
	orders := OrderIDs(w.orders)
	refs := OrderRefs(w.orders)
	if w.shipments, err = GenerateShipments(env, n, refs); err != nil {
		t.Fatalf("shipments: %v", err)
	}
	if w.returns, err = GenerateReturns(env, n, refs, products, customers); err != nil {
		t.Fatalf("returns: %v", err)
	}
	if w.waste, err = GenerateWaste(env, n, products); err != nil {
		t.Fatalf("waste: %v", err)
	}
	if w.inspections, err = GenerateInspections(env, n, products, orders); err != nil {
		t.Fatalf("quality_inspections: %v", err)
	}
	return w
}

func tables(t *testing.T, w world) []*dataset.Table {
	t.Helper()
	var out []*dataset.Table
	add := func(tbl *dataset.Table, err error) {
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		out = append(out, tbl)
	}
	add(dataset.Build(ProductSchema, w.products))
	add(dataset.Build(RecipeSchema, w.recipes))
	add(dataset.Build(RecipeLineSchema, w.recipeLines))
	add(dataset.Build(CustomerSchema, w.customers))
	add(dataset.Build(OrderSchema, w.orders))
	add(dataset.Build(OrderLineSchema, w.orderLines))
	add(dataset.Build(ShipmentSchema, w.shipments))
	add(dataset.Build(ReturnSchema, w.returns))
	add(dataset.Build(WasteSchema, w.waste))
	add(dataset.Build(InspectionSchema, w.inspections))
	return out
}

func render(tbl *dataset.Table) string {
	var b strings.Builder
	for _, row := range tbl.Rows {
		for _, v := range row {
			s, ok := v.Text()
			if !ok {
				s = "<null>"
			}
			b.WriteString(s)
			b.WriteByte('|')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func TestValidateTables(t *testing.T) {
	if err := ValidateTables(); err != nil {
		t.Fatalf("ValidateTables() = %v", err)
	}
}

func TestSchemasInGenerationOrder(t *testing.T) {
	want := []string{Products, Recipes, RecipeLines, Customers, Orders, OrderLines, Shipments, Returns, Waste, QualityInspections}
	got := Schemas()
	if len(got) != len(want) {
		t.Fatalf("got %d schemas, want %d", len(got), len(want))
	}
	for i, s := range got {
		if s.Name != want[i] {
			t.Errorf("schema %d = %s, want %s", i, s.Name, want[i])
		}
		seen := make(map[string]bool)
		for _, c := range s.Columns {
			if seen[c.Name] {
				t.Errorf("%s: duplicate column %s", s.Name, c.Name)
			}
			seen[c.Name] = true
		}
	}
	if _, ok := SchemaFor("nope"); ok {
		t.Error("SchemaFor(nope) should not resolve")
	}
}

func TestGenerationIsReproducible(t *testing.T) {
	a := tables(t, generateWorld(t, 42, 50))
	b := tables(t, generateWorld(t, 42, 50))
	for i := range a {
		if render(a[i]) != render(b[i]) {
			t.Errorf("%s differs between runs with the same seed", a[i].Name)
		}
	}

	c := tables(t, generateWorld(t, 43, 50))
	if render(a[0]) == render(c[0]) {
		t.Error("different seeds produced identical products")
	}
}

func TestRowCounts(t *testing.T) {
	w := generateWorld(t, 1, 37)
	counts := map[string]int{
		Products:           len(w.products),
		Recipes:            len(w.recipes),
		Customers:          len(w.customers),
		Orders:             len(w.orders),
		Shipments:          len(w.shipments),
		Returns:            len(w.returns),
		Waste:              len(w.waste),
		QualityInspections: len(w.inspections),
	}
	for name, n := range counts {
		if n != 37 {
			t.Errorf("%s: got %d rows, want 37", name, n)
		}
	}
}

func TestSmallScenario(t *testing.T) {
	env := newEnv(42)
	products, err := GenerateProducts(env, 10)
	if err != nil {
		t.Fatal(err)
	}
	customers, err := GenerateCustomers(env, 10)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range products {
		if want := fmt.Sprintf("PRD%06d", i+1); p.ProductID != want {
			t.Errorf("product %d id = %s, want %s", i, p.ProductID, want)
		}
	}
	for i, c := range customers {
		if want := fmt.Sprintf("CUS%07d", i+1); c.CustomerID != want {
			t.Errorf("customer %d id = %s, want %s", i, c.CustomerID, want)
		}
	}

	pool := ProductIDs(products)
	orders, lines, err := GenerateOrders(env, 5, CustomerIDs(customers), pool)
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 5 {
		t.Fatalf("got %d orders, want 5", len(orders))
	}
	byOrder := make(map[string][]decimal.Decimal)
	for _, l := range lines {
		if !contains(pool, l.ProductID) {
			t.Errorf("line %s references unknown product %s", l.OrderLineID, l.ProductID)
		}
		byOrder[l.OrderID] = append(byOrder[l.OrderID], l.LineTotal)
	}
	for _, o := range orders {
		n := len(byOrder[o.OrderID])
		if n < 1 || n > 8 {
			t.Errorf("%s has %d lines", o.OrderID, n)
		}
		_, _, total := OrderTotals(byOrder[o.OrderID], o.ShippingCost, o.DiscountAmount)
		if !total.Equal(o.TotalAmount) {
			t.Errorf("%s total %s, recomputed %s", o.OrderID, o.TotalAmount, total)
		}
	}
}

func TestReferencesResolve(t *testing.T) {
	w := generateWorld(t, 7, 200)
	products := set(ProductIDs(w.products)...)
	customers := set(CustomerIDs(w.customers)...)
	orders := set(OrderIDs(w.orders)...)
	recipes := set(RecipeIDs(w.recipes)...)

	for _, r := range w.recipes {
		if !products[r.ProductID] {
			t.Errorf("recipe %s: unknown product %s", r.RecipeID, r.ProductID)
		}
	}
	for _, l := range w.recipeLines {
		if !recipes[l.RecipeID] {
			t.Errorf("recipe line %s: unknown recipe %s", l.RecipeLineID, l.RecipeID)
		}
	}
	for _, o := range w.orders {
		if !customers[o.CustomerID] {
			t.Errorf("order %s: unknown customer %s", o.OrderID, o.CustomerID)
		}
	}
	for _, l := range w.orderLines {
		if !orders[l.OrderID] || !products[l.ProductID] {
			t.Errorf("order line %s: dangling reference", l.OrderLineID)
		}
	}
	for _, s := range w.shipments {
		if !orders[s.OrderID] {
			t.Errorf("shipment %s: unknown order %s", s.ShipmentID, s.OrderID)
		}
	}
	for _, r := range w.returns {
		if !orders[r.OrderID] || !products[r.ProductID] || !customers[r.CustomerID] {
			t.Errorf("return %s: dangling reference", r.ReturnID)
		}
		if !strings.HasPrefix(r.OrderLineID, r.OrderID+"-") {
			t.Errorf("return %s: order line %s not derived from %s", r.ReturnID, r.OrderLineID, r.OrderID)
		}
	}
	for _, x := range w.waste {
		if x.ProductID.Valid && !products[x.ProductID.Val] {
			t.Errorf("waste %s: unknown product %s", x.WasteID, x.ProductID.Val)
		}
	}
	for _, q := range w.inspections {
		if !products[q.ProductID] {
			t.Errorf("inspection %s: unknown product %s", q.InspectionID, q.ProductID)
		}
		if q.OrderID.Valid && !orders[q.OrderID.Val] {
			t.Errorf("inspection %s: unknown order %s", q.InspectionID, q.OrderID.Val)
		}
	}
}

func TestStatusConditionalFields(t *testing.T) {
	w := generateWorld(t, 11, 500)
	placed := make(map[string]time.Time, len(w.orders))
	for _, ref := range OrderRefs(w.orders) {
		placed[ref.ID] = ref.Placed
	}

	for _, p := range w.products {
		if want := p.UnitCost.Mul(p.markup).Round(2); !p.UnitPrice.Equal(want) {
			t.Errorf("product %s: unit_price %s, want %s", p.ProductID, p.UnitPrice, want)
		}
	}
	for _, r := range w.returns {
		if !within(placed[r.OrderID], r.RequestDate, 1, 90) {
			t.Errorf("return %s requested %d days after its order", r.ReturnID, days(placed[r.OrderID], r.RequestDate))
		}
		if r.RequestDate.After(testAsOf) {
			t.Errorf("return %s requested after the as-of date", r.ReturnID)
		}
		if r.ApprovedDate.Valid && !within(r.RequestDate, r.ApprovedDate.Val, 1, 3) {
			t.Errorf("return %s approved %d days after request", r.ReturnID, days(r.RequestDate, r.ApprovedDate.Val))
		}
		if r.RefundDate.Valid && !within(r.ReceivedDate.Val, r.RefundDate.Val, 1, 5) {
			t.Errorf("return %s refunded %d days after receipt", r.ReturnID, days(r.ReceivedDate.Val, r.RefundDate.Val))
		}
		if r.ReturnStatus == "Refunded" {
			want := r.UnitPrice.Mul(decimal.NewFromInt(int64(r.QuantityReturned))).Round(2)
			if !r.RefundAmount.Equal(want) {
				t.Errorf("return %s refunds %s, want %s", r.ReturnID, r.RefundAmount, want)
			}
		}

		if !approvedStatuses[r.ReturnStatus] && r.ApprovedDate.Valid {
			t.Errorf("return %s (%s) has approved_date", r.ReturnID, r.ReturnStatus)
		}
		if r.ReceivedDate.Valid && !r.ReceivedDate.Val.After(r.ApprovedDate.Val) {
			t.Errorf("return %s received on or before approval", r.ReturnID)
		}
		if r.ReturnStatus != "Refunded" && !r.RefundAmount.IsZero() {
			t.Errorf("return %s (%s) refunds %s", r.ReturnID, r.ReturnStatus, r.RefundAmount)
		}
	}
	for _, q := range w.inspections {
		if q.InspectionStatus != "Pass" {
			continue
		}
		if q.DefectType.Valid || q.SeverityLevel.Valid || q.Disposition != "Accept" {
			t.Errorf("passing inspection %s carries defect detail", q.InspectionID)
		}
	}
	for _, s := range w.shipments {
		if s.ExpectedDeliveryDate.Before(shipDay(s)) {
			t.Errorf("shipment %s expected before shipping", s.ShipmentID)
		}
		if lag := days(placed[s.OrderID], shipDay(s)); lag < 0 || lag > 7 {
			t.Errorf("shipment %s shipped %d days after its order", s.ShipmentID, lag)
		}
		if !shipDay(s).Before(testAsOf) {
			t.Errorf("shipment %s shipped on or after the as-of date", s.ShipmentID)
		}
		span := transitDays[s.ServiceLevel]
		if transit := days(shipDay(s), s.ExpectedDeliveryDate); transit < span[0] || transit > span[1] {
			t.Errorf("shipment %s (%s): %d transit days, want %d..%d", s.ShipmentID, s.ServiceLevel, transit, span[0], span[1])
		}
		if s.ActualDeliveryDate.Valid {
			if d := days(s.ExpectedDeliveryDate, s.ActualDeliveryDate.Val); d < -1 || d > 3 {
				t.Errorf("shipment %s delivered %d days from expected", s.ShipmentID, d)
			}
		}
		if (s.ShipmentStatus == "Delivered") != s.ActualDeliveryDate.Valid {
			t.Errorf("shipment %s (%s) actual delivery set=%v", s.ShipmentID, s.ShipmentStatus, s.ActualDeliveryDate.Valid)
		}
	}
	for _, x := range w.waste {
		if !contains(disposalOptions(x.WasteCategory), x.DisposalMethod) {
			t.Errorf("waste %s: %s not allowed for %s", x.WasteID, x.DisposalMethod, x.WasteCategory)
		}
		if want := x.Quantity.Mul(disposalCostPerUnit[x.DisposalMethod]).Round(2); !x.DisposalCost.Equal(want) {
			t.Errorf("waste %s: disposal_cost %s, want %s", x.WasteID, x.DisposalCost, want)
		}
		if x.DisposalMethod == "Resale" && x.DisposalCost.IsPositive() {
			t.Errorf("waste %s: resale should be a credit, got %s", x.WasteID, x.DisposalCost)
		}
	}
	for _, c := range w.customers {
		if c.CustomerType == "Individual" && (!c.CreditLimit.IsZero() || c.PaymentTermsDays != 0) {
			t.Errorf("individual %s has credit terms", c.CustomerID)
		}
	}
}

func TestInspectionStatusWeights(t *testing.T) {
	env := newEnv(3)
	rows, err := GenerateInspections(env, 5000, []string{"PRD000001"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	pass := 0
	for _, q := range rows {
		if q.InspectionStatus == "Pass" {
			pass++
		}
		if q.OrderID.Valid {
			t.Fatalf("inspection %s has an order with an empty order pool", q.InspectionID)
		}
	}
	if share := float64(pass) / float64(len(rows)); share < 0.77 || share > 0.83 {
		t.Errorf("pass share = %.3f, want about 0.80", share)
	}
}

func TestWasteWithoutProducts(t *testing.T) {
	rows, err := GenerateWaste(newEnv(5), 100, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range rows {
		if x.ProductID.Valid {
			t.Fatalf("waste %s references a product with an empty pool", x.WasteID)
		}
	}
}

func TestEmptyPoolsAreRejected(t *testing.T) {
	env := newEnv(1)
	if _, _, err := GenerateRecipes(env, 1, nil); err == nil {
		t.Error("recipes with no products should fail")
	}
	if _, _, err := GenerateOrders(env, 1, nil, []string{"PRD000001"}); err == nil {
		t.Error("orders with no customers should fail")
	}
	if _, err := GenerateShipments(env, 1, nil); err == nil {
		t.Error("shipments with no orders should fail")
	}
	if _, err := GenerateReturns(env, 1, []OrderRef{{ID: "ORD00000001", Placed: testAsOf.AddDate(0, 0, -30)}}, nil, []string{"CUS0000001"}); err == nil {
		t.Error("returns with no products should fail")
	}
	if _, err := GenerateInspections(env, 1, nil, nil); err == nil {
		t.Error("inspections with no products should fail")
	}
	if rows, err := GenerateShipments(env, 0, nil); err != nil || len(rows) != 0 {
		t.Errorf("zero shipments with no orders = %d rows, %v", len(rows), err)
	}
}

func TestVerifyCatchesBrokenRows(t *testing.T) {
	env := newEnv(9)
	orders, lines, err := GenerateOrders(env, 1, []string{"CUS0000001"}, []string{"PRD000001"})
	if err != nil {
		t.Fatal(err)
	}
	o := orders[0]
	o.TotalAmount = o.TotalAmount.Add(decimal.NewFromInt(1))
	err = o.verify(0, lines)

	var iv *InvariantViolation
	if !errors.As(err, &iv) {
		t.Fatalf("verify() = %v, want *InvariantViolation", err)
	}
	if iv.Entity != Orders || iv.Invariant != "total-amount" {
		t.Errorf("got %s/%s, want orders/total-amount", iv.Entity, iv.Invariant)
	}

	lines[0].LineStatus = "Bogus"
	if err := orders[0].verify(0, lines); err == nil {
		t.Error("line status drift should be caught")
	}
}

func findRow[T any](t *testing.T, rows []T, what string, match func(T) bool) T {
	t.Helper()
	for _, r := range rows {
		if match(r) {
			return r
		}
	}
	t.Fatalf("no %s in the generated rows", what)
	var zero T
	return zero
}

func TestVerifyRejectsBrokenRows(t *testing.T) {
	w := generateWorld(t, 21, 300)
	products := ProductIDs(w.products)
	cent := decimal.RequireFromString("0.01")

	recipe := w.recipes[0]
	var recipeLines []RecipeLine
	for _, l := range w.recipeLines {
		if l.RecipeID == recipe.RecipeID {
			recipeLines = append(recipeLines, l)
		}
	}
	delivered := findRow(t, w.shipments, "delivered shipment", func(s Shipment) bool { return s.ShipmentStatus == "Delivered" })
	refunded := findRow(t, w.returns, "refunded return", func(r Return) bool { return r.ReturnStatus == "Refunded" })
	approved := findRow(t, w.returns, "approved return", func(r Return) bool { return r.ApprovedDate.Valid })

	tests := []struct {
		name      string
		entity    string
		invariant string
		verify    func() error
	}{
		{"product subcategory", Products, "subcategory-of-category", func() error {
			p := w.products[0]
			p.Subcategory = "Gadgets"
			return p.verify(0)
		}},
		{"product price", Products, "unit-price", func() error {
			p := w.products[0]
			p.UnitPrice = p.UnitPrice.Add(cent)
			return p.verify(0)
		}},
		{"recipe total", Recipes, "total-material-cost", func() error {
			r := recipe
			r.TotalMaterialCost = r.TotalMaterialCost.Add(cent)
			return r.verify(0, recipeLines)
		}},
		{"recipe line cost", RecipeLines, "line-cost", func() error {
			lines := append([]RecipeLine(nil), recipeLines...)
			lines[0].LineCost = lines[0].LineCost.Add(cent)
			return recipe.verify(0, lines)
		}},
		{"customer type", Customers, "customer-type", func() error {
			c := w.customers[0]
			c.CustomerType = "Reseller"
			return c.verify(0)
		}},
		{"customer last order", Customers, "last-order-date", func() error {
			c := w.customers[0]
			c.LastOrderDate = dataset.Some(c.UpdatedDate.AddDate(0, 0, 1))
			return c.verify(0)
		}},
		{"shipment before order", Shipments, "shipment-date", func() error {
			s := w.shipments[0]
			s.ShippedAt = s.orderDate.AddDate(0, 0, -1)
			return s.verify(0)
		}},
		{"shipment transit", Shipments, "expected-delivery", func() error {
			s := w.shipments[0]
			s.ExpectedDeliveryDate = s.ExpectedDeliveryDate.AddDate(0, 0, 30)
			return s.verify(0)
		}},
		{"shipment late delivery", Shipments, "actual-delivery-window", func() error {
			s := delivered
			s.ActualDeliveryDate = dataset.Some(s.ExpectedDeliveryDate.AddDate(0, 0, 4))
			return s.verify(0)
		}},
		{"return request", Returns, "request-date", func() error {
			r := w.returns[0]
			r.RequestDate = r.orderDate.AddDate(0, 0, 91)
			return r.verify(0)
		}},
		{"return approval", Returns, "approved-date", func() error {
			r := approved
			r.ApprovedDate = dataset.Some(r.RequestDate.AddDate(0, 0, 4))
			return r.verify(0)
		}},
		{"return refund amount", Returns, "refund-amount", func() error {
			r := refunded
			r.RefundAmount = r.RefundAmount.Add(cent)
			return r.verify(0)
		}},
		{"return refund date", Returns, "refund-date", func() error {
			r := refunded
			r.RefundDate = dataset.Some(r.ReceivedDate.Val.AddDate(0, 0, 6))
			return r.verify(0)
		}},
		{"waste disposal cost", Waste, "disposal-cost", func() error {
			x := w.waste[0]
			x.DisposalCost = x.DisposalCost.Add(cent)
			return x.verify(0, products)
		}},
		{"waste product", Waste, "product-reference", func() error {
			x := w.waste[0]
			x.ProductID = dataset.Some("PRD999999")
			return x.verify(0, products)
		}},
		{"inspection specification", QualityInspections, "specification-met", func() error {
			q := w.inspections[0]
			q.SpecificationMet = !q.SpecificationMet
			return q.verify(0)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.verify()
			var iv *InvariantViolation
			if !errors.As(err, &iv) {
				t.Fatalf("verify() = %v, want *InvariantViolation", err)
			}
			if iv.Entity != tt.entity || iv.Invariant != tt.invariant {
				t.Errorf("got %s/%s, want %s/%s", iv.Entity, iv.Invariant, tt.entity, tt.invariant)
			}
		})
	}
}

func TestIdentifierExhaustion(t *testing.T) {
	env := newEnv(1)
	for i := 0; i < idgen.Product.Capacity(); i++ {
		if _, err := env.IDs.Next(idgen.Product); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := GenerateProducts(env, 1); err == nil {
		t.Error("expected exhaustion error")
	}
}
