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

const (
	minOrderLines = 1
	maxOrderLines = 8
)

type Order struct {
	OrderID            string
	CustomerID         string
	OrderedAt          time.Time
	OrderStatus        string
	PaymentMethod      string
	ShippingAddress    string
	ShippingCity       string
	ShippingState      string
	ShippingPostalCode string
	BillingAddress     string
	BillingCity        string
	BillingState       string
	BillingPostalCode  string
	Subtotal           decimal.Decimal
	TaxAmount          decimal.Decimal
	ShippingCost       decimal.Decimal
	DiscountAmount     decimal.Decimal
	TotalAmount        decimal.Decimal
	LineCount          int
	Notes              string
	UpdatedAt          time.Time
}

type OrderLine struct {
	OrderLineID     string
	OrderID         string
	ProductID       string
	Quantity        int
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	LineTotal       decimal.Decimal
	LineStatus      string
	Notes           string
}

var OrderSchema = dataset.Schema{
	Name: Orders,
	Columns: []dataset.Column{
		col("order_id", kStr),
		col("customer_id", kStr),
		col("order_date", kDate),
		col("order_time", kClock),
		col("order_status", kStr),
		col("payment_method", kStr),
		col("shipping_address", kStr),
		col("shipping_city", kStr),
		col("shipping_state", kStr),
		col("shipping_postal_code", kStr),
		col("billing_address", kStr),
		col("billing_city", kStr),
		col("billing_state", kStr),
		col("billing_postal_code", kStr),
		col("subtotal", kDec),
		col("tax_amount", kDec),
		col("shipping_cost", kDec),
		col("discount_amount", kDec),
		col("total_amount", kDec),
		col("line_count", kInt),
		col("notes", kStr),
		col("created_date", kStamp),
		col("updated_date", kStamp),
	},
}

var OrderLineSchema = dataset.Schema{
	Name: OrderLines,
	Columns: []dataset.Column{
		col("order_line_id", kStr),
		col("order_id", kStr),
		col("product_id", kStr),
		col("quantity", kInt),
		col("unit_price", kDec),
		col("discount_percent", kDec),
		col("line_total", kDec),
		col("line_status", kStr),
		col("notes", kStr),
	},
}

func (o Order) Values() []dataset.Value {
	return []dataset.Value{
		dataset.String(o.OrderID),
		dataset.String(o.CustomerID),
		dataset.Date(o.OrderedAt),
		dataset.Clock(o.OrderedAt),
		dataset.String(o.OrderStatus),
		dataset.String(o.PaymentMethod),
		dataset.String(o.ShippingAddress),
		dataset.String(o.ShippingCity),
		dataset.String(o.ShippingState),
		dataset.String(o.ShippingPostalCode),
		dataset.String(o.BillingAddress),
		dataset.String(o.BillingCity),
		dataset.String(o.BillingState),
		dataset.String(o.BillingPostalCode),
		dataset.Money(o.Subtotal),
		dataset.Money(o.TaxAmount),
		dataset.Money(o.ShippingCost),
		dataset.Money(o.DiscountAmount),
		dataset.Money(o.TotalAmount),
		dataset.Int(o.LineCount),
		dataset.String(o.Notes),
		dataset.DateTime(o.OrderedAt),
		dataset.DateTime(o.UpdatedAt),
	}
}

func (l OrderLine) Values() []dataset.Value {
	return []dataset.Value{
		dataset.String(l.OrderLineID),
		dataset.String(l.OrderID),
		dataset.String(l.ProductID),
		dataset.Int(l.Quantity),
		dataset.Money(l.UnitPrice),
		dataset.Money(l.DiscountPercent),
		dataset.Money(l.LineTotal),
		dataset.String(l.LineStatus),
		dataset.String(l.Notes),
	}
}

// OrderTotals derives subtotal, tax and total from line totals and the
// order's own shipping and discount amounts.
func OrderTotals(lineTotals []decimal.Decimal, shipping, discount decimal.Decimal) (subtotal, tax, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, t := range lineTotals {
		subtotal = subtotal.Add(t)
	}
	subtotal = subtotal.Round(2)
	tax = subtotal.Mul(taxRate).Round(2)
	total = subtotal.Add(tax).Add(shipping).Sub(discount).Round(2)
	return subtotal, tax, total
}

// GenerateOrders builds count orders for customers in customers, each with
// 1 to 8 lines for products in products. Every line inherits the order's
// status, and the order's money fields are folded in from its lines.
func GenerateOrders(env Env, count int, customers, products []string) ([]Order, []OrderLine, error) {
	if count > 0 && (len(customers) == 0 || len(products) == 0) {
		return nil, nil, fmt.Errorf("orders: customer pool (%d) and product pool (%d) must be non-empty", len(customers), len(products))
	}
	orders := make([]Order, 0, count)
	var lines []OrderLine

	for i := 0; i < count; i++ {
		id, err := env.IDs.Next(idgen.Order)
		if err != nil {
			return nil, nil, err
		}
		o := Order{
			OrderID:            id,
			CustomerID:         pick(env, customers),
			OrderedAt:          env.Src.TimeOfDay(env.Src.DaysBefore(env.AsOf, 1, 730)),
			OrderStatus:        random.Choice(env.Src, orderStatuses),
			PaymentMethod:      random.Choice(env.Src, paymentMethods),
			ShippingAddress:    env.Src.Text(faker.KindAddress),
			ShippingCity:       env.Src.Text(faker.KindCity),
			ShippingState:      env.Src.Text(faker.KindState),
			ShippingPostalCode: env.Src.Text(faker.KindPostalCode),
			BillingAddress:     env.Src.Text(faker.KindAddress),
			BillingCity:        env.Src.Text(faker.KindCity),
			BillingState:       env.Src.Text(faker.KindState),
			BillingPostalCode:  env.Src.Text(faker.KindPostalCode),
			ShippingCost:       env.Src.Decimal(0, 50, 2),
			DiscountAmount:     decimal.Zero,
			UpdatedAt:          env.AsOf,
		}
		if env.Src.Chance(0.3) {
			o.DiscountAmount = env.Src.Decimal(0, 100, 2)
		}
		o.Notes = orBlank(env, 0.2, faker.KindSentence)

		n := env.Src.Int(minOrderLines, maxOrderLines)
		children := make([]OrderLine, 0, n)
		totals := make([]decimal.Decimal, 0, n)
		for j := 0; j < n; j++ {
			l := OrderLine{
				OrderLineID:     idgen.Line(id, j+1),
				OrderID:         id,
				ProductID:       pick(env, products),
				Quantity:        env.Src.Int(1, 20),
				UnitPrice:       env.Src.Decimal(10, 500, 2),
				DiscountPercent: decimal.Zero,
				LineStatus:      o.OrderStatus,
			}
			if env.Src.Chance(0.2) {
				l.DiscountPercent = env.Src.Decimal(0, 20, 2)
			}
			l.LineTotal = times(l.UnitPrice, l.Quantity)
			totals = append(totals, l.LineTotal)
			children = append(children, l)
		}
		o.LineCount = len(children)
		o.Subtotal, o.TaxAmount, o.TotalAmount = OrderTotals(totals, o.ShippingCost, o.DiscountAmount)

		if err := o.verify(i, children); err != nil {
			return nil, nil, err
		}
		orders = append(orders, o)
		lines = append(lines, children...)
	}
	return orders, lines, nil
}

func (o Order) verify(row int, lines []OrderLine) error {
	if n := len(lines); n < minOrderLines || n > maxOrderLines {
		return violation(Orders, row, "line-count", "%d lines, want %d..%d", n, minOrderLines, maxOrderLines)
	}
	if o.LineCount != len(lines) {
		return violation(Orders, row, "line-count", "line_count %d != %d children", o.LineCount, len(lines))
	}
	totals := make([]decimal.Decimal, 0, len(lines))
	for _, l := range lines {
		if l.OrderID != o.OrderID {
			return violation(OrderLines, row, "parent-reference", "line %s points at %s", l.OrderLineID, l.OrderID)
		}
		if l.LineStatus != o.OrderStatus {
			return violation(OrderLines, row, "line-status", "line %s status %q != order status %q", l.OrderLineID, l.LineStatus, o.OrderStatus)
		}
		if want := times(l.UnitPrice, l.Quantity); !l.LineTotal.Equal(want) {
			return violation(OrderLines, row, "line-total", "line %s total %s != round(quantity*unit_price) %s", l.OrderLineID, l.LineTotal, want)
		}
		totals = append(totals, l.LineTotal)
	}
	subtotal, tax, total := OrderTotals(totals, o.ShippingCost, o.DiscountAmount)
	if !o.Subtotal.Equal(subtotal) {
		return violation(Orders, row, "subtotal", "subtotal %s != sum of line totals %s", o.Subtotal, subtotal)
	}
	if !o.TaxAmount.Equal(tax) {
		return violation(Orders, row, "tax-amount", "tax %s != round(subtotal*0.08) %s", o.TaxAmount, tax)
	}
	if !o.TotalAmount.Equal(total) {
		return violation(Orders, row, "total-amount", "total %s != %s", o.TotalAmount, total)
	}
	return nil
}

// OrderRef is what shipments and returns need to know about an order.
type OrderRef struct {
	ID     string
	Placed time.Time // midnight of order_date
}

func OrderRefs(rows []Order) []OrderRef {
	refs := make([]OrderRef, len(rows))
	for i, r := range rows {
		refs[i] = OrderRef{ID: r.OrderID, Placed: midnight(r.OrderedAt)}
	}
	return refs
}

func OrderIDs(rows []Order) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.OrderID
	}
	return ids
}
