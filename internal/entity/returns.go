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

// Return is a customer return. OrderLineID is synthesized from the order id
// and a line number in 1..8; it may name a line that does not exist.
type Return struct {
	ReturnID          string
	OrderID           string
	OrderLineID       string
	ProductID         string
	CustomerID        string
	RequestDate       time.Time
	ReturnReason      string
	ReturnStatus      string
	QuantityReturned  int
	ReturnCondition   string
	ApprovedDate      dataset.Optional[time.Time]
	ReceivedDate      dataset.Optional[time.Time]
	RefundDate        dataset.Optional[time.Time]
	RefundMethod      dataset.Optional[string]
	UnitPrice         decimal.Decimal
	RefundAmount      decimal.Decimal
	RestockingFee     decimal.Decimal
	ShippingLabelCost decimal.Decimal
	IsWarrantyReturn  bool
	InspectorNotes    string
	CustomerComments  string
	UpdatedAt         time.Time

	orderDate time.Time
}

var ReturnSchema = dataset.Schema{
	Name: Returns,
	Columns: []dataset.Column{
		col("return_id", kStr),
		col("order_id", kStr),
		col("order_line_id", kStr),
		col("product_id", kStr),
		col("customer_id", kStr),
		col("return_request_date", kDate),
		col("return_reason", kStr),
		col("return_status", kStr),
		col("quantity_returned", kInt),
		col("return_condition", kStr),
		optional("approved_date", kDate),
		optional("received_date", kDate),
		optional("refund_date", kDate),
		optional("refund_method", kStr),
		col("unit_price", kDec),
		col("refund_amount", kDec),
		col("restocking_fee", kDec),
		col("shipping_label_cost", kDec),
		col("is_warranty_return", kBool),
		col("inspector_notes", kStr),
		col("customer_comments", kStr),
		col("created_date", kStamp),
		col("updated_date", kStamp),
	},
}

func (r Return) Values() []dataset.Value {
	return []dataset.Value{
		dataset.String(r.ReturnID),
		dataset.String(r.OrderID),
		dataset.String(r.OrderLineID),
		dataset.String(r.ProductID),
		dataset.String(r.CustomerID),
		dataset.Date(r.RequestDate),
		dataset.String(r.ReturnReason),
		dataset.String(r.ReturnStatus),
		dataset.Int(r.QuantityReturned),
		dataset.String(r.ReturnCondition),
		dataset.OptionalDate(r.ApprovedDate),
		dataset.OptionalDate(r.ReceivedDate),
		dataset.OptionalDate(r.RefundDate),
		dataset.OptionalString(r.RefundMethod),
		dataset.Money(r.UnitPrice),
		dataset.Money(r.RefundAmount),
		dataset.Money(r.RestockingFee),
		dataset.Money(r.ShippingLabelCost),
		dataset.Bool(r.IsWarrantyReturn),
		dataset.String(r.InspectorNotes),
		dataset.String(r.CustomerComments),
		dataset.DateTime(r.RequestDate),
		dataset.DateTime(r.UpdatedAt),
	}
}

// GenerateReturns builds count returns. The order, product and customer are
// drawn independently from their pools; the order line is a weak reference.
// A return is requested 1 to 90 days after its order, and not after the
// as-of date.
func GenerateReturns(env Env, count int, orders []OrderRef, products, customers []string) ([]Return, error) {
	if count > 0 && (len(orders) == 0 || len(products) == 0 || len(customers) == 0) {
		return nil, fmt.Errorf("returns: order (%d), product (%d) and customer (%d) pools must be non-empty",
			len(orders), len(products), len(customers))
	}
	out := make([]Return, 0, count)

	for i := 0; i < count; i++ {
		id, err := env.IDs.Next(idgen.Return)
		if err != nil {
			return nil, err
		}
		order := random.Choice(env.Src, orders)
		r := Return{
			ReturnID:    id,
			OrderID:     order.ID,
			OrderLineID: idgen.Line(order.ID, env.Src.Int(minOrderLines, maxOrderLines)),
			ProductID:   pick(env, products),
			CustomerID:  pick(env, customers),
			UpdatedAt:   env.AsOf,
		}
		r.orderDate = order.Placed
		r.RequestDate = r.orderDate.AddDate(0, 0, env.Src.Int(1, min(90, days(order.Placed, env.AsOf))))
		r.ReturnStatus = random.Choice(env.Src, returnStatuses)
		r.ReturnReason = random.Choice(env.Src, returnReasons)

		if approvedStatuses[r.ReturnStatus] {
			r.ApprovedDate = dataset.Some(r.RequestDate.AddDate(0, 0, env.Src.Int(1, 3)))
		}
		if receivedStatuses[r.ReturnStatus] {
			r.ReceivedDate = dataset.Some(r.ApprovedDate.Val.AddDate(0, 0, env.Src.Int(3, 10)))
		}
		refunded := r.ReturnStatus == "Refunded"
		if refunded {
			r.RefundDate = dataset.Some(r.ReceivedDate.Val.AddDate(0, 0, env.Src.Int(1, 5)))
		}

		r.QuantityReturned = env.Src.Int(1, 5)
		r.UnitPrice = env.Src.Decimal(10, 500, 2)
		r.RefundAmount = decimal.Zero
		if refunded {
			r.RefundAmount = times(r.UnitPrice, r.QuantityReturned)
		}
		r.RestockingFee = decimal.Zero
		if restockingReasons[r.ReturnReason] && env.Src.Chance(0.5) {
			r.RestockingFee = r.RefundAmount.Mul(restockingRate).Round(2)
		}

		r.ReturnCondition = random.Choice(env.Src, returnConditions)
		if refunded {
			r.RefundMethod = dataset.Some(random.Choice(env.Src, refundMethods))
		}
		r.ShippingLabelCost = env.Src.Decimal(5, 15, 2)
		r.IsWarrantyReturn = env.Src.Chance(0.2)
		if inspectedStatuses[r.ReturnStatus] {
			r.InspectorNotes = env.Src.Text(faker.KindSentence)
		}
		r.CustomerComments = env.Src.Text(faker.KindSentence)

		if err := r.verify(i); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func within(from, to time.Time, lo, hi int) bool {
	d := days(from, to)
	return d >= lo && d <= hi
}

func (r Return) verify(row int) error {
	if !within(r.orderDate, r.RequestDate, 1, 90) {
		return violation(Returns, row, "request-date", "requested %d days after order", days(r.orderDate, r.RequestDate))
	}
	if approvedStatuses[r.ReturnStatus] != r.ApprovedDate.Valid {
		return violation(Returns, row, "approved-date-presence", "status %q with approved date set=%v", r.ReturnStatus, r.ApprovedDate.Valid)
	}
	if r.ApprovedDate.Valid && !within(r.RequestDate, r.ApprovedDate.Val, 1, 3) {
		return violation(Returns, row, "approved-date", "approved %d days after request", days(r.RequestDate, r.ApprovedDate.Val))
	}
	if receivedStatuses[r.ReturnStatus] != r.ReceivedDate.Valid {
		return violation(Returns, row, "received-date-presence", "status %q with received date set=%v", r.ReturnStatus, r.ReceivedDate.Valid)
	}
	if r.ReceivedDate.Valid && !within(r.ApprovedDate.Val, r.ReceivedDate.Val, 1, 10) {
		return violation(Returns, row, "received-date", "received %d days after approval", days(r.ApprovedDate.Val, r.ReceivedDate.Val))
	}
	refunded := r.ReturnStatus == "Refunded"
	if refunded != r.RefundDate.Valid || refunded != r.RefundMethod.Valid {
		return violation(Returns, row, "refund-presence", "status %q with refund date set=%v, method set=%v", r.ReturnStatus, r.RefundDate.Valid, r.RefundMethod.Valid)
	}
	if refunded {
		if !within(r.ReceivedDate.Val, r.RefundDate.Val, 1, 5) {
			return violation(Returns, row, "refund-date", "refunded %d days after receipt", days(r.ReceivedDate.Val, r.RefundDate.Val))
		}
		if want := times(r.UnitPrice, r.QuantityReturned); !r.RefundAmount.Equal(want) {
			return violation(Returns, row, "refund-amount", "refund %s != round(quantity*unit_price) %s", r.RefundAmount, want)
		}
	} else if !r.RefundAmount.IsZero() {
		return violation(Returns, row, "refund-amount", "status %q refunds %s", r.ReturnStatus, r.RefundAmount)
	}
	if !r.RestockingFee.IsZero() {
		if !restockingReasons[r.ReturnReason] {
			return violation(Returns, row, "restocking-reason", "fee %s charged for reason %q", r.RestockingFee, r.ReturnReason)
		}
		if want := r.RefundAmount.Mul(restockingRate).Round(2); !r.RestockingFee.Equal(want) {
			return violation(Returns, row, "restocking-fee", "fee %s != 15%% of refund %s", r.RestockingFee, want)
		}
	}
	return nil
}
