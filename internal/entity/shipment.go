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

type Shipment struct {
	ShipmentID            string
	OrderID               string
	TrackingNumber        string
	Carrier               string
	ServiceLevel          string
	ShippedAt             time.Time
	ExpectedDeliveryDate  time.Time
	ActualDeliveryDate    dataset.Optional[time.Time]
	ShipmentStatus        string
	OriginWarehouse       string
	DestinationCity       string
	DestinationState      string
	DestinationPostalCode string
	WeightKg              decimal.Decimal
	Dimensions            string
	ShippingCost          decimal.Decimal
	PackageCount          int
	IsSignatureRequired   bool
	IsInsured             bool
	InsuranceValue        decimal.Decimal
	DeliveryNotes         string
	UpdatedAt             time.Time

	orderDate time.Time
}

var ShipmentSchema = dataset.Schema{
	Name: Shipments,
	Columns: []dataset.Column{
		col("shipment_id", kStr),
		col("order_id", kStr),
		col("tracking_number", kStr),
		col("carrier", kStr),
		col("service_level", kStr),
		col("shipment_date", kDate),
		col("expected_delivery_date", kDate),
		optional("actual_delivery_date", kDate),
		col("shipment_status", kStr),
		col("origin_warehouse", kStr),
		col("destination_city", kStr),
		col("destination_state", kStr),
		col("destination_postal_code", kStr),
		col("weight_kg", kDec),
		col("dimensions_cm", kStr),
		col("shipping_cost", kDec),
		col("package_count", kInt),
		col("is_signature_required", kBool),
		col("is_insured", kBool),
		col("insurance_value", kDec),
		col("delivery_notes", kStr),
		col("created_date", kStamp),
		col("updated_date", kStamp),
	},
}

func (s Shipment) Values() []dataset.Value {
	return []dataset.Value{
		dataset.String(s.ShipmentID),
		dataset.String(s.OrderID),
		dataset.String(s.TrackingNumber),
		dataset.String(s.Carrier),
		dataset.String(s.ServiceLevel),
		dataset.Date(s.ShippedAt),
		dataset.Date(s.ExpectedDeliveryDate),
		dataset.OptionalDate(s.ActualDeliveryDate),
		dataset.String(s.ShipmentStatus),
		dataset.String(s.OriginWarehouse),
		dataset.String(s.DestinationCity),
		dataset.String(s.DestinationState),
		dataset.String(s.DestinationPostalCode),
		dataset.Money(s.WeightKg),
		dataset.String(s.Dimensions),
		dataset.Money(s.ShippingCost),
		dataset.Int(s.PackageCount),
		dataset.Bool(s.IsSignatureRequired),
		dataset.Bool(s.IsInsured),
		dataset.Money(s.InsuranceValue),
		dataset.String(s.DeliveryNotes),
		dataset.DateTime(s.ShippedAt),
		dataset.DateTime(s.UpdatedAt),
	}
}

// GenerateShipments builds count shipments against orders. Orders are drawn
// with replacement, so one order may ship more than once. A shipment leaves
// 0 to 7 days after its order is placed and never on or after the as-of date.
func GenerateShipments(env Env, count int, orders []OrderRef) ([]Shipment, error) {
	if count > 0 && len(orders) == 0 {
		return nil, fmt.Errorf("shipments: order pool is empty")
	}
	out := make([]Shipment, 0, count)

	for i := 0; i < count; i++ {
		id, err := env.IDs.Next(idgen.Shipment)
		if err != nil {
			return nil, err
		}
		order := random.Choice(env.Src, orders)
		lag := min(maxShipLag, days(order.Placed, env.AsOf)-1)
		s := Shipment{
			ShipmentID:     id,
			OrderID:        order.ID,
			ShippedAt:      env.Src.TimeOfDay(order.Placed.AddDate(0, 0, env.Src.Int(0, lag))),
			ShipmentStatus: random.Choice(env.Src, shipmentStatuses),
			Carrier:        random.Choice(env.Src, carriers),
			ServiceLevel:   random.Choice(env.Src, serviceLevels),
			InsuranceValue: decimal.Zero,
			UpdatedAt:      env.AsOf,
			orderDate:      order.Placed,
		}
		span := transitDays[s.ServiceLevel]
		s.ExpectedDeliveryDate = shipDay(s).AddDate(0, 0, env.Src.Int(span[0], span[1]))
		if s.ShipmentStatus == "Delivered" {
			s.ActualDeliveryDate = dataset.Some(s.ExpectedDeliveryDate.AddDate(0, 0, env.Src.Int(-1, 3)))
		}

		s.TrackingNumber = fmt.Sprintf("%s%d", strings.ToUpper(s.Carrier[:3]), env.Src.Int(100000000, 999999999))
		s.OriginWarehouse = "WH-" + random.Choice(env.Src, warehouses)
		s.DestinationCity = env.Src.Text(faker.KindCity)
		s.DestinationState = env.Src.Text(faker.KindState)
		s.DestinationPostalCode = env.Src.Text(faker.KindPostalCode)
		s.WeightKg = env.Src.Decimal(0.5, 50, 2)
		s.Dimensions = dims(env)
		s.ShippingCost = env.Src.Decimal(5, 150, 2)
		s.PackageCount = env.Src.Int(1, 5)
		s.IsSignatureRequired = env.Src.Chance(0.2)
		s.IsInsured = env.Src.Chance(0.3)
		if env.Src.Chance(0.3) {
			s.InsuranceValue = env.Src.Decimal(100, 5000, 2)
		}
		s.DeliveryNotes = orBlank(env, 0.2, faker.KindSentence)

		if err := s.verify(i); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

const maxShipLag = 7

func shipDay(s Shipment) time.Time {
	return midnight(s.ShippedAt)
}

func (s Shipment) verify(row int) error {
	if lag := days(s.orderDate, shipDay(s)); lag < 0 || lag > maxShipLag {
		return violation(Shipments, row, "shipment-date", "shipped %d days after order", lag)
	}
	span, ok := transitDays[s.ServiceLevel]
	if !ok {
		return violation(Shipments, row, "service-level", "unknown service level %q", s.ServiceLevel)
	}
	transit := days(shipDay(s), s.ExpectedDeliveryDate)
	if transit < span[0] || transit > span[1] {
		return violation(Shipments, row, "expected-delivery", "%d transit days for %s, want %d..%d", transit, s.ServiceLevel, span[0], span[1])
	}
	delivered := s.ShipmentStatus == "Delivered"
	if delivered != s.ActualDeliveryDate.Valid {
		return violation(Shipments, row, "actual-delivery-presence", "status %q with actual delivery set=%v", s.ShipmentStatus, s.ActualDeliveryDate.Valid)
	}
	if delivered {
		if d := days(s.ExpectedDeliveryDate, s.ActualDeliveryDate.Val); d < -1 || d > 3 {
			return violation(Shipments, row, "actual-delivery-window", "delivered %d days from expected", d)
		}
	}
	return nil
}
