package entity

import (
	"time"

	"github.com/Lumos-Labs-HQ/synthgen/internal/dataset"
	"github.com/Lumos-Labs-HQ/synthgen/internal/faker"
	"github.com/Lumos-Labs-HQ/synthgen/internal/idgen"
	"github.com/Lumos-Labs-HQ/synthgen/internal/random"
	"github.com/shopspring/decimal"
)

type Customer struct {
	CustomerID         string
	CustomerType       string
	CustomerName       string
	Email              string
	Phone              string
	AddressLine1       string
	AddressLine2       string
	City               string
	State              string
	PostalCode         string
	Country            string
	CustomerSegment    string
	LifetimeValue      decimal.Decimal
	TotalOrders        int
	IsActive           bool
	CreditLimit        decimal.Decimal
	PaymentTermsDays   int
	AccountCreatedDate time.Time
	LastOrderDate      dataset.Optional[time.Time]
	UpdatedDate        time.Time
}

var CustomerSchema = dataset.Schema{
	Name: Customers,
	Columns: []dataset.Column{
		col("customer_id", kStr),
		col("customer_type", kStr),
		col("customer_name", kStr),
		col("email", kStr),
		col("phone", kStr),
		col("address_line1", kStr),
		col("address_line2", kStr),
		col("city", kStr),
		col("state", kStr),
		col("postal_code", kStr),
		col("country", kStr),
		col("customer_segment", kStr),
		col("lifetime_value", kDec),
		col("total_orders", kInt),
		col("is_active", kBool),
		col("credit_limit", kDec),
		col("payment_terms_days", kInt),
		col("account_created_date", kDate),
		optional("last_order_date", kDate),
		col("updated_date", kDate),
	},
}

func (c Customer) Values() []dataset.Value {
	return []dataset.Value{
		dataset.String(c.CustomerID),
		dataset.String(c.CustomerType),
		dataset.String(c.CustomerName),
		dataset.String(c.Email),
		dataset.String(c.Phone),
		dataset.String(c.AddressLine1),
		dataset.String(c.AddressLine2),
		dataset.String(c.City),
		dataset.String(c.State),
		dataset.String(c.PostalCode),
		dataset.String(c.Country),
		dataset.String(c.CustomerSegment),
		dataset.Money(c.LifetimeValue),
		dataset.Int(c.TotalOrders),
		dataset.Bool(c.IsActive),
		dataset.Money(c.CreditLimit),
		dataset.Int(c.PaymentTermsDays),
		dataset.Date(c.AccountCreatedDate),
		dataset.OptionalDate(c.LastOrderDate),
		dataset.Date(c.UpdatedDate),
	}
}

// GenerateCustomers builds count customers. Business customers carry a
// company name and credit terms; individuals get a person's name and none.
func GenerateCustomers(env Env, count int) ([]Customer, error) {
	out := make([]Customer, 0, count)
	for i := 0; i < count; i++ {
		id, err := env.IDs.Next(idgen.Customer)
		if err != nil {
			return nil, err
		}
		kind := random.Choice(env.Src, customerTypes)
		business := kind == "Business"

		c := Customer{
			CustomerID:         id,
			CustomerType:       kind,
			CustomerSegment:    random.Choice(env.Src, customerSegments),
			AccountCreatedDate: env.Src.DaysBefore(env.AsOf, 1, 1825),
			Email:              env.Src.Text(faker.KindEmail),
			Phone:              env.Src.Text(faker.KindPhone),
			AddressLine1:       env.Src.Text(faker.KindAddress),
			AddressLine2:       orBlank(env, 0.3, faker.KindSecondaryAddress),
			City:               env.Src.Text(faker.KindCity),
			State:              env.Src.Text(faker.KindState),
			PostalCode:         env.Src.Text(faker.KindPostalCode),
			Country:            "USA",
			LifetimeValue:      env.Src.Decimal(100, 50000, 2),
			TotalOrders:        env.Src.Int(0, 150),
			IsActive:           env.Src.Chance(0.85),
			CreditLimit:        decimal.Zero,
			UpdatedDate:        env.AsOf,
		}
		if business {
			c.CustomerName = env.Src.Text(faker.KindCompany)
			c.CreditLimit = env.Src.Decimal(1000, 100000, 2)
			c.PaymentTermsDays = random.Choice(env.Src, paymentTerms)
		} else {
			c.CustomerName = env.Src.Text(faker.KindName)
		}
		if env.Src.Chance(0.8) {
			c.LastOrderDate = dataset.Some(env.Src.DaysBefore(env.AsOf, 1, 180))
		}

		if err := c.verify(i); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (c Customer) verify(row int) error {
	switch c.CustomerType {
	case "Individual":
		if !c.CreditLimit.IsZero() || c.PaymentTermsDays != 0 {
			return violation(Customers, row, "individual-credit", "individual has credit_limit %s, terms %d", c.CreditLimit, c.PaymentTermsDays)
		}
	case "Business":
		if c.CreditLimit.LessThan(decimal.NewFromInt(1000)) {
			return violation(Customers, row, "business-credit", "credit_limit %s below 1000", c.CreditLimit)
		}
	default:
		return violation(Customers, row, "customer-type", "unknown type %q", c.CustomerType)
	}
	if c.LastOrderDate.Valid && c.LastOrderDate.Val.After(c.UpdatedDate) {
		return violation(Customers, row, "last-order-date", "last order %s after as-of date", c.LastOrderDate.Val.Format(dataset.DateLayout))
	}
	return nil
}

func CustomerIDs(rows []Customer) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.CustomerID
	}
	return ids
}
