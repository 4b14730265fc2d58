package dataset

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	TimeLayout     = "15:04:05"
)

// Kind is the declared type of a column.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindDecimal
	KindBool
	KindDate
	KindDateTime
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindDecimal:
		return "decimal"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	case KindDateTime:
		return "datetime"
	case KindTime:
		return "time"
	default:
		return "unknown"
	}
}

// Value is one typed cell. A null Value still carries the column kind.
type Value struct {
	kind  Kind
	null  bool
	str   string
	num   int64
	dec   decimal.Decimal
	scale int32
	flag  bool
	at    time.Time
}

func String(s string) Value { return Value{kind: KindString, str: s} }
func Int(n int) Value       { return Value{kind: KindInt, num: int64(n)} }
func Bool(b bool) Value     { return Value{kind: KindBool, flag: b} }

// Money is a decimal rendered with two places.
func Money(d decimal.Decimal) Value { return Decimal(d, 2) }

// Decimal is a fixed-point value rendered with scale places.
func Decimal(d decimal.Decimal, scale int32) Value {
	return Value{kind: KindDecimal, dec: d.Round(scale), scale: scale}
}

func Date(t time.Time) Value     { return Value{kind: KindDate, at: t} }
func DateTime(t time.Time) Value { return Value{kind: KindDateTime, at: t} }
func Clock(t time.Time) Value    { return Value{kind: KindTime, at: t} }

// Null returns an absent value of kind k.
func Null(k Kind) Value { return Value{kind: k, null: true} }

func OptionalString(o Optional[string]) Value {
	if !o.Valid {
		return Null(KindString)
	}
	return String(o.Val)
}

func OptionalDate(o Optional[time.Time]) Value {
	if !o.Valid {
		return Null(KindDate)
	}
	return Date(o.Val)
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.null }

// Text renders the cell for text artifacts. ok is false for null cells.
func (v Value) Text() (s string, ok bool) {
	if v.null {
		return "", false
	}
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.num, 10), true
	case KindDecimal:
		return v.dec.StringFixed(v.scale), true
	case KindBool:
		return strconv.FormatBool(v.flag), true
	case KindDate:
		return v.at.Format(DateLayout), true
	case KindDateTime:
		return v.at.Format(DateTimeLayout), true
	case KindTime:
		return v.at.Format(TimeLayout), true
	default:
		return v.str, true
	}
}

// Native returns a Go value suitable for JSON encoding or a SQL driver:
// nil, string, int64, bool or json.Number for decimals.
func (v Value) Native() any {
	if v.null {
		return nil
	}
	switch v.kind {
	case KindInt:
		return v.num
	case KindDecimal:
		return json.Number(v.dec.StringFixed(v.scale))
	case KindBool:
		return v.flag
	default:
		s, _ := v.Text()
		return s
	}
}

// Number returns the decimal payload. Zero for non-decimal cells.
func (v Value) Number() decimal.Decimal {
	return v.dec
}
