package kernel

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Quantity is an exact decimal amount expressed in some unit of measure.
// The zero value is a valid quantity of 0. Arithmetic never rounds, so
// conversions between units keep their full precision until displayed.
type Quantity struct {
	value decimal.Decimal
}

// Zero is the zero quantity.
var Zero = Quantity{}

// One is the unit quantity, the default increment of a scan.
var One = QuantityFromInt(1)

// QuantityFromInt builds a quantity from an integer count.
func QuantityFromInt(v int64) Quantity {
	return Quantity{value: decimal.NewFromInt(v)}
}

// QuantityFromDecimal wraps an existing decimal.
func QuantityFromDecimal(v decimal.Decimal) Quantity {
	return Quantity{value: v}
}

// QuantityFromString parses a decimal string such as "12" or "0.083333".
func QuantityFromString(s string) (Quantity, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	return Quantity{value: v}, nil
}

// QuantityFromFloat is used by adapters reading float columns.
func QuantityFromFloat(v float64) Quantity {
	return Quantity{value: decimal.NewFromFloat(v)}
}

func (q Quantity) Decimal() decimal.Decimal {
	return q.value
}

func (q Quantity) Add(other Quantity) Quantity {
	return Quantity{value: q.value.Add(other.value)}
}

func (q Quantity) Sub(other Quantity) Quantity {
	return Quantity{value: q.value.Sub(other.value)}
}

func (q Quantity) Mul(other Quantity) Quantity {
	return Quantity{value: q.value.Mul(other.value)}
}

// Div divides with decimal.DivisionPrecision digits. Dividing by zero returns Zero.
func (q Quantity) Div(other Quantity) Quantity {
	if other.IsZero() {
		return Zero
	}
	return Quantity{value: q.value.Div(other.value)}
}

func (q Quantity) IsZero() bool {
	return q.value.IsZero()
}

func (q Quantity) IsPositive() bool {
	return q.value.IsPositive()
}

func (q Quantity) GreaterThan(other Quantity) bool {
	return q.value.GreaterThan(other.value)
}

func (q Quantity) LessThan(other Quantity) bool {
	return q.value.LessThan(other.value)
}

func (q Quantity) Equal(other Quantity) bool {
	return q.value.Equal(other.value)
}

// Min returns the smaller of q and other.
func (q Quantity) Min(other Quantity) Quantity {
	if other.LessThan(q) {
		return other
	}
	return q
}

// Max returns the larger of q and other.
func (q Quantity) Max(other Quantity) Quantity {
	if other.GreaterThan(q) {
		return other
	}
	return q
}

// Round returns q rounded half away from zero to places decimals.
func (q Quantity) Round(places int32) Quantity {
	return Quantity{value: q.value.Round(places)}
}

func (q Quantity) String() string {
	return q.value.String()
}
