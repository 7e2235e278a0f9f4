package reporting

import (
	"database/sql/driver"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

const amountPlaces = 2

var hundred = decimal.NewFromInt(100)

// Amount is a fixed two-place decimal value used for every monetary field and ratio.
type Amount struct {
	d decimal.Decimal
}

// Zero is the zero amount.
var Zero = Amount{}

// NewAmount rounds d to two places.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{d: d.Round(amountPlaces)}
}

// AmountFromInt builds an amount from a whole number.
func AmountFromInt(v int64) Amount {
	return Amount{d: decimal.NewFromInt(v)}
}

// AmountFromFloat builds an amount from a float, rounded to two places.
func AmountFromFloat(v float64) Amount {
	return NewAmount(decimal.NewFromFloat(v))
}

// ParseAmount parses a decimal string.
func ParseAmount(s string) (Amount, error) {
	if s == "" {
		return Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("reporting: parse amount %q: %w", s, err)
	}
	return NewAmount(d), nil
}

// MustAmount parses s and panics on malformed input. Intended for constants and tests.
func MustAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Decimal returns the underlying decimal.
func (a Amount) Decimal() decimal.Decimal { return a.d }

func (a Amount) Add(b Amount) Amount { return NewAmount(a.d.Add(b.d)) }
func (a Amount) Sub(b Amount) Amount { return NewAmount(a.d.Sub(b.d)) }
func (a Amount) Neg() Amount         { return NewAmount(a.d.Neg()) }

// MulRate multiplies by a policy rate and rounds.
func (a Amount) MulRate(rate decimal.Decimal) Amount { return NewAmount(a.d.Mul(rate)) }

// Ratio returns a / b, or zero when b is zero.
func (a Amount) Ratio(b Amount) Amount {
	if b.d.IsZero() {
		return Zero
	}
	return NewAmount(a.d.Div(b.d))
}

// Percent returns a / b * 100, or zero when b is zero.
func (a Amount) Percent(b Amount) Amount {
	if b.d.IsZero() {
		return Zero
	}
	return NewAmount(a.d.Mul(hundred).Div(b.d))
}

// DivInt divides by a count, or returns zero when n is zero.
func (a Amount) DivInt(n int) Amount {
	if n == 0 {
		return Zero
	}
	return NewAmount(a.d.Div(decimal.NewFromInt(int64(n))))
}

// Max returns the larger of a and b.
func (a Amount) Max(b Amount) Amount {
	if a.d.GreaterThanOrEqual(b.d) {
		return a
	}
	return b
}

func (a Amount) IsZero() bool              { return a.d.IsZero() }
func (a Amount) IsNegative() bool          { return a.d.IsNegative() }
func (a Amount) Equal(b Amount) bool       { return a.d.Equal(b.d) }
func (a Amount) Cmp(b Amount) int          { return a.d.Cmp(b.d) }
func (a Amount) GreaterThan(b Amount) bool { return a.d.GreaterThan(b.d) }

// Float64 returns the value as a float for spreadsheet cells and charts.
func (a Amount) Float64() float64 {
	f, _ := a.d.Float64()
	return f
}

// String renders the value with exactly two decimal places.
func (a Amount) String() string { return a.d.StringFixed(amountPlaces) }

// MarshalJSON renders the amount as a fixed two-place string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(a.String())), nil
}

// UnmarshalJSON accepts quoted or bare numbers.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*a = NewAmount(d)
	return nil
}

// Value writes the amount as a decimal string.
func (a Amount) Value() (driver.Value, error) {
	return a.String(), nil
}

// Scan reads NUMERIC, text or float columns. NULL scans as zero.
func (a *Amount) Scan(src any) error {
	if src == nil {
		*a = Zero
		return nil
	}
	var d decimal.Decimal
	if err := d.Scan(src); err != nil {
		return err
	}
	*a = NewAmount(d)
	return nil
}

// SumAmounts adds all values.
func SumAmounts(values ...Amount) Amount {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v.d)
	}
	return NewAmount(total)
}
