package currency

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
)

var ErrInvalidCurrency = errors.New("invalid currency")

func (c Currency) String() string {
	return string(c)
}

func (c Currency) Value() (driver.Value, error) {
	return c.String(), nil
}

func ParseCurrency(s string) (Currency, error) {
	switch s {
	case CurrencyUSD.String():
		return CurrencyUSD, nil
	default:
		return "", ErrInvalidCurrency
	}
}

// Cents is a currency amount in integer minor units. All internal
// arithmetic happens in Cents; floats exist only at the JSON boundary.
type Cents int64

// FromFloat converts a major-unit amount (e.g. 3.50) to Cents, rounding
// half away from zero.
func FromFloat(amount float64) Cents {
	return Cents(math.Round(amount * 100))
}

// Float64 converts back to a major-unit amount for wire serialization.
func (c Cents) Float64() float64 {
	return float64(c) / 100
}

// Mul multiplies the amount by an integer quantity.
func (c Cents) Mul(qty int) Cents {
	return c * Cents(qty)
}

func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
