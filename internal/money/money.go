// Package money represents game currency as integer cents. Keeping amounts
// integral makes payout-sum checks exact instead of tolerance-based.
package money

import (
	"fmt"
	"math"
)

// Amount is a sum of money in cents. The zero value is $0.00.
type Amount int64

// FromCents builds an Amount from a raw cent count.
func FromCents(c int64) Amount {
	return Amount(c)
}

// FromDollars converts a dollar value to the nearest cent.
func FromDollars(d float64) Amount {
	return Amount(math.Round(d * 100))
}

// Cents returns the raw cent count.
func (a Amount) Cents() int64 {
	return int64(a)
}

// Dollars returns the amount as a float dollar value. Display only; all
// arithmetic stays in cents.
func (a Amount) Dollars() float64 {
	return float64(a) / 100
}

// String formats the amount as dollars with two decimal places, e.g. "$12.34".
func (a Amount) String() string {
	if a < 0 {
		return fmt.Sprintf("-$%d.%02d", -a/100, -a%100)
	}
	return fmt.Sprintf("$%d.%02d", a/100, a%100)
}
