// Package pricing computes normalized per-unit prices for catalog products.
//
// A product sold in a small unit (grams, milliliters) is priced per its
// standard unit (kilogram, liter) so shelf labels can carry a comparable
// price. The product keeps its original unit for display; the converted
// unit is only exposed as the compare unit.
package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

// smallToStandard is the gm->kg / ml->ltr conversion factor.
var smallToStandard = decimal.NewFromInt(1000)

// Normalized is the result of normalizing a (size, unit, price) triple.
type Normalized struct {
	// PerUnitPrice is the price per compare unit, fixed to two decimals.
	// Empty when the input was invalid.
	PerUnitPrice string
	// CompareUnit is the unit PerUnitPrice is expressed in. Empty when the
	// input was invalid.
	CompareUnit Unit
}

// Normalize computes the per-unit price for a packet of the given size,
// unit and price. It never fails: size <= 0, price <= 0 or non-finite
// input yields a zero Normalized.
func Normalize(size float64, unit Unit, price float64) Normalized {
	if !validAmount(size) || !validAmount(price) {
		return Normalized{}
	}

	perUnit := decimal.NewFromFloat(price).Div(decimal.NewFromFloat(size))
	switch unit {
	case UnitGram, UnitMilliliter:
		perUnit = perUnit.Mul(smallToStandard)
	}

	return Normalized{
		PerUnitPrice: perUnit.StringFixed(2),
		CompareUnit:  unit.CompareUnit(),
	}
}

func validAmount(v float64) bool {
	return v > 0 && !math.IsInf(v, 1) && !math.IsNaN(v)
}
