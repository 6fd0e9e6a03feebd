package pricing

import "strings"

// Unit is a packet measurement unit as entered in the catalog.
type Unit string

const (
	// UnitGram is grams; compared per kilogram.
	UnitGram Unit = "gm"
	// UnitKilogram is kilograms.
	UnitKilogram Unit = "kg"
	// UnitMilliliter is milliliters; compared per liter.
	UnitMilliliter Unit = "ml"
	// UnitLiter is liters.
	UnitLiter Unit = "ltr"
	// UnitPiece is the per-piece currency unit ("tk").
	UnitPiece Unit = "tk"
	// UnitGeneric is the fallback for anything else.
	UnitGeneric Unit = "unit"
)

// ParseUnit maps a raw unit string to a known Unit. Unknown values fall
// through unchanged so free-form units from imports keep their label.
func ParseUnit(raw string) Unit {
	switch u := Unit(strings.ToLower(strings.TrimSpace(raw))); u {
	case UnitGram, UnitKilogram, UnitMilliliter, UnitLiter, UnitPiece:
		return u
	case "":
		return UnitGeneric
	default:
		return u
	}
}

// CompareUnit returns the standard unit this unit's prices are compared in.
func (u Unit) CompareUnit() Unit {
	switch u {
	case UnitGram:
		return UnitKilogram
	case UnitMilliliter:
		return UnitLiter
	default:
		return u
	}
}

func (u Unit) String() string { return string(u) }
