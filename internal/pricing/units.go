// Package pricing holds the computation core of the tile business: unit
// conversion, line pricing, GST breakdowns and order totals. Everything in
// this package is pure and deterministic; persistence and transport live in
// the repository and handler layers.
package pricing

import "github.com/shopspring/decimal"

// Unit is the dimensional unit a tile size was entered in. Feet is the
// canonical unit; all stored widths and heights are in feet.
type Unit string

const (
	UnitFeet Unit = "ft"
	UnitMM   Unit = "mm"
	UnitInch Unit = "inch"
)

var (
	mmPerFoot     = decimal.NewFromFloat(304.8)
	inchesPerFoot = decimal.NewFromInt(12)
)

// ValidUnit reports whether u is a recognized input unit.
func ValidUnit(u Unit) bool {
	switch u {
	case UnitFeet, UnitMM, UnitInch:
		return true
	}
	return false
}

// ToFeet converts a dimension to the canonical unit. Values must be positive;
// zero or negative dimensions fail with ErrInvalidDimension.
func ToFeet(value decimal.Decimal, unit Unit) (decimal.Decimal, error) {
	if value.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidDimension
	}
	switch unit {
	case UnitFeet:
		return value, nil
	case UnitMM:
		return value.Div(mmPerFoot), nil
	case UnitInch:
		return value.Div(inchesPerFoot), nil
	default:
		return decimal.Zero, ErrInvalidDimension
	}
}

// AreaPerBox returns the sellable area of one box in square feet:
// width * height * tilesPerBox, all dimensions already in feet.
func AreaPerBox(widthFt, heightFt decimal.Decimal, tilesPerBox int) (decimal.Decimal, error) {
	if widthFt.LessThanOrEqual(decimal.Zero) || heightFt.LessThanOrEqual(decimal.Zero) || tilesPerBox <= 0 {
		return decimal.Zero, ErrInvalidDimension
	}
	return widthFt.Mul(heightFt).Mul(decimal.NewFromInt(int64(tilesPerBox))), nil
}
