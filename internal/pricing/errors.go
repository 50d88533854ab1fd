package pricing

import "errors"

var (
	// ErrInvalidDimension rejects non-positive tile width, height or
	// tiles-per-box before any pricing runs.
	ErrInvalidDimension = errors.New("tile dimensions and tiles per box must be positive")

	// ErrDivisionByZero guards the price-per-box conversion. Area per box is
	// always positive for a sellable product, so hitting this indicates a
	// data consistency bug upstream.
	ErrDivisionByZero = errors.New("cannot derive price per sqft: area per box is zero")

	// ErrEmptyCart rejects order aggregation with no line items.
	ErrEmptyCart = errors.New("order must contain at least one item")
)
