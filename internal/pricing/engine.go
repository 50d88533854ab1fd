package pricing

import "github.com/shopspring/decimal"

// ProductSnapshot is the slice of a catalog product the pricing engine needs.
// Taking a snapshot keeps priced lines stable even if the catalog price
// changes while an order is being assembled.
type ProductSnapshot struct {
	ProductID    uint
	Brand        string
	AreaPerBox   decimal.Decimal
	PricePerSqft decimal.Decimal
}

// LineInput is one cart entry before pricing. PricePerBox, when set,
// overrides the catalog rate: the effective per-sqft price becomes
// PricePerBox / AreaPerBox. Overrides are intentionally unbounded — manual
// discounting above or below catalog price is allowed.
type LineInput struct {
	Product     ProductSnapshot
	Boxes       int
	PricePerBox *decimal.Decimal
}

// Line is a priced order line. PricePerSqft is always the effective rate,
// whether it came from the catalog or a per-box override, so downstream tax
// and reporting never need to know which mode was used.
type Line struct {
	ProductID    uint
	Brand        string
	Boxes        int
	AreaPerBox   decimal.Decimal
	PricePerSqft decimal.Decimal
	TotalSqft    decimal.Decimal
	TotalPrice   decimal.Decimal
}

// PriceLine resolves the effective per-sqft rate and computes line totals.
func PriceLine(in LineInput) (Line, error) {
	if in.Boxes <= 0 {
		return Line{}, ErrInvalidDimension
	}
	if in.Product.AreaPerBox.LessThanOrEqual(decimal.Zero) {
		return Line{}, ErrInvalidDimension
	}

	rate := in.Product.PricePerSqft
	if in.PricePerBox != nil {
		if in.Product.AreaPerBox.IsZero() {
			return Line{}, ErrDivisionByZero
		}
		rate = in.PricePerBox.Div(in.Product.AreaPerBox)
	}

	return priceAt(in.Product, in.Boxes, rate), nil
}

func priceAt(p ProductSnapshot, boxes int, rate decimal.Decimal) Line {
	totalSqft := p.AreaPerBox.Mul(decimal.NewFromInt(int64(boxes)))
	return Line{
		ProductID:    p.ProductID,
		Brand:        p.Brand,
		Boxes:        boxes,
		AreaPerBox:   p.AreaPerBox,
		PricePerSqft: rate,
		TotalSqft:    totalSqft,
		TotalPrice:   totalSqft.Mul(rate),
	}
}

// Cart accumulates priced lines. Adding a product that is already in the
// cart tops up the existing line: boxes are summed and totals recomputed at
// the existing line's effective rate, never re-read from the catalog.
type Cart struct {
	lines []Line
}

// Add merges a priced line into the cart.
func (c *Cart) Add(line Line) {
	for i, existing := range c.lines {
		if existing.ProductID == line.ProductID {
			merged := priceAt(ProductSnapshot{
				ProductID:    existing.ProductID,
				Brand:        existing.Brand,
				AreaPerBox:   existing.AreaPerBox,
				PricePerSqft: existing.PricePerSqft,
			}, existing.Boxes+line.Boxes, existing.PricePerSqft)
			c.lines[i] = merged
			return
		}
	}
	c.lines = append(c.lines, line)
}

// Lines returns the cart content in insertion order.
func (c *Cart) Lines() []Line {
	return c.lines
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}
