package pricing

import (
	"github.com/shopspring/decimal"

	"backend/pkg/numwords"
)

// Totals are the order-level figures derived from priced lines: box and
// area sums, the pre-tax subtotal, the GST breakdown and the grand total
// spelled out in words for the invoice footer.
type Totals struct {
	TotalBoxes    int
	TotalSqft     decimal.Decimal
	Subtotal      decimal.Decimal
	Tax           TaxBreakdown
	GrandTotal    decimal.Decimal
	AmountInWords string
}

// Aggregate folds priced lines into order totals and applies the tax rules.
// It is a pure function of the lines and order metadata. An empty line list
// fails with ErrEmptyCart before any computation.
func Aggregate(lines []Line, orderType OrderType, buyerState string, reverseCharge bool) (Totals, error) {
	if len(lines) == 0 {
		return Totals{}, ErrEmptyCart
	}

	totals := Totals{
		TotalSqft: decimal.Zero,
		Subtotal:  decimal.Zero,
	}
	for _, line := range lines {
		totals.TotalBoxes += line.Boxes
		totals.TotalSqft = totals.TotalSqft.Add(line.TotalSqft)
		totals.Subtotal = totals.Subtotal.Add(line.TotalPrice)
	}

	totals.Tax = ComputeTax(totals.Subtotal, orderType, buyerState, reverseCharge)
	totals.GrandTotal = totals.Tax.Total
	totals.AmountInWords = numwords.Rupees(totals.GrandTotal)
	return totals, nil
}
