package pricing

import "github.com/shopspring/decimal"

// OrderType distinguishes a non-binding, tax-free quotation from a binding
// tax invoice that computes GST and consumes stock.
type OrderType string

const (
	OrderTypeQuotation  OrderType = "quotation"
	OrderTypeTaxInvoice OrderType = "tax_invoice"
)

// GSTType is the derived tax split for an order. It is never set
// independently: quotations are always GSTNone, tax invoices are GSTCGSTSGST
// for the home state and GSTIGST otherwise.
type GSTType string

const (
	GSTNone     GSTType = "none"
	GSTIGST     GSTType = "igst"
	GSTCGSTSGST GSTType = "cgst_sgst"
)

// Fixed business constants for tile trade under GST. These are not runtime
// configurable.
const HomeState = "Maharashtra"

var (
	igstRatePct = decimal.NewFromInt(18)
	halfRatePct = decimal.NewFromInt(9)
	hundred     = decimal.NewFromInt(100)
)

// TaxBreakdown is the GST split for an order. Rates are percentages as
// printed on the invoice (18, 9); amounts are unrounded decimals so that
// subtotal + taxes = total holds exactly.
type TaxBreakdown struct {
	GSTType    GSTType
	IGSTRate   decimal.Decimal
	IGSTAmount decimal.Decimal
	CGSTRate   decimal.Decimal
	CGSTAmount decimal.Decimal
	SGSTRate   decimal.Decimal
	SGSTAmount decimal.Decimal
	Total      decimal.Decimal
}

// ComputeTax applies the GST rules to a subtotal.
//
// Quotations carry no tax. For tax invoices the split depends on the buyer's
// state: home-state buyers pay CGST 9% + SGST 9%, everyone else pays IGST
// 18%. Reverse charge suppresses the tax amounts entirely and the total
// equals the subtotal; the GST type still reflects the state split so that
// only quotations ever carry GSTNone.
func ComputeTax(subtotal decimal.Decimal, orderType OrderType, buyerState string, reverseCharge bool) TaxBreakdown {
	zero := decimal.Zero
	b := TaxBreakdown{
		GSTType:    GSTNone,
		IGSTRate:   zero,
		IGSTAmount: zero,
		CGSTRate:   zero,
		CGSTAmount: zero,
		SGSTRate:   zero,
		SGSTAmount: zero,
		Total:      subtotal,
	}

	if orderType != OrderTypeTaxInvoice {
		return b
	}

	if buyerState == HomeState {
		b.GSTType = GSTCGSTSGST
	} else {
		b.GSTType = GSTIGST
	}

	if reverseCharge {
		// Tax liability shifts to the buyer; nothing is added to the total.
		return b
	}

	switch b.GSTType {
	case GSTCGSTSGST:
		half := subtotal.Mul(halfRatePct).Div(hundred)
		b.CGSTRate = halfRatePct
		b.SGSTRate = halfRatePct
		b.CGSTAmount = half
		b.SGSTAmount = half
	default:
		b.IGSTRate = igstRatePct
		b.IGSTAmount = subtotal.Mul(igstRatePct).Div(hundred)
	}

	b.Total = subtotal.Add(b.IGSTAmount).Add(b.CGSTAmount).Add(b.SGSTAmount)
	return b
}
