package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeTax(t *testing.T) {
	subtotal := decimal.NewFromInt(10000)

	t.Run("quotation carries no tax", func(t *testing.T) {
		b := ComputeTax(subtotal, OrderTypeQuotation, HomeState, false)

		assert.Equal(t, GSTNone, b.GSTType)
		assert.True(t, b.IGSTAmount.IsZero())
		assert.True(t, b.CGSTAmount.IsZero())
		assert.True(t, b.SGSTAmount.IsZero())
		assert.True(t, b.Total.Equal(subtotal))
	})

	t.Run("home state splits into CGST and SGST", func(t *testing.T) {
		b := ComputeTax(subtotal, OrderTypeTaxInvoice, "Maharashtra", false)

		assert.Equal(t, GSTCGSTSGST, b.GSTType)
		assert.True(t, b.CGSTAmount.Equal(decimal.NewFromInt(900)), "got %s", b.CGSTAmount)
		assert.True(t, b.SGSTAmount.Equal(decimal.NewFromInt(900)), "got %s", b.SGSTAmount)
		assert.True(t, b.IGSTAmount.IsZero())
		assert.True(t, b.Total.Equal(decimal.NewFromInt(11800)), "got %s", b.Total)
	})

	t.Run("other states pay IGST", func(t *testing.T) {
		b := ComputeTax(subtotal, OrderTypeTaxInvoice, "Gujarat", false)

		assert.Equal(t, GSTIGST, b.GSTType)
		assert.True(t, b.IGSTAmount.Equal(decimal.NewFromInt(1800)), "got %s", b.IGSTAmount)
		assert.True(t, b.CGSTAmount.IsZero())
		assert.True(t, b.SGSTAmount.IsZero())
		assert.True(t, b.Total.Equal(decimal.NewFromInt(11800)))
	})

	t.Run("reverse charge suppresses tax but keeps the state split", func(t *testing.T) {
		b := ComputeTax(subtotal, OrderTypeTaxInvoice, "Gujarat", true)

		assert.Equal(t, GSTIGST, b.GSTType)
		assert.True(t, b.IGSTAmount.IsZero())
		assert.True(t, b.CGSTAmount.IsZero())
		assert.True(t, b.SGSTAmount.IsZero())
		assert.True(t, b.Total.Equal(subtotal))

		home := ComputeTax(subtotal, OrderTypeTaxInvoice, HomeState, true)
		assert.Equal(t, GSTCGSTSGST, home.GSTType)
		assert.True(t, home.Total.Equal(subtotal))
	})

	t.Run("subtotal plus taxes equals total exactly", func(t *testing.T) {
		// An amount that would drift under binary floats.
		odd := decimal.RequireFromString("3333.33")
		b := ComputeTax(odd, OrderTypeTaxInvoice, HomeState, false)

		sum := odd.Add(b.IGSTAmount).Add(b.CGSTAmount).Add(b.SGSTAmount)
		assert.True(t, sum.Equal(b.Total), "subtotal+taxes %s != total %s", sum, b.Total)
	})

	t.Run("zero subtotal yields zero tax", func(t *testing.T) {
		b := ComputeTax(decimal.Zero, OrderTypeTaxInvoice, "Kerala", false)
		assert.True(t, b.Total.IsZero())
		assert.True(t, b.IGSTAmount.IsZero())
	})

	t.Run("rates are printed percentages", func(t *testing.T) {
		home := ComputeTax(subtotal, OrderTypeTaxInvoice, HomeState, false)
		assert.True(t, home.CGSTRate.Equal(decimal.NewFromInt(9)))
		assert.True(t, home.SGSTRate.Equal(decimal.NewFromInt(9)))
		assert.True(t, home.IGSTRate.IsZero())

		inter := ComputeTax(subtotal, OrderTypeTaxInvoice, "Delhi", false)
		assert.True(t, inter.IGSTRate.Equal(decimal.NewFromInt(18)))
		assert.True(t, inter.CGSTRate.IsZero())
	})
}
