package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	// 2ft x 2ft tiles, 5 per box: 20 sqft/box at 50/sqft.
	product := ProductSnapshot{
		ProductID:    1,
		Brand:        "Kajaria",
		AreaPerBox:   decimal.NewFromInt(20),
		PricePerSqft: decimal.NewFromInt(50),
	}

	t.Run("tax invoice in home state", func(t *testing.T) {
		line, err := PriceLine(LineInput{Product: product, Boxes: 10})
		require.NoError(t, err)

		totals, err := Aggregate([]Line{line}, OrderTypeTaxInvoice, "Maharashtra", false)
		require.NoError(t, err)

		assert.Equal(t, 10, totals.TotalBoxes)
		assert.True(t, totals.TotalSqft.Equal(decimal.NewFromInt(200)))
		assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(10000)))
		assert.True(t, totals.Tax.CGSTAmount.Equal(decimal.NewFromInt(900)))
		assert.True(t, totals.Tax.SGSTAmount.Equal(decimal.NewFromInt(900)))
		assert.True(t, totals.GrandTotal.Equal(decimal.NewFromInt(11800)))
		assert.Equal(t, "Eleven Thousand Eight Hundred Rupees Only", totals.AmountInWords)
	})

	t.Run("quotation has no tax fields populated", func(t *testing.T) {
		line, err := PriceLine(LineInput{Product: product, Boxes: 10})
		require.NoError(t, err)

		totals, err := Aggregate([]Line{line}, OrderTypeQuotation, "Maharashtra", false)
		require.NoError(t, err)

		assert.Equal(t, GSTNone, totals.Tax.GSTType)
		assert.True(t, totals.GrandTotal.Equal(decimal.NewFromInt(10000)))
		assert.Equal(t, "Ten Thousand Rupees Only", totals.AmountInWords)
	})

	t.Run("sums across multiple lines", func(t *testing.T) {
		a, err := PriceLine(LineInput{Product: product, Boxes: 2})
		require.NoError(t, err)

		other := product
		other.ProductID = 2
		other.AreaPerBox = decimal.NewFromInt(10)
		other.PricePerSqft = decimal.NewFromInt(30)
		b, err := PriceLine(LineInput{Product: other, Boxes: 3})
		require.NoError(t, err)

		totals, err := Aggregate([]Line{a, b}, OrderTypeTaxInvoice, "Goa", false)
		require.NoError(t, err)

		assert.Equal(t, 5, totals.TotalBoxes)
		assert.True(t, totals.TotalSqft.Equal(decimal.NewFromInt(70)))
		// 2*20*50 + 3*10*30 = 2000 + 900
		assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(2900)), "got %s", totals.Subtotal)
		assert.Equal(t, GSTIGST, totals.Tax.GSTType)
	})

	t.Run("empty cart is rejected", func(t *testing.T) {
		_, err := Aggregate(nil, OrderTypeTaxInvoice, "Maharashtra", false)
		assert.ErrorIs(t, err, ErrEmptyCart)
	})
}
