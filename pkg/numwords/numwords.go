// Package numwords renders rupee amounts as words using Indian digit
// grouping (crore, lakh, thousand, hundred), as printed on tax invoices.
package numwords

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	singles = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	teens   = []string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tens    = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

// upToHundred spells n for 0 <= n < 100.
func upToHundred(n int64) string {
	switch {
	case n < 10:
		return singles[n]
	case n < 20:
		return teens[n-10]
	default:
		if n%10 == 0 {
			return tens[n/10]
		}
		return tens[n/10] + " " + singles[n%10]
	}
}

// spell builds the words for a positive whole number in Indian grouping.
// The crore segment recurses, so the grouping keeps working past a hundred
// crore: 1,50,00,00,000 is "One Hundred and Fifty Crore" and 1e12 is
// "One Lakh Crore".
func spell(n int64) []string {
	var parts []string
	if n >= 10000000 {
		parts = append(parts, spell(n/10000000)...)
		parts = append(parts, "Crore")
		n %= 10000000
	}
	if n >= 100000 {
		parts = append(parts, upToHundred(n/100000), "Lakh")
		n %= 100000
	}
	if n >= 1000 {
		parts = append(parts, upToHundred(n/1000), "Thousand")
		n %= 1000
	}
	if n >= 100 {
		parts = append(parts, singles[n/100], "Hundred")
		n %= 100
	}
	if n > 0 {
		if len(parts) > 0 {
			parts = append(parts, "and")
		}
		parts = append(parts, upToHundred(n))
	}
	return parts
}

// Rupees converts a monetary amount into its invoice wording, for example
// "Eleven Thousand Eight Hundred Rupees Only". Paise are carried after the
// rupee part: "... Rupees and Fifty Paise Only". Zero renders as
// "Zero Rupees Only". Amounts are read at two decimal places.
func Rupees(amount decimal.Decimal) string {
	amount = amount.Round(2)
	whole := amount.IntPart()
	paise := amount.Sub(decimal.NewFromInt(whole)).Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	if whole == 0 && paise == 0 {
		return "Zero Rupees Only"
	}

	parts := spell(whole)
	if len(parts) == 0 {
		parts = append(parts, "Zero")
	}
	parts = append(parts, "Rupees")

	if paise > 0 {
		parts = append(parts, "and", upToHundred(paise), "Paise")
	}

	parts = append(parts, "Only")
	return strings.Join(parts, " ")
}
