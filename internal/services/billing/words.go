package billing

import (
	"strings"

	"github.com/shopspring/decimal"
)

var onesWords = [...]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = [...]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// AmountInWords spells the rupee portion of an amount using Indian numbering
// (crore, lakh, thousand, hundred). Paise are rounded to the nearest rupee and
// dropped from the output; that is the documented behavior of the printed
// invoice, not an oversight.
func AmountInWords(amount decimal.Decimal) string {
	rupees := amount.Round(0).IntPart()
	if rupees <= 0 {
		return "Zero Rupees"
	}
	return spell(rupees) + " Rupees"
}

// spell converts a positive integer to words. An "and" is inserted before a
// sub-100 remainder whenever a higher group was emitted ("Three Hundred and
// Sixty", but plain "Sixty").
func spell(n int64) string {
	groups := []struct {
		value int64
		name  string
	}{
		{10000000, "Crore"},
		{100000, "Lakh"},
		{1000, "Thousand"},
		{100, "Hundred"},
	}

	var parts []string
	for _, g := range groups {
		if q := n / g.value; q > 0 {
			var w string
			if q >= 100 {
				// only the crore group can reach here (e.g. 250 crore)
				w = spell(q)
			} else {
				w = belowHundred(q)
			}
			parts = append(parts, w+" "+g.name)
			n %= g.value
		}
	}

	if n > 0 {
		w := belowHundred(n)
		if len(parts) > 0 {
			w = "and " + w
		}
		parts = append(parts, w)
	}

	return strings.Join(parts, " ")
}

func belowHundred(n int64) string {
	if n < 20 {
		return onesWords[n]
	}
	w := tensWords[n/10]
	if n%10 > 0 {
		w += " " + onesWords[n%10]
	}
	return w
}
