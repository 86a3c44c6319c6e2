package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "Zero Rupees"},
		{"7", "Seven Rupees"},
		{"19", "Nineteen Rupees"},
		{"60", "Sixty Rupees"},
		{"85", "Eighty Five Rupees"},
		{"100", "One Hundred Rupees"},
		{"119", "One Hundred and Nineteen Rupees"},
		{"500", "Five Hundred Rupees"},
		{"1000", "One Thousand Rupees"},
		{"2360", "Two Thousand Three Hundred and Sixty Rupees"},
		{"45000", "Forty Five Thousand Rupees"},
		{"100000", "One Lakh Rupees"},
		{"250000", "Two Lakh Fifty Thousand Rupees"},
		{"10000000", "One Crore Rupees"},
		{"12345678", "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred and Seventy Eight Rupees"},
		{"2500000000", "Two Hundred and Fifty Crore Rupees"},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, AmountInWords(decimal.RequireFromString(tt.amount)))
		})
	}
}

// Paise are rounded to the nearest rupee before spelling; they never appear in
// the output.
func TestAmountInWordsDropsPaise(t *testing.T) {
	assert.Equal(t, "Two Thousand Three Hundred and Sixty Rupees",
		AmountInWords(decimal.RequireFromString("2360.49")))
	assert.Equal(t, "Two Thousand Three Hundred and Sixty One Rupees",
		AmountInWords(decimal.RequireFromString("2360.50")))
}

func TestAmountInWordsNegative(t *testing.T) {
	assert.Equal(t, "Zero Rupees", AmountInWords(decimal.RequireFromString("-5")))
}
