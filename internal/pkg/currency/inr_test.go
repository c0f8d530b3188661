package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "₹0"},
		{"200", "₹200"},
		{"2083.5", "₹2,084"},
		{"4165", "₹4,165"},
		{"50000", "₹50,000"},
		{"600000", "₹6,00,000"},
		{"1234567.49", "₹12,34,567"},
		{"123456789", "₹12,34,56,789"},
		{"-2086.5", "-₹2,087"},
		{"-0.4", "₹0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatINR(decimal.RequireFromString(tt.in)))
		})
	}
}
