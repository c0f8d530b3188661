// Package currency renders amounts for display.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

const rupeeSymbol = "₹"

// FormatINR renders an amount the way en-IN currency formatting does with zero
// fraction digits: rounded half away from zero, last three digits grouped, then
// groups of two ("₹12,34,567").
func FormatINR(amount decimal.Decimal) string {
	rounded := amount.Round(0)

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}

	return sign + rupeeSymbol + groupIndian(rounded.String())
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)

	return strings.Join(groups, ",") + "," + tail
}
