package utils

import (
	"fmt"
	"strings"
)

// FormatCurrency formats an amount as pounds with thousand separators,
// e.g. 1234.5 -> "£1,234.50". Used on quotes and confirmation emails.
func FormatCurrency(amount float64) string {
	formatted := fmt.Sprintf("%.2f", amount)

	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	negative := strings.HasPrefix(integerPart, "-")
	integerPart = strings.TrimPrefix(integerPart, "-")

	var result []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		result = append([]string{integerPart[start:i]}, result...)
	}

	out := "£" + strings.Join(result, ",") + "." + decimalPart
	if negative {
		out = "-" + out
	}
	return out
}
