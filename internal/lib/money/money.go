// Package money formats centavo amounts for display. Prices are stored
// as int64 centavos everywhere; floats appear only in rendered strings.
package money

import "fmt"

// Format renders centavos with two decimal places, e.g. 2550 -> "25.50".
func Format(centavos int64) string {
	sign := ""
	if centavos < 0 {
		sign = "-"
		centavos = -centavos
	}
	return fmt.Sprintf("%s%d.%02d", sign, centavos/100, centavos%100)
}

// FormatBRL renders centavos with the currency prefix, e.g. "R$ 25.50".
func FormatBRL(centavos int64) string {
	return "R$ " + Format(centavos)
}
