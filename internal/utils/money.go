package utils

import (
	"fmt"
	"math"
)

// FormatEuro renders an amount in Euro major units, e.g. "€45.50".
func FormatEuro(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s€%.2f", sign, amount)
}

// ToMinorUnits converts a major-unit Euro amount to integer cents,
// rounding to the nearest cent.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromMinorUnits converts integer cents back to a major-unit amount.
func FromMinorUnits(cents int64) float64 {
	return float64(cents) / 100
}
