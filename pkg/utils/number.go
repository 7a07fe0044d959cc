package utils

import (
	"fmt"
	"math"
	"strings"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// SafePercent calcula (parte/total)*100 protegendo contra divisão por zero
func SafePercent(part, total float64) float64 {
	if total == 0 {
		return 0
	}

	return (part / total) * 100
}

// FormatBRL formata um valor monetário no padrão brasileiro (R$ 1.234,56)
func FormatBRL(value float64) string {
	negative := value < 0
	if negative {
		value = -value
	}

	cents := int64(math.Round(value * 100))
	whole := cents / 100
	fraction := cents % 100

	digits := fmt.Sprintf("%d", whole)

	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)

	formatted := fmt.Sprintf("R$ %s,%02d", strings.Join(parts, "."), fraction)
	if negative {
		return "-" + formatted
	}

	return formatted
}
