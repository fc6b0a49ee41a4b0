package services

import (
	"strconv"
	"strings"

	"github.com/sjperalta/fintera-invest/internal/models"
)

// Chart scales
const (
	crore   = 1e7
	million = 1e6

	UnitCrores   = "crores"
	UnitMillions = "millions"
)

// FormatAmount renders a rounded amount with the currency's digit grouping,
// e.g. 12,34,567 for INR and 1,234,567 otherwise
func FormatAmount(amount int64, currency models.Currency) string {
	digits := strconv.FormatInt(amount, 10)
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if currency.IndianGrouping {
		return sign + groupIndian(digits)
	}
	return sign + groupEvery(digits, 3)
}

// FormatMoney prefixes a formatted amount with the currency symbol
func FormatMoney(amount int64, currency models.Currency) string {
	formatted := FormatAmount(amount, currency)
	if strings.HasPrefix(formatted, "-") {
		return "-" + currency.Symbol + formatted[1:]
	}
	return currency.Symbol + formatted
}

// ChartScale returns the divisor and unit name for chart axes
func ChartScale(currency models.Currency) (float64, string) {
	if currency.IndianGrouping {
		return crore, UnitCrores
	}
	return million, UnitMillions
}

// ToCrores scales a value to crores (1 crore = 10,000,000)
func ToCrores(v float64) float64 {
	return v / crore
}

func groupEvery(digits string, size int) string {
	if len(digits) <= size {
		return digits
	}
	var b strings.Builder
	head := len(digits) % size
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += size {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+size])
	}
	return b.String()
}

// groupIndian keeps the last three digits together and groups the rest in pairs
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	return groupEvery(head, 2) + "," + tail
}
