package models

import "strings"

// Currency is a display label. It never changes the arithmetic.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Label  string `json:"label"`
	// Indian digit grouping (12,34,567) instead of thousands
	IndianGrouping bool `json:"-"`
}

// Currency code constants
const (
	CurrencyINR = "INR"
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
)

var currencies = map[string]Currency{
	CurrencyINR: {Code: CurrencyINR, Symbol: "₹", Label: "INR ₹", IndianGrouping: true},
	CurrencyUSD: {Code: CurrencyUSD, Symbol: "$", Label: "USD $"},
	CurrencyEUR: {Code: CurrencyEUR, Symbol: "€", Label: "EUR €"},
}

// LookupCurrency resolves a currency code, case-insensitively
func LookupCurrency(code string) (Currency, bool) {
	c, ok := currencies[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// SupportedCurrencies returns the supported currency codes
func SupportedCurrencies() []string {
	return []string{CurrencyINR, CurrencyUSD, CurrencyEUR}
}
