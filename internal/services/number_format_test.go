package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sjperalta/fintera-invest/internal/models"
)

func TestFormatAmount(t *testing.T) {
	inr, _ := models.LookupCurrency(models.CurrencyINR)
	usd, _ := models.LookupCurrency(models.CurrencyUSD)

	tests := []struct {
		amount   int64
		currency models.Currency
		want     string
	}{
		{0, inr, "0"},
		{999, inr, "999"},
		{1_000, inr, "1,000"},
		{1_234_567, inr, "12,34,567"},
		{10_000_000, inr, "1,00,00,000"},
		{-79_300, inr, "-79,300"},
		{1_234_567, usd, "1,234,567"},
		{123_456, usd, "123,456"},
		{-1_000_000, usd, "-1,000,000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.amount, tt.currency), "%d %s", tt.amount, tt.currency.Code)
	}
}

func TestFormatMoney(t *testing.T) {
	eur, _ := models.LookupCurrency(models.CurrencyEUR)

	assert.Equal(t, "€1,500", FormatMoney(1_500, eur))
	assert.Equal(t, "-€2,000", FormatMoney(-2_000, eur))
}

func TestChartScale(t *testing.T) {
	inr, _ := models.LookupCurrency(models.CurrencyINR)
	usd, _ := models.LookupCurrency(models.CurrencyUSD)

	div, unit := ChartScale(inr)
	assert.Equal(t, 1e7, div)
	assert.Equal(t, UnitCrores, unit)

	div, unit = ChartScale(usd)
	assert.Equal(t, 1e6, div)
	assert.Equal(t, UnitMillions, unit)

	assert.Equal(t, 1.05, ToCrores(10_500_000))
}
