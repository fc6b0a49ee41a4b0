package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjperalta/fintera-invest/internal/projection"
)

func TestRoundAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{0, 0},
		{1.4, 1},
		{2.5, 3},
		{-2.5, -3},
		{-79_300.086, -79_300},
		{67_479.4466, 67_479},
		{10_500_000.5, 10_500_001},
	}

	for _, tt := range tests {
		got, err := RoundAmount(tt.in)
		require.NoError(t, err, "RoundAmount(%v)", tt.in)
		assert.Equal(t, tt.want, got, "RoundAmount(%v)", tt.in)
	}
}

func TestRoundAmount_OutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		in      float64
		want    int64
		wantErr bool
	}{
		{name: "upper limit", in: projection.MaxAmount, want: 1_000_000_000_000_000},
		{name: "lower limit", in: -projection.MaxAmount, want: -1_000_000_000_000_000},
		{name: "just past limit", in: projection.MaxAmount * 1.5, wantErr: true},
		{name: "past int64", in: 1.2676506002282294e37, wantErr: true},
		{name: "negative past int64", in: -1e19, wantErr: true},
		{name: "not a number", in: math.NaN(), wantErr: true},
		{name: "positive infinity", in: math.Inf(1), wantErr: true},
		{name: "negative infinity", in: math.Inf(-1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RoundAmount(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrAmountOutOfRange)
				assert.Zero(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBreakevenMessage(t *testing.T) {
	year := 4
	assert.Equal(t, "Breakeven achieved in year 4!", BreakevenMessage(&year))
	assert.Equal(t, "Breakeven not achieved within holding period.", BreakevenMessage(nil))
}

func TestLookupCurrency(t *testing.T) {
	inr, ok := LookupCurrency("inr")
	require.True(t, ok)
	assert.Equal(t, "₹", inr.Symbol)
	assert.True(t, inr.IndianGrouping)

	usd, ok := LookupCurrency(" USD ")
	require.True(t, ok)
	assert.Equal(t, "USD $", usd.Label)
	assert.False(t, usd.IndianGrouping)

	_, ok = LookupCurrency("GBP")
	assert.False(t, ok)
}

func TestNewProjectionResponse(t *testing.T) {
	result, err := projection.Project(projection.DefaultParameters())
	require.NoError(t, err)

	inr, _ := LookupCurrency(CurrencyINR)
	resp, err := NewProjectionResponse("run-1", result, inr)
	require.NoError(t, err)

	assert.Equal(t, "run-1", resp.RunID)
	assert.Equal(t, Caption, resp.Caption)
	assert.Equal(t, int64(2_500_000), resp.Derived.DownPayment)
	assert.Equal(t, int64(67_479), resp.Derived.EMI)
	require.Len(t, resp.Years, 10)

	first := resp.Years[0]
	assert.Equal(t, int64(300_000), first.TotalRent)
	assert.Equal(t, int64(10_500_000), first.PropertyValue)
	assert.Equal(t, int64(-79_300), first.NetProfit)
	assert.Len(t, first.Amounts(), len(YearColumns)-1)

	row, err := NewYearRow(result.Years[0])
	require.NoError(t, err)
	assert.Equal(t, first, row)

	assert.Equal(t, "Breakeven achieved in year 2!", resp.Message)
	assert.Equal(t, result.Summary.Winner, resp.Summary.Winner)
}

func TestNewProjectionResponse_RejectsUnroundableAmounts(t *testing.T) {
	result, err := projection.Project(projection.DefaultParameters())
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(p *projection.Projection)
	}{
		{name: "nan emi", mutate: func(p *projection.Projection) { p.Derived.EMI = math.NaN() }},
		{name: "huge year row", mutate: func(p *projection.Projection) { p.Years[3].PropertyValue = 1e19 }},
		{name: "infinite summary", mutate: func(p *projection.Projection) { p.Summary.PropertyAdvantage = math.Inf(-1) }},
	}

	inr, _ := LookupCurrency(CurrencyINR)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := *result
			p.Years = append([]projection.YearRecord(nil), result.Years...)
			tt.mutate(&p)

			_, err := NewProjectionResponse("run-1", &p, inr)
			assert.ErrorIs(t, err, ErrAmountOutOfRange)
		})
	}
}

func TestNewSweepRun(t *testing.T) {
	result, err := projection.Project(projection.DefaultParameters())
	require.NoError(t, err)

	run, err := NewSweepRun(9, result)
	require.NoError(t, err)
	assert.Equal(t, float64(9), run.Value)
	assert.Equal(t, result.Summary.Winner, run.Winner)

	broken := *result
	broken.Summary.FinalNetProfit = math.NaN()
	_, err = NewSweepRun(9, &broken)
	assert.ErrorIs(t, err, ErrAmountOutOfRange)
}
