package projection

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjperalta/fintera-invest/internal/statemachine"
)

const tolerance = 1e-6

func TestDerive_DefaultScenario(t *testing.T) {
	d := Derive(DefaultParameters())

	assert.Equal(t, 2_500_000.0, d.DownPayment)
	assert.Equal(t, 7_500_000.0, d.LoanAmount)
	assert.Equal(t, 240, d.NumPayments)
	assert.InDelta(t, 0.0075, d.MonthlyRate, 1e-12)
	assert.InDelta(t, 67_479.45, d.EMI, 0.01)
}

func TestDerive_ZeroInterestIsLinear(t *testing.T) {
	p := DefaultParameters()
	p.LoanInterestPct = 0

	d := Derive(p)
	assert.Equal(t, d.LoanAmount/float64(p.LoanYears*12), d.EMI)
	assert.Equal(t, 0.0, d.MonthlyRate)
}

func TestDerive_NothingBorrowed(t *testing.T) {
	p := DefaultParameters()
	p.DownPaymentPct = 100

	d := Derive(p)
	assert.Equal(t, 0.0, d.LoanAmount)
	assert.Equal(t, 0.0, d.EMI)
}

func TestProject_ReferenceScenario(t *testing.T) {
	result, err := Project(DefaultParameters())
	require.NoError(t, err)
	require.Len(t, result.Years, 10)

	first := result.Years[0]
	assert.Equal(t, 1, first.Year)
	assert.Equal(t, 300_000.0, first.RentThisYear)
	assert.Equal(t, 300_000.0, first.TotalRent)
	assert.InDelta(t, 10_500_000.0, first.PropertyValue, tolerance)
	assert.InDelta(t, 210_000.0, first.DisposalCost, tolerance)
	assert.InDelta(t, 7_359_546.73, first.LoanBalance, 0.01)
	assert.InDelta(t, -509_753.36, first.YearlyCashflow, 0.01)
	assert.InDelta(t, -3_009_753.36, first.CumulativeCashflow, 0.01)
	assert.Less(t, first.NetProfit, 0.0)
	assert.InDelta(t, -79_300.09, first.NetProfit, 0.01)
	assert.InDelta(t, 2_675_000.0, first.BankValue, tolerance)
	assert.InDelta(t, 175_000.0, first.BankGain, tolerance)
	assert.True(t, first.EMIActive)
	assert.Equal(t, statemachine.LoanStateAccumulating, first.LoanState)

	require.NotNil(t, result.BreakevenYear)
	assert.Equal(t, 2, *result.BreakevenYear)
	assert.Equal(t, statemachine.LoanStateComplete, result.State)

	final := result.Final()
	assert.InDelta(t, 5_326_941.74, final.LoanBalance, 0.01)
	assert.InDelta(t, 3_701_752.00, final.NetProfit, 0.01)
	assert.InDelta(t, 11_611_052.68, final.BankValueWithCashflows, 0.01)
}

func TestProject_RentStepsEveryTwoYears(t *testing.T) {
	result, err := Project(DefaultParameters())
	require.NoError(t, err)

	expected := []float64{300_000, 300_000, 330_000, 330_000, 363_000, 363_000, 399_300, 399_300, 439_230, 439_230}
	total := 0.0
	for i, rec := range result.Years {
		assert.InDelta(t, expected[i], rec.RentThisYear, 1e-6, "year %d", rec.Year)
		total += rec.RentThisYear
		assert.InDelta(t, total, rec.TotalRent, 1e-6, "year %d", rec.Year)
	}
}

func TestProject_PrincipalConservation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Parameters)
	}{
		{"defaults", func(p *Parameters) {}},
		{"short loan", func(p *Parameters) { p.LoanYears = 5; p.HoldingYears = 8 }},
		{"zero interest", func(p *Parameters) { p.LoanInterestPct = 0; p.LoanYears = 3; p.HoldingYears = 5 }},
		{"high rate", func(p *Parameters) { p.LoanInterestPct = 18; p.LoanYears = 7; p.HoldingYears = 10 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParameters()
			tc.mutate(&p)

			result, err := Project(p)
			require.NoError(t, err)

			principal := 0.0
			previous := result.Derived.LoanAmount
			for _, rec := range result.Years {
				principal += rec.PrincipalPaid
				assert.LessOrEqual(t, rec.LoanBalance, previous, "balance must not grow in year %d", rec.Year)
				assert.GreaterOrEqual(t, rec.LoanBalance, 0.0)
				assert.InDelta(t, result.Derived.LoanAmount, principal+rec.LoanBalance, 1e-4, "year %d", rec.Year)
				previous = rec.LoanBalance
			}
		})
	}
}

func TestProject_BalanceReachesZeroByLoanYears(t *testing.T) {
	p := DefaultParameters()
	p.LoanYears = 4
	p.HoldingYears = 6

	result, err := Project(p)
	require.NoError(t, err)

	for _, rec := range result.Years[3:] {
		assert.Equal(t, 0.0, rec.LoanBalance, "year %d", rec.Year)
	}
	assert.Greater(t, result.Years[2].LoanBalance, 0.0)
}

func TestProject_CashflowRecurrence(t *testing.T) {
	result, err := Project(DefaultParameters())
	require.NoError(t, err)

	cumulative := -result.Derived.DownPayment
	for _, rec := range result.Years {
		cumulative += rec.YearlyCashflow
		assert.InDelta(t, cumulative, rec.CumulativeCashflow, tolerance, "year %d", rec.Year)

		expected := rec.PropertyValue - rec.DisposalCost - rec.LoanBalance + rec.CumulativeCashflow
		assert.InDelta(t, expected, rec.NetProfit, tolerance, "year %d", rec.Year)
	}
}

func TestProject_BreakevenIsMinimal(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Parameters)
	}{
		{"defaults", func(p *Parameters) {}},
		{"weak rent", func(p *Parameters) { p.MonthlyRentalIncome = 5_000; p.PropertyAppreciationPct = 1 }},
		{"all cash", func(p *Parameters) { p.DownPaymentPct = 100 }},
		{"never", func(p *Parameters) {
			p.MonthlyRentalIncome = 0
			p.PropertyAppreciationPct = 0
			p.HoldingYears = 3
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParameters()
			tc.mutate(&p)

			result, err := Project(p)
			require.NoError(t, err)

			if result.BreakevenYear == nil {
				for _, rec := range result.Years {
					assert.Less(t, rec.NetProfit, 0.0, "year %d", rec.Year)
				}
				return
			}

			breakeven := *result.BreakevenYear
			assert.GreaterOrEqual(t, result.Years[breakeven-1].NetProfit, 0.0)
			for _, rec := range result.Years[:breakeven-1] {
				assert.Less(t, rec.NetProfit, 0.0, "year %d", rec.Year)
			}
		})
	}
}

func TestProject_NoBreakevenWithoutIncome(t *testing.T) {
	p := DefaultParameters()
	p.MonthlyRentalIncome = 0
	p.PropertyAppreciationPct = 0
	p.HoldingYears = 3

	result, err := Project(p)
	require.NoError(t, err)
	assert.Nil(t, result.BreakevenYear)
}

func TestProject_Idempotent(t *testing.T) {
	p := DefaultParameters()
	p.HoldingYears = 25

	first, err := Project(p)
	require.NoError(t, err)
	second, err := Project(p)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestProject_ZeroInterest(t *testing.T) {
	p := DefaultParameters()
	p.LoanInterestPct = 0
	p.LoanYears = 5
	p.HoldingYears = 6

	result, err := Project(p)
	require.NoError(t, err)

	assert.Equal(t, result.Derived.LoanAmount/60, result.Derived.EMI)
	for _, rec := range result.Years {
		assert.Equal(t, 0.0, rec.InterestPaid, "year %d", rec.Year)
		assert.Equal(t, 0.0, rec.CumulativeInterestPaid, "year %d", rec.Year)
	}
	assert.InDelta(t, 1_500_000.0, result.Years[0].PrincipalPaid, tolerance)
	assert.Equal(t, 0.0, result.Years[4].LoanBalance)
	assert.Equal(t, 0.0, result.Years[5].PrincipalPaid)
}

func TestProject_FullPayoff(t *testing.T) {
	p := DefaultParameters()
	p.HoldingYears = 25

	result, err := Project(p)
	require.NoError(t, err)

	// Balance reaches zero in the last loan year; that year still pays EMI
	payoff := result.Years[p.LoanYears-1]
	assert.Equal(t, 0.0, payoff.LoanBalance)
	assert.True(t, payoff.EMIActive)
	assert.Equal(t, statemachine.LoanStateRetired, payoff.LoanState)
	assert.Greater(t, result.Years[p.LoanYears-2].LoanBalance, 0.0)

	for _, rec := range result.Years[:p.LoanYears] {
		assert.True(t, rec.EMIActive, "year %d", rec.Year)
		assert.InDelta(t, rec.RentThisYear-result.Derived.EMI*12, rec.YearlyCashflow, tolerance, "year %d", rec.Year)
	}
	for _, rec := range result.Years[p.LoanYears:] {
		assert.False(t, rec.EMIActive, "year %d", rec.Year)
		assert.Equal(t, rec.RentThisYear, rec.YearlyCashflow, "year %d", rec.Year)
		assert.Equal(t, 0.0, rec.InterestPaid)
		assert.Equal(t, statemachine.LoanStateRetired, rec.LoanState)
	}
	assert.Equal(t, statemachine.LoanStateComplete, result.State)
}

func TestProject_AllCashPurchase(t *testing.T) {
	p := DefaultParameters()
	p.DownPaymentPct = 100

	result, err := Project(p)
	require.NoError(t, err)

	first := result.Years[0]
	assert.False(t, first.EMIActive)
	assert.Equal(t, statemachine.LoanStateRetired, first.LoanState)
	assert.Equal(t, 300_000.0, first.YearlyCashflow)
	assert.InDelta(t, 590_000.0, first.NetProfit, tolerance)
	require.NotNil(t, result.BreakevenYear)
	assert.Equal(t, 1, *result.BreakevenYear)
}

func TestProject_ComparisonWithCashflows(t *testing.T) {
	p := DefaultParameters()
	p.HoldingYears = 25

	result, err := Project(p)
	require.NoError(t, err)

	growth := 1 + p.BankInterestPct/100
	balance := result.Derived.DownPayment
	contributed := result.Derived.DownPayment
	for _, rec := range result.Years {
		if rec.YearlyCashflow < 0 {
			assert.InDelta(t, -rec.YearlyCashflow, rec.BankAddedThisYear, tolerance)
			balance += -rec.YearlyCashflow
			contributed += -rec.YearlyCashflow
		} else {
			assert.Equal(t, 0.0, rec.BankAddedThisYear, "surplus year %d adds nothing", rec.Year)
		}
		balance *= growth
		assert.InDelta(t, balance, rec.BankValueWithCashflows, 1e-3, "year %d", rec.Year)
	}

	summary := result.Summary
	assert.InDelta(t, contributed, summary.TotalContributed, 1e-3)
	assert.InDelta(t, balance-contributed, summary.BankGainWithCashflows, 1e-3)
	assert.InDelta(t, summary.FinalNetProfit-summary.BankGainWithCashflows, summary.PropertyAdvantage, 1e-3)
	assert.Contains(t, []string{WinnerProperty, WinnerBank, WinnerTie}, summary.Winner)
}

func TestProject_RejectsInvalidParameters(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Parameters)
		field  string
	}{
		{"negative price", func(p *Parameters) { p.PropertyPrice = -1 }, FieldPropertyPrice},
		{"zero price", func(p *Parameters) { p.PropertyPrice = 0 }, FieldPropertyPrice},
		{"down payment over 100", func(p *Parameters) { p.DownPaymentPct = 101 }, FieldDownPaymentPct},
		{"zero loan years", func(p *Parameters) { p.LoanYears = 0 }, FieldLoanYears},
		{"zero holding years", func(p *Parameters) { p.HoldingYears = 0 }, FieldHoldingYears},
		{"negative rent", func(p *Parameters) { p.MonthlyRentalIncome = -10 }, FieldMonthlyRentalIncome},
		{"disposal over 100", func(p *Parameters) { p.DisposalCostPct = 150 }, FieldDisposalCostPct},
		{"negative bank rate", func(p *Parameters) { p.BankInterestPct = -0.5 }, FieldBankInterestPct},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParameters()
			tc.mutate(&p)

			result, err := Project(p)
			assert.Nil(t, result)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidParameter))

			var invalidErr *InvalidParameterError
			require.True(t, errors.As(err, &invalidErr))
			assert.Equal(t, tc.field, invalidErr.Field)
		})
	}
}

func TestDerive_OverflowingGrowthUsesInterestOnlyLimit(t *testing.T) {
	p := DefaultParameters()
	p.LoanInterestPct = 10_000
	p.LoanYears = 50

	d := Derive(p)
	require.False(t, math.IsNaN(d.EMI))
	require.False(t, math.IsInf(d.EMI, 0))
	assert.Equal(t, d.LoanAmount*d.MonthlyRate, d.EMI)
}

func TestProject_ExtremeRateStaysFinite(t *testing.T) {
	p := DefaultParameters()
	p.LoanInterestPct = 10_000
	p.LoanYears = 50
	p.HoldingYears = 50

	result, err := Project(p)
	require.NoError(t, err)
	require.Len(t, result.Years, 50)

	for _, rec := range result.Years {
		for _, v := range []float64{rec.LoanBalance, rec.YearlyCashflow, rec.NetProfit, rec.BankValueWithCashflows} {
			require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "year %d", rec.Year)
		}
	}

	// Interest-only instalments leave the principal untouched until the
	// last payment settles it
	assert.Equal(t, 7_500_000.0, result.Years[48].LoanBalance)
	assert.Equal(t, 0.0, result.Final().LoanBalance)
	assert.Equal(t, statemachine.LoanStateRetired, result.Final().LoanState)
	assert.Equal(t, statemachine.LoanStateComplete, result.State)
	assert.Equal(t, WinnerBank, result.Summary.Winner)
}

func TestProject_RejectsUnrepresentableAmounts(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(p *Parameters)
		wantYear   int
		wantColumn string
	}{
		{
			name: "property value doubling for a century",
			mutate: func(p *Parameters) {
				p.PropertyAppreciationPct = 100
				p.HoldingYears = 100
			},
			wantYear:   27,
			wantColumn: "property_value",
		},
		{
			name: "instalments beyond range",
			mutate: func(p *Parameters) {
				p.LoanInterestPct = 1e300
			},
			wantYear:   0,
			wantColumn: "emi",
		},
		{
			name: "rent growth overflowing",
			mutate: func(p *Parameters) {
				p.DownPaymentPct = 100
				p.RentalAppreciationPct = 1e300
				p.HoldingYears = 3
			},
			wantYear:   3,
			wantColumn: "rent_this_year",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParameters()
			tt.mutate(&p)
			require.NoError(t, p.Validate(), "input itself is valid")

			result, err := Project(p)
			assert.Nil(t, result)
			require.ErrorIs(t, err, ErrOutOfRange)

			var rangeErr *OutOfRangeError
			require.True(t, errors.As(err, &rangeErr))
			assert.Equal(t, tt.wantYear, rangeErr.Year)
			assert.Equal(t, tt.wantColumn, rangeErr.Column)
		})
	}
}
