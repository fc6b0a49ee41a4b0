package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/sjperalta/fintera-invest/internal/projection"
)

// Caption shown under every rendered table
const Caption = "All values are approximate and for illustration only."

// YearColumns are the display headers of the yearly table, in order
var YearColumns = []string{
	"Year",
	"Property Value",
	"Loan Balance",
	"Total Rent",
	"Interest Paid",
	"Cumulative Interest Paid",
	"Principal Paid",
	"Yearly Cashflow",
	"Cumulative Cashflow",
	"Net Profit (if sold)",
	"Bank/Bond Value",
	"Bank/Bond Gain",
	"Bank/Bond Value (With Cashflows)",
	"Bank/Bond Added This Year",
}

// ErrAmountOutOfRange is returned for amounts that cannot be shown as whole units
var ErrAmountOutOfRange = errors.New("amount out of displayable range")

// RoundAmount rounds a monetary value half away from zero to a whole unit.
// NaN, infinities and magnitudes above projection.MaxAmount are refused.
func RoundAmount(v float64) (int64, error) {
	if math.IsNaN(v) || math.Abs(v) > projection.MaxAmount {
		return 0, fmt.Errorf("%w: %g", ErrAmountOutOfRange, v)
	}
	return decimal.NewFromFloat(v).Round(0).IntPart(), nil
}

// rounder keeps the first rounding failure so a whole view can be built
// before checking
type rounder struct {
	err error
}

func (r *rounder) round(v float64) int64 {
	n, err := RoundAmount(v)
	if err != nil && r.err == nil {
		r.err = err
	}
	return n
}

// YearRow is the rounded, display-ready view of a YearRecord
type YearRow struct {
	Year                   int    `json:"year"`
	PropertyValue          int64  `json:"property_value"`
	LoanBalance            int64  `json:"loan_balance"`
	TotalRent              int64  `json:"total_rent"`
	InterestPaid           int64  `json:"interest_paid"`
	CumulativeInterestPaid int64  `json:"cumulative_interest_paid"`
	PrincipalPaid          int64  `json:"principal_paid"`
	YearlyCashflow         int64  `json:"yearly_cashflow"`
	CumulativeCashflow     int64  `json:"cumulative_cashflow"`
	NetProfit              int64  `json:"net_profit"`
	BankValue              int64  `json:"bank_value"`
	BankGain               int64  `json:"bank_gain"`
	BankValueWithCashflows int64  `json:"bank_value_with_cashflows"`
	BankAddedThisYear      int64  `json:"bank_added_this_year"`
	RentThisYear           int64  `json:"rent_this_year"`
	DisposalCost           int64  `json:"disposal_cost"`
	EMIActive              bool   `json:"emi_active"`
	LoanState              string `json:"loan_state"`
}

// NewYearRow rounds a raw record for display
func NewYearRow(r projection.YearRecord) (YearRow, error) {
	var rd rounder
	row := newYearRow(&rd, r)
	return row, rd.err
}

func newYearRow(rd *rounder, r projection.YearRecord) YearRow {
	return YearRow{
		Year:                   r.Year,
		PropertyValue:          rd.round(r.PropertyValue),
		LoanBalance:            rd.round(r.LoanBalance),
		TotalRent:              rd.round(r.TotalRent),
		InterestPaid:           rd.round(r.InterestPaid),
		CumulativeInterestPaid: rd.round(r.CumulativeInterestPaid),
		PrincipalPaid:          rd.round(r.PrincipalPaid),
		YearlyCashflow:         rd.round(r.YearlyCashflow),
		CumulativeCashflow:     rd.round(r.CumulativeCashflow),
		NetProfit:              rd.round(r.NetProfit),
		BankValue:              rd.round(r.BankValue),
		BankGain:               rd.round(r.BankGain),
		BankValueWithCashflows: rd.round(r.BankValueWithCashflows),
		BankAddedThisYear:      rd.round(r.BankAddedThisYear),
		RentThisYear:           rd.round(r.RentThisYear),
		DisposalCost:           rd.round(r.DisposalCost),
		EMIActive:              r.EMIActive,
		LoanState:              r.LoanState,
	}
}

// Amounts returns the monetary columns in YearColumns order, without Year
func (r YearRow) Amounts() []int64 {
	return []int64{
		r.PropertyValue,
		r.LoanBalance,
		r.TotalRent,
		r.InterestPaid,
		r.CumulativeInterestPaid,
		r.PrincipalPaid,
		r.YearlyCashflow,
		r.CumulativeCashflow,
		r.NetProfit,
		r.BankValue,
		r.BankGain,
		r.BankValueWithCashflows,
		r.BankAddedThisYear,
	}
}

// DerivedView is the rounded view of the per-run constants
type DerivedView struct {
	DownPayment int64   `json:"down_payment"`
	LoanAmount  int64   `json:"loan_amount"`
	MonthlyRate float64 `json:"monthly_rate"`
	NumPayments int     `json:"num_payments"`
	EMI         int64   `json:"emi"`
}

// SummaryView is the rounded end-of-period comparison
type SummaryView struct {
	TotalContributed            int64  `json:"total_contributed"`
	FinalPropertyValue          int64  `json:"final_property_value"`
	FinalNetProfit              int64  `json:"final_net_profit"`
	FinalBankValueWithCashflows int64  `json:"final_bank_value_with_cashflows"`
	BankGainWithCashflows       int64  `json:"bank_gain_with_cashflows"`
	PropertyAdvantage           int64  `json:"property_advantage"`
	Winner                      string `json:"winner"`
}

// ProjectionResponse is the JSON response format of a projection run
type ProjectionResponse struct {
	RunID         string                `json:"run_id"`
	Currency      Currency              `json:"currency"`
	Parameters    projection.Parameters `json:"parameters"`
	Derived       DerivedView           `json:"derived"`
	Years         []YearRow             `json:"years"`
	BreakevenYear *int                  `json:"breakeven_year"`
	Message       string                `json:"message"`
	State         string                `json:"state"`
	Summary       SummaryView           `json:"summary"`
	Caption       string                `json:"caption"`
}

// NewProjectionResponse builds the display view of a projection
// It fails with ErrAmountOutOfRange when an amount cannot be displayed.
func NewProjectionResponse(runID string, p *projection.Projection, currency Currency) (ProjectionResponse, error) {
	var rd rounder
	rows := make([]YearRow, 0, len(p.Years))
	for _, rec := range p.Years {
		rows = append(rows, newYearRow(&rd, rec))
	}

	resp := ProjectionResponse{
		RunID:      runID,
		Currency:   currency,
		Parameters: p.Parameters,
		Derived: DerivedView{
			DownPayment: rd.round(p.Derived.DownPayment),
			LoanAmount:  rd.round(p.Derived.LoanAmount),
			MonthlyRate: p.Derived.MonthlyRate,
			NumPayments: p.Derived.NumPayments,
			EMI:         rd.round(p.Derived.EMI),
		},
		Years:         rows,
		BreakevenYear: p.BreakevenYear,
		Message:       BreakevenMessage(p.BreakevenYear),
		State:         p.State,
		Summary: SummaryView{
			TotalContributed:            rd.round(p.Summary.TotalContributed),
			FinalPropertyValue:          rd.round(p.Summary.FinalPropertyValue),
			FinalNetProfit:              rd.round(p.Summary.FinalNetProfit),
			FinalBankValueWithCashflows: rd.round(p.Summary.FinalBankValueWithCashflows),
			BankGainWithCashflows:       rd.round(p.Summary.BankGainWithCashflows),
			PropertyAdvantage:           rd.round(p.Summary.PropertyAdvantage),
			Winner:                      p.Summary.Winner,
		},
		Caption: Caption,
	}
	if rd.err != nil {
		return ProjectionResponse{}, rd.err
	}
	return resp, nil
}

// BreakevenMessage describes when, if ever, the investment broke even
func BreakevenMessage(year *int) string {
	if year == nil {
		return "Breakeven not achieved within holding period."
	}
	return fmt.Sprintf("Breakeven achieved in year %d!", *year)
}

// ProjectionSeries holds chart-ready lines, one value per year
type ProjectionSeries struct {
	Currency               Currency  `json:"currency"`
	Years                  []int     `json:"years"`
	PropertyValue          []float64 `json:"property_value"`
	LoanBalance            []float64 `json:"loan_balance"`
	CumulativeCashflow     []float64 `json:"cumulative_cashflow"`
	NetProfit              []float64 `json:"net_profit"`
	BankValue              []float64 `json:"bank_value"`
	BankValueWithCashflows []float64 `json:"bank_value_with_cashflows"`
	// Scale the values are expressed in, e.g. "crores"
	Unit          string `json:"unit"`
	BreakevenYear *int   `json:"breakeven_year"`
}

// ProjectionRequest is the nested request body of projection endpoints
type ProjectionRequest struct {
	Parameters projection.Parameters `json:"parameters"`
}

// SweepRequest asks for one projection per value of a single field
type SweepRequest struct {
	Parameters projection.Parameters `json:"parameters"`
	Field      string                `json:"field"`
	Values     []float64             `json:"values"`
}

// SweepRun is the outcome of one value of a sweep
type SweepRun struct {
	Value                       float64 `json:"value"`
	BreakevenYear               *int    `json:"breakeven_year"`
	FinalNetProfit              int64   `json:"final_net_profit"`
	FinalBankValueWithCashflows int64   `json:"final_bank_value_with_cashflows"`
	PropertyAdvantage           int64   `json:"property_advantage"`
	Winner                      string  `json:"winner"`
}

// NewSweepRun summarises a projection for the sweep table
func NewSweepRun(value float64, p *projection.Projection) (SweepRun, error) {
	var rd rounder
	run := SweepRun{
		Value:                       value,
		BreakevenYear:               p.BreakevenYear,
		FinalNetProfit:              rd.round(p.Summary.FinalNetProfit),
		FinalBankValueWithCashflows: rd.round(p.Summary.FinalBankValueWithCashflows),
		PropertyAdvantage:           rd.round(p.Summary.PropertyAdvantage),
		Winner:                      p.Summary.Winner,
	}
	return run, rd.err
}

// SweepResponse lists sweep runs in request order
type SweepResponse struct {
	Field string     `json:"field"`
	Runs  []SweepRun `json:"runs"`
}
