package projection

import (
	"context"
	"fmt"
	"math"

	"github.com/sjperalta/fintera-invest/internal/statemachine"
)

// Winner values for Summary.Winner
const (
	WinnerProperty = "property"
	WinnerBank     = "bank"
	WinnerTie      = "tie"
)

// Derived holds the constants computed once per run
type Derived struct {
	DownPayment float64 `json:"down_payment"`
	LoanAmount  float64 `json:"loan_amount"`
	MonthlyRate float64 `json:"monthly_rate"`
	NumPayments int     `json:"num_payments"`
	EMI         float64 `json:"emi"`
}

// YearRecord is the financial state at the end of one holding year.
// Values are unrounded.
type YearRecord struct {
	Year                   int     `json:"year"`
	PropertyValue          float64 `json:"property_value"`
	LoanBalance            float64 `json:"loan_balance"`
	RentThisYear           float64 `json:"rent_this_year"`
	TotalRent              float64 `json:"total_rent"`
	InterestPaid           float64 `json:"interest_paid"`
	CumulativeInterestPaid float64 `json:"cumulative_interest_paid"`
	PrincipalPaid          float64 `json:"principal_paid"`
	YearlyCashflow         float64 `json:"yearly_cashflow"`
	CumulativeCashflow     float64 `json:"cumulative_cashflow"`
	DisposalCost           float64 `json:"disposal_cost"`
	NetProfit              float64 `json:"net_profit"`
	BankValue              float64 `json:"bank_value"`
	BankGain               float64 `json:"bank_gain"`
	BankValueWithCashflows float64 `json:"bank_value_with_cashflows"`
	BankAddedThisYear      float64 `json:"bank_added_this_year"`
	EMIActive              bool    `json:"emi_active"` // EMI outflow charged this year
	LoanState              string  `json:"loan_state"`
}

// Summary compares both investments at the end of the holding period
type Summary struct {
	TotalContributed            float64 `json:"total_contributed"`
	FinalPropertyValue          float64 `json:"final_property_value"`
	FinalNetProfit              float64 `json:"final_net_profit"`
	FinalBankValueWithCashflows float64 `json:"final_bank_value_with_cashflows"`
	BankGainWithCashflows       float64 `json:"bank_gain_with_cashflows"`
	PropertyAdvantage           float64 `json:"property_advantage"`
	Winner                      string  `json:"winner"`
}

// Projection is the full output of one run
type Projection struct {
	Parameters    Parameters   `json:"parameters"`
	Derived       Derived      `json:"derived"`
	Years         []YearRecord `json:"years"`
	BreakevenYear *int         `json:"breakeven_year"`
	State         string       `json:"state"`
	Summary       Summary      `json:"summary"`
}

// Final returns the record of the last holding year
func (p *Projection) Final() YearRecord {
	return p.Years[len(p.Years)-1]
}

// Derive computes the per-run constants. A zero rate amortizes linearly.
func Derive(p Parameters) Derived {
	d := Derived{
		DownPayment: p.PropertyPrice * p.DownPaymentPct / 100,
		MonthlyRate: p.LoanInterestPct / 12 / 100,
		NumPayments: p.LoanYears * 12,
	}
	d.LoanAmount = math.Max(p.PropertyPrice-d.DownPayment, 0)

	switch {
	case d.LoanAmount == 0:
		d.EMI = 0
	case d.MonthlyRate > 0:
		growth := math.Pow(1+d.MonthlyRate, float64(d.NumPayments))
		if math.IsInf(growth, 1) {
			// growth/(growth-1) tends to 1: the instalment only covers interest
			d.EMI = d.LoanAmount * d.MonthlyRate
		} else {
			d.EMI = d.LoanAmount * d.MonthlyRate * (growth / (growth - 1))
		}
	default:
		d.EMI = d.LoanAmount / float64(d.NumPayments)
	}
	return d
}

// simulation is the mutable state owned by a single run
type simulation struct {
	params  Parameters
	derived Derived
	loan    *statemachine.LoanFSM

	loanBalance            float64
	paymentsMade           int
	cumulativeRent         float64
	cumulativeCashflow     float64
	cumulativeInterestPaid float64
	comparisonBalance      float64
	contributed            float64
}

// Project runs the year-by-year simulation. It has no side effects and
// returns identical output for identical parameters.
func Project(p Parameters) (*Projection, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	d := Derive(p)
	if err := checkAmount(0, "emi", d.EMI*12); err != nil {
		return nil, err
	}
	sim := &simulation{
		params:             p,
		derived:            d,
		loan:               statemachine.NewLoanFSM(d.LoanAmount > 0),
		loanBalance:        d.LoanAmount,
		cumulativeCashflow: -d.DownPayment,
		comparisonBalance:  d.DownPayment,
		contributed:        d.DownPayment,
	}

	result := &Projection{
		Parameters: p,
		Derived:    d,
		Years:      make([]YearRecord, 0, p.HoldingYears),
	}

	for year := 1; year <= p.HoldingYears; year++ {
		record, err := sim.advance(year)
		if err != nil {
			return nil, err
		}
		if err := record.checkRange(); err != nil {
			return nil, err
		}
		if result.BreakevenYear == nil && record.NetProfit >= 0 {
			breakeven := year
			result.BreakevenYear = &breakeven
		}
		result.Years = append(result.Years, record)
	}

	if err := sim.loan.Complete(context.Background()); err != nil {
		return nil, err
	}
	result.State = sim.loan.Current()
	result.Summary = sim.summary(result.Final())
	if err := checkAmount(p.HoldingYears, "property_advantage", result.Summary.PropertyAdvantage); err != nil {
		return nil, err
	}

	return result, nil
}

// checkRange rejects records whose amounts cannot be represented
func (r YearRecord) checkRange() error {
	for _, col := range []struct {
		name  string
		value float64
	}{
		{"property_value", r.PropertyValue},
		{"loan_balance", r.LoanBalance},
		{"rent_this_year", r.RentThisYear},
		{"total_rent", r.TotalRent},
		{"interest_paid", r.InterestPaid},
		{"cumulative_interest_paid", r.CumulativeInterestPaid},
		{"principal_paid", r.PrincipalPaid},
		{"yearly_cashflow", r.YearlyCashflow},
		{"cumulative_cashflow", r.CumulativeCashflow},
		{"disposal_cost", r.DisposalCost},
		{"net_profit", r.NetProfit},
		{"bank_value", r.BankValue},
		{"bank_gain", r.BankGain},
		{"bank_value_with_cashflows", r.BankValueWithCashflows},
		{"bank_added_this_year", r.BankAddedThisYear},
	} {
		if err := checkAmount(r.Year, col.name, col.value); err != nil {
			return err
		}
	}
	return nil
}

// advance simulates one holding year
func (s *simulation) advance(year int) (YearRecord, error) {
	p, d := s.params, s.derived

	// Rent is reviewed every two years
	rent := p.MonthlyRentalIncome * 12 * math.Pow(1+p.RentalAppreciationPct/100, float64((year-1)/2))
	s.cumulativeRent += rent

	emiCharged := s.loan.EMIActive()
	var interestPaid, principalPaid float64
	for month := 0; month < 12 && s.loanBalance > 0; month++ {
		interest := s.loanBalance * d.MonthlyRate
		principal := math.Min(d.EMI-interest, s.loanBalance)
		s.paymentsMade++
		if s.paymentsMade >= d.NumPayments {
			// Last scheduled instalment settles whatever is left
			principal = s.loanBalance
		}
		s.loanBalance -= principal
		interestPaid += interest
		principalPaid += principal
	}
	s.cumulativeInterestPaid += interestPaid

	if emiCharged && s.loanBalance <= 0 {
		s.loanBalance = 0
		if err := s.loan.Retire(context.Background()); err != nil {
			return YearRecord{}, fmt.Errorf("year %d: %w", year, err)
		}
	}

	propertyValue := p.PropertyPrice * math.Pow(1+p.PropertyAppreciationPct/100, float64(year))

	cashflow := rent
	if emiCharged {
		cashflow -= d.EMI * 12
	}
	s.cumulativeCashflow += cashflow

	disposalCost := propertyValue * p.DisposalCostPct / 100
	netProfit := propertyValue - disposalCost - s.loanBalance + s.cumulativeCashflow

	bankGrowth := 1 + p.BankInterestPct/100
	bankValue := d.DownPayment * math.Pow(bankGrowth, float64(year))

	// Shortfalls go into the comparison balance before it compounds;
	// surplus years never withdraw from it.
	var added float64
	if cashflow < 0 {
		added = -cashflow
		s.comparisonBalance += added
		s.contributed += added
	}
	s.comparisonBalance *= bankGrowth

	return YearRecord{
		Year:                   year,
		PropertyValue:          propertyValue,
		LoanBalance:            s.loanBalance,
		RentThisYear:           rent,
		TotalRent:              s.cumulativeRent,
		InterestPaid:           interestPaid,
		CumulativeInterestPaid: s.cumulativeInterestPaid,
		PrincipalPaid:          principalPaid,
		YearlyCashflow:         cashflow,
		CumulativeCashflow:     s.cumulativeCashflow,
		DisposalCost:           disposalCost,
		NetProfit:              netProfit,
		BankValue:              bankValue,
		BankGain:               bankValue - d.DownPayment,
		BankValueWithCashflows: s.comparisonBalance,
		BankAddedThisYear:      added,
		EMIActive:              emiCharged,
		LoanState:              s.loan.Current(),
	}, nil
}

func (s *simulation) summary(final YearRecord) Summary {
	bankGain := final.BankValueWithCashflows - s.contributed
	advantage := final.NetProfit - bankGain

	winner := WinnerTie
	switch {
	case advantage > 0:
		winner = WinnerProperty
	case advantage < 0:
		winner = WinnerBank
	}

	return Summary{
		TotalContributed:            s.contributed,
		FinalPropertyValue:          final.PropertyValue,
		FinalNetProfit:              final.NetProfit,
		FinalBankValueWithCashflows: final.BankValueWithCashflows,
		BankGainWithCashflows:       bankGain,
		PropertyAdvantage:           advantage,
		Winner:                      winner,
	}
}
