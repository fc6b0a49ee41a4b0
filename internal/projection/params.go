package projection

import (
	"fmt"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Parameter field names, shared by JSON, YAML and sweep requests
const (
	FieldPropertyPrice           = "property_price"
	FieldDownPaymentPct          = "down_payment_pct"
	FieldLoanInterestPct         = "loan_interest_pct"
	FieldLoanYears               = "loan_years"
	FieldMonthlyRentalIncome     = "monthly_rental_income"
	FieldRentalAppreciationPct   = "rental_appreciation_pct"
	FieldPropertyAppreciationPct = "property_appreciation_pct"
	FieldHoldingYears            = "holding_years"
	FieldDisposalCostPct         = "disposal_cost_pct"
	FieldBankInterestPct         = "bank_interest_pct"
)

// MaxAmount bounds every input and computed amount. Beyond it float64 no
// longer holds whole currency units exactly.
const MaxAmount = 1e15

// Parameters is the immutable input of one projection run.
// Percentages are expressed as whole numbers (9 means 9%).
type Parameters struct {
	PropertyPrice           float64 `json:"property_price" yaml:"property_price"`
	DownPaymentPct          float64 `json:"down_payment_pct" yaml:"down_payment_pct"`
	LoanInterestPct         float64 `json:"loan_interest_pct" yaml:"loan_interest_pct"`
	LoanYears               int     `json:"loan_years" yaml:"loan_years"`
	MonthlyRentalIncome     float64 `json:"monthly_rental_income" yaml:"monthly_rental_income"`
	RentalAppreciationPct   float64 `json:"rental_appreciation_pct" yaml:"rental_appreciation_pct"` // applied every 2 years
	PropertyAppreciationPct float64 `json:"property_appreciation_pct" yaml:"property_appreciation_pct"`
	HoldingYears            int     `json:"holding_years" yaml:"holding_years"`
	DisposalCostPct         float64 `json:"disposal_cost_pct" yaml:"disposal_cost_pct"`
	BankInterestPct         float64 `json:"bank_interest_pct" yaml:"bank_interest_pct"`
}

// DefaultParameters returns the calculator's stock assumptions
func DefaultParameters() Parameters {
	return Parameters{
		PropertyPrice:           10_000_000,
		DownPaymentPct:          25,
		LoanInterestPct:         9,
		LoanYears:               20,
		MonthlyRentalIncome:     25_000,
		RentalAppreciationPct:   10,
		PropertyAppreciationPct: 5,
		HoldingYears:            10,
		DisposalCostPct:         2,
		BankInterestPct:         7,
	}
}

// Fields lists every parameter field name in declaration order
func Fields() []string {
	return []string{
		FieldPropertyPrice,
		FieldDownPaymentPct,
		FieldLoanInterestPct,
		FieldLoanYears,
		FieldMonthlyRentalIncome,
		FieldRentalAppreciationPct,
		FieldPropertyAppreciationPct,
		FieldHoldingYears,
		FieldDisposalCostPct,
		FieldBankInterestPct,
	}
}

// Validate checks every field against its documented range
func (p Parameters) Validate() error {
	if err := positive(FieldPropertyPrice, p.PropertyPrice); err != nil {
		return err
	}
	if p.PropertyPrice > MaxAmount {
		return invalid(FieldPropertyPrice, p.PropertyPrice, fmt.Sprintf("must not exceed %g", MaxAmount))
	}
	if err := percentage(FieldDownPaymentPct, p.DownPaymentPct); err != nil {
		return err
	}
	if err := nonNegative(FieldLoanInterestPct, p.LoanInterestPct); err != nil {
		return err
	}
	if p.LoanYears < 1 {
		return invalid(FieldLoanYears, float64(p.LoanYears), "must be at least 1")
	}
	if err := nonNegative(FieldMonthlyRentalIncome, p.MonthlyRentalIncome); err != nil {
		return err
	}
	if p.MonthlyRentalIncome > MaxAmount {
		return invalid(FieldMonthlyRentalIncome, p.MonthlyRentalIncome, fmt.Sprintf("must not exceed %g", MaxAmount))
	}
	if err := nonNegative(FieldRentalAppreciationPct, p.RentalAppreciationPct); err != nil {
		return err
	}
	if err := nonNegative(FieldPropertyAppreciationPct, p.PropertyAppreciationPct); err != nil {
		return err
	}
	if p.HoldingYears < 1 {
		return invalid(FieldHoldingYears, float64(p.HoldingYears), "must be at least 1")
	}
	if err := percentage(FieldDisposalCostPct, p.DisposalCostPct); err != nil {
		return err
	}
	return nonNegative(FieldBankInterestPct, p.BankInterestPct)
}

// With returns a copy of p with a single field replaced.
// Integer fields only accept whole values.
func (p Parameters) With(field string, value float64) (Parameters, error) {
	switch field {
	case FieldPropertyPrice:
		p.PropertyPrice = value
	case FieldDownPaymentPct:
		p.DownPaymentPct = value
	case FieldLoanInterestPct:
		p.LoanInterestPct = value
	case FieldLoanYears:
		years, err := wholeYears(field, value)
		if err != nil {
			return p, err
		}
		p.LoanYears = years
	case FieldMonthlyRentalIncome:
		p.MonthlyRentalIncome = value
	case FieldRentalAppreciationPct:
		p.RentalAppreciationPct = value
	case FieldPropertyAppreciationPct:
		p.PropertyAppreciationPct = value
	case FieldHoldingYears:
		years, err := wholeYears(field, value)
		if err != nil {
			return p, err
		}
		p.HoldingYears = years
	case FieldDisposalCostPct:
		p.DisposalCostPct = value
	case FieldBankInterestPct:
		p.BankInterestPct = value
	default:
		return p, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return p, nil
}

// Value returns the current value of a field
func (p Parameters) Value(field string) (float64, error) {
	switch field {
	case FieldPropertyPrice:
		return p.PropertyPrice, nil
	case FieldDownPaymentPct:
		return p.DownPaymentPct, nil
	case FieldLoanInterestPct:
		return p.LoanInterestPct, nil
	case FieldLoanYears:
		return float64(p.LoanYears), nil
	case FieldMonthlyRentalIncome:
		return p.MonthlyRentalIncome, nil
	case FieldRentalAppreciationPct:
		return p.RentalAppreciationPct, nil
	case FieldPropertyAppreciationPct:
		return p.PropertyAppreciationPct, nil
	case FieldHoldingYears:
		return float64(p.HoldingYears), nil
	case FieldDisposalCostPct:
		return p.DisposalCostPct, nil
	case FieldBankInterestPct:
		return p.BankInterestPct, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, field)
}

// CacheKey returns a deterministic key identifying this parameter set
func (p Parameters) CacheKey() string {
	d := xxhash.New()
	for _, v := range []float64{
		p.PropertyPrice,
		p.DownPaymentPct,
		p.LoanInterestPct,
		float64(p.LoanYears),
		p.MonthlyRentalIncome,
		p.RentalAppreciationPct,
		p.PropertyAppreciationPct,
		float64(p.HoldingYears),
		p.DisposalCostPct,
		p.BankInterestPct,
	} {
		_, _ = d.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		_, _ = d.WriteString("|")
	}
	return strconv.FormatUint(d.Sum64(), 16)
}

func wholeYears(field string, value float64) (int, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value != math.Trunc(value) {
		return 0, invalid(field, value, "must be a whole number of years")
	}
	return int(value), nil
}

func finite(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return invalid(field, value, "must be a finite number")
	}
	return nil
}

func positive(field string, value float64) error {
	if err := finite(field, value); err != nil {
		return err
	}
	if value <= 0 {
		return invalid(field, value, "must be greater than 0")
	}
	return nil
}

func nonNegative(field string, value float64) error {
	if err := finite(field, value); err != nil {
		return err
	}
	if value < 0 {
		return invalid(field, value, "must not be negative")
	}
	return nil
}

func percentage(field string, value float64) error {
	if err := nonNegative(field, value); err != nil {
		return err
	}
	if value > 100 {
		return invalid(field, value, "must not exceed 100")
	}
	return nil
}
