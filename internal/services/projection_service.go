package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sjperalta/fintera-invest/internal/models"
	"github.com/sjperalta/fintera-invest/internal/projection"
	"github.com/sjperalta/fintera-invest/internal/repository"
	"github.com/sjperalta/fintera-invest/pkg/logger"
)

// Limits bounds the work a single request may ask for
type Limits struct {
	MaxHoldingYears int
	MaxLoanYears    int
	MaxSweepRuns    int
}

// ProjectionRun is one engine run as seen by the API
type ProjectionRun struct {
	ID         string
	Projection *projection.Projection
	Cached     bool
}

type ProjectionService struct {
	cache           repository.ProjectionCache
	cacheTTL        time.Duration
	limits          Limits
	defaultCurrency string
}

func NewProjectionService(cache repository.ProjectionCache, cacheTTL time.Duration, limits Limits, defaultCurrency string) *ProjectionService {
	return &ProjectionService{
		cache:           cache,
		cacheTTL:        cacheTTL,
		limits:          limits,
		defaultCurrency: defaultCurrency,
	}
}

// Run validates p, enforces service limits and returns the projection,
// served from the cache when an identical run is still live
func (s *ProjectionService) Run(ctx context.Context, p projection.Parameters) (*ProjectionRun, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkLimits(p); err != nil {
		return nil, err
	}

	run := &ProjectionRun{ID: uuid.New().String()}
	key := p.CacheKey()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			run.Projection = cached
			run.Cached = true
			logger.Debug("Projection served from cache", "run_id", run.ID, "cache_key", key)
			return run, nil
		case !errors.Is(err, repository.ErrCacheMiss):
			logger.Warn("Projection cache read failed", "cache_key", key, "error", err)
		}
	}

	result, err := projection.Project(p)
	if err != nil {
		return nil, err
	}
	run.Projection = result

	if s.cache != nil && s.cacheTTL > 0 {
		if err := s.cache.Set(ctx, key, result, s.cacheTTL); err != nil {
			logger.Warn("Projection cache write failed", "cache_key", key, "error", err)
		}
	}

	attrs := []any{
		"run_id", run.ID,
		"holding_years", p.HoldingYears,
		"loan_years", p.LoanYears,
		"state", result.State,
	}
	if result.BreakevenYear != nil {
		attrs = append(attrs, "breakeven_year", *result.BreakevenYear)
	}
	logger.Info("Projection computed", attrs...)

	return run, nil
}

// CleanCache drops expired cache entries; scheduled on the worker
func (s *ProjectionService) CleanCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	removed, err := s.cache.CleanExpired(ctx)
	if err != nil {
		return fmt.Errorf("failed to clean projection cache: %w", err)
	}
	if removed > 0 {
		logger.Info("Projection cache cleaned", "removed", removed)
	}
	return nil
}

// ResolveCurrency maps a code to a display currency; empty selects the default
func (s *ProjectionService) ResolveCurrency(code string) (models.Currency, error) {
	if code == "" {
		code = s.defaultCurrency
	}
	currency, ok := models.LookupCurrency(code)
	if !ok {
		return models.Currency{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return currency, nil
}

// Series returns chart-ready lines scaled to the currency's chart unit
func (s *ProjectionService) Series(p *projection.Projection, currency models.Currency) models.ProjectionSeries {
	divisor, unit := ChartScale(currency)
	n := len(p.Years)

	series := models.ProjectionSeries{
		Currency:               currency,
		Years:                  make([]int, 0, n),
		PropertyValue:          make([]float64, 0, n),
		LoanBalance:            make([]float64, 0, n),
		CumulativeCashflow:     make([]float64, 0, n),
		NetProfit:              make([]float64, 0, n),
		BankValue:              make([]float64, 0, n),
		BankValueWithCashflows: make([]float64, 0, n),
		Unit:                   unit,
		BreakevenYear:          p.BreakevenYear,
	}

	for _, rec := range p.Years {
		series.Years = append(series.Years, rec.Year)
		series.PropertyValue = append(series.PropertyValue, rec.PropertyValue/divisor)
		series.LoanBalance = append(series.LoanBalance, rec.LoanBalance/divisor)
		series.CumulativeCashflow = append(series.CumulativeCashflow, rec.CumulativeCashflow/divisor)
		series.NetProfit = append(series.NetProfit, rec.NetProfit/divisor)
		series.BankValue = append(series.BankValue, rec.BankValue/divisor)
		series.BankValueWithCashflows = append(series.BankValueWithCashflows, rec.BankValueWithCashflows/divisor)
	}
	return series
}

// Limits returns the configured service limits
func (s *ProjectionService) Limits() Limits {
	return s.limits
}

func (s *ProjectionService) checkLimits(p projection.Parameters) error {
	if s.limits.MaxHoldingYears > 0 && p.HoldingYears > s.limits.MaxHoldingYears {
		return fmt.Errorf("%w: %s %d > %d", ErrLimitExceeded, projection.FieldHoldingYears, p.HoldingYears, s.limits.MaxHoldingYears)
	}
	if s.limits.MaxLoanYears > 0 && p.LoanYears > s.limits.MaxLoanYears {
		return fmt.Errorf("%w: %s %d > %d", ErrLimitExceeded, projection.FieldLoanYears, p.LoanYears, s.limits.MaxLoanYears)
	}
	return nil
}
